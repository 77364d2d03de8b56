// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Terminal preview, .env defaults, leveled diagnostics replace match printing
// 0.2.0 - GeoJSON FeatureCollection output, constellation figures, --invert-ra
// 0.1.0 - Initial release: HYG and OpenNGC to compact JSON
