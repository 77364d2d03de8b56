// Package catalog holds the in-memory catalog model and the loaders that
// build it from HYG, OpenNGC and constellation line files.
package catalog

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-skycat/internal/astro"
)

var (
	// ErrMalformed is returned when a catalog file cannot be parsed.
	ErrMalformed = errors.New("malformed catalog")
	// ErrDuplicateID is returned when an id or abbreviation repeats within a catalog.
	ErrDuplicateID = errors.New("duplicate catalog id")
	// ErrUnknownObjectType is returned when a type code has no entry in ObjectTypes.
	ErrUnknownObjectType = errors.New("unknown object type")
)

// ObjectType classifies a celestial object.
type ObjectType int

const (
	TypeStar ObjectType = iota + 1
	TypeDoubleStar
	TypeAssociation
	TypeOpenCluster
	TypeGlobularCluster
	TypeClusterNebula
	TypeGalaxy
	TypeGalaxyPair
	TypeGalaxyTriplet
	TypeGalaxyGroup
	TypePlanetaryNebula
	TypeBrightNebula
	TypeReflectionNebula
	TypeDarkNebula
	TypeSupernovaRemnant
	TypeNova
	TypeOther
)

// ObjectTypes maps type codes to the names written to output.
var ObjectTypes = map[ObjectType]string{
	TypeStar:             "Star",
	TypeDoubleStar:       "Double Star",
	TypeAssociation:      "Association of Stars",
	TypeOpenCluster:      "Open Cluster",
	TypeGlobularCluster:  "Globular Cluster",
	TypeClusterNebula:    "Cluster with Nebulosity",
	TypeGalaxy:           "Galaxy",
	TypeGalaxyPair:       "Galaxy Pair",
	TypeGalaxyTriplet:    "Galaxy Triplet",
	TypeGalaxyGroup:      "Group of Galaxies",
	TypePlanetaryNebula:  "Planetary Nebula",
	TypeBrightNebula:     "Bright Nebula",
	TypeReflectionNebula: "Reflection Nebula",
	TypeDarkNebula:       "Dark Nebula",
	TypeSupernovaRemnant: "Supernova Remnant",
	TypeNova:             "Nova",
	TypeOther:            "Other",
}

// Name resolves t through ObjectTypes.
func (t ObjectType) Name() (string, error) {
	name, ok := ObjectTypes[t]
	if !ok {
		return "", fmt.Errorf("%w: code %d", ErrUnknownObjectType, int(t))
	}
	return name, nil
}

func (t ObjectType) String() string {
	if name, ok := ObjectTypes[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// Size describes an object's apparent ellipse in arcminutes.
type Size struct {
	Major float64
	Minor float64
}

// CelestialObject is a star or deep-sky object.
type CelestialObject struct {
	ID        string
	Aliases   []string
	Magnitude float64 // Apparent visual magnitude (lower = brighter)
	Type      ObjectType
	RAdeg     float64  // Right Ascension in degrees (0-360)
	DecDeg    float64  // Declination in degrees (-90 to +90)
	Size      *Size    // nil for point-like objects
	Angle     *float64 // position angle in degrees, nil when unknown
}

// Line is one polyline of a constellation figure.
type Line struct {
	Positions []astro.Position
}

// Constellation is a named stick figure made of one or more polylines.
type Constellation struct {
	Abbr  string
	Name  string
	Lines []Line
}

// Segments returns the number of individual point-to-point segments.
func (c *Constellation) Segments() int {
	n := 0
	for _, l := range c.Lines {
		if len(l.Positions) > 1 {
			n += len(l.Positions) - 1
		}
	}
	return n
}
