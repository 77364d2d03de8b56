// Package astro provides equatorial angle parsing and normalization.
package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadAngle is returned when an angle string cannot be parsed.
var ErrBadAngle = errors.New("invalid angle")

// Position is an equatorial position in degrees (J2000).
type Position struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
}

// HoursToDegrees converts right ascension hours to degrees.
func HoursToDegrees(h float64) float64 {
	return h * 15
}

// NormalizeRA wraps a right ascension into [0, 360).
func NormalizeRA(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod(-0.0000001, 360) + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// InvertRA mirrors a right ascension so that it reads as an east-positive
// longitude for map projections.
func InvertRA(deg float64) float64 {
	return 360 - deg
}

// ParseSexagesimal parses "dd:mm:ss.s", "dd mm ss", "dd:mm" or a plain
// decimal number. A leading sign applies to the whole value.
func ParseSexagesimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadAngle)
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var parts []string
	if strings.Contains(s, ":") {
		parts = strings.Split(s, ":")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
			if parts[i] == "" {
				return 0, fmt.Errorf("%w: empty field in %q", ErrBadAngle, s)
			}
		}
	} else {
		parts = strings.Fields(s)
	}
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
	}

	value := 0.0
	scale := 1.0
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
		}
		// Minutes and seconds must stay below 60
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("%w: %q out of range", ErrBadAngle, p)
		}
		value += v / scale
		scale *= 60
	}

	return sign * value, nil
}

// ParseRA parses a right ascension given in hours and returns degrees in [0, 360).
func ParseRA(s string) (float64, error) {
	h, err := ParseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 24 {
		return 0, fmt.Errorf("%w: right ascension %v h out of range", ErrBadAngle, h)
	}
	return NormalizeRA(HoursToDegrees(h)), nil
}

// ParseDec parses a declination given in degrees.
func ParseDec(s string) (float64, error) {
	d, err := ParseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if d < -90 || d > 90 {
		return 0, fmt.Errorf("%w: declination %v out of range", ErrBadAngle, d)
	}
	return d, nil
}

// FormatRA renders degrees as "HHhMMmSSs" for display.
func FormatRA(deg float64) string {
	total := int(math.Round(NormalizeRA(deg) / 15 * 3600))
	h := total / 3600 % 24
	m := total / 60 % 60
	sec := total % 60
	return fmt.Sprintf("%02dh%02dm%02ds", h, m, sec)
}

// FormatDec renders degrees as "+DD°MM'" for display.
func FormatDec(deg float64) string {
	sign := '+'
	if deg < 0 {
		sign = '-'
		deg = -deg
	}
	total := int(math.Round(deg * 60))
	return fmt.Sprintf("%c%02d°%02d'", sign, total/60, total%60)
}
