package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/logging"
)

// hygColumns are the HYG v3 columns the loader reads.
var hygColumns = []string{"id", "hip", "hd", "hr", "gl", "bf", "proper", "ra", "dec", "mag"}

// LoadHYG reads a HYG star catalog (CSV, RA in decimal hours) and returns
// its stars in file order. The Sun (HYG id 0) is skipped.
func LoadHYG(r io.Reader, logger *logging.Logger) ([]*CelestialObject, error) {
	t, err := newTable(r, ',', hygColumns...)
	if err != nil {
		return nil, fmt.Errorf("hyg: %w", err)
	}

	var stars []*CelestialObject
	seen := make(map[string]bool)

	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("hyg: %w", err)
		}

		hygID := rec.get("id")
		if hygID == "0" {
			continue
		}

		star, err := parseHYGRow(rec, hygID)
		if err != nil {
			return nil, fmt.Errorf("hyg: %w", err)
		}
		if seen[star.ID] {
			return nil, fmt.Errorf("hyg: %w: %s", ErrDuplicateID, star.ID)
		}
		seen[star.ID] = true
		stars = append(stars, star)
	}

	logger.Info("Loaded %d stars from HYG catalog", len(stars))
	return stars, nil
}

func parseHYGRow(rec row, hygID string) (*CelestialObject, error) {
	if hygID == "" {
		return nil, rec.errorf("missing id")
	}

	raHours, err := parseFinite(rec.get("ra"))
	if err != nil {
		return nil, rec.errorf("ra %q: %v", rec.get("ra"), err)
	}
	dec, err := parseFinite(rec.get("dec"))
	if err != nil || dec < -90 || dec > 90 {
		return nil, rec.errorf("dec %q out of range", rec.get("dec"))
	}
	mag, err := parseFinite(rec.get("mag"))
	if err != nil {
		return nil, rec.errorf("mag %q: %v", rec.get("mag"), err)
	}

	id := "HYG" + hygID
	if hip := rec.get("hip"); hip != "" && hip != "0" {
		id = "HIP" + hip
	}

	var aliases []string
	addAlias := func(prefix, v string) {
		if v != "" && v != "0" {
			aliases = append(aliases, prefix+v)
		}
	}
	addAlias("", rec.get("proper"))
	addAlias("HD", rec.get("hd"))
	addAlias("HR", rec.get("hr"))
	addAlias("", rec.get("gl"))
	addAlias("", rec.get("bf"))

	return &CelestialObject{
		ID:        id,
		Aliases:   aliases,
		Magnitude: mag,
		Type:      TypeStar,
		RAdeg:     astro.NormalizeRA(astro.HoursToDegrees(raHours)),
		DecDeg:    dec,
	}, nil
}
