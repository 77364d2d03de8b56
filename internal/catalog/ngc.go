package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/logging"
)

var ngcColumns = []string{"Name", "Type", "RA", "Dec", "MajAx", "MinAx", "PosAng", "B-Mag", "V-Mag"}

// ngcTypes maps OpenNGC type codes to object types.
var ngcTypes = map[string]ObjectType{
	"*":      TypeStar,
	"**":     TypeDoubleStar,
	"*Ass":   TypeAssociation,
	"OCl":    TypeOpenCluster,
	"GCl":    TypeGlobularCluster,
	"Cl+N":   TypeClusterNebula,
	"G":      TypeGalaxy,
	"GPair":  TypeGalaxyPair,
	"GTrpl":  TypeGalaxyTriplet,
	"GGroup": TypeGalaxyGroup,
	"PN":     TypePlanetaryNebula,
	"HII":    TypeBrightNebula,
	"EmN":    TypeBrightNebula,
	"Neb":    TypeBrightNebula,
	"RfN":    TypeReflectionNebula,
	"DrkN":   TypeDarkNebula,
	"SNR":    TypeSupernovaRemnant,
	"Nova":   TypeNova,
	"Other":  TypeOther,
}

// LoadNGC reads an OpenNGC catalog (semicolon separated, sexagesimal
// coordinates) and returns its objects in file order.
//
// Duplicate and nonexistent entries are skipped, as are objects with
// neither a V nor a B magnitude.
func LoadNGC(r io.Reader, logger *logging.Logger) ([]*CelestialObject, error) {
	t, err := newTable(r, ';', ngcColumns...)
	if err != nil {
		return nil, fmt.Errorf("ngc: %w", err)
	}

	var objects []*CelestialObject
	seen := make(map[string]bool)
	skipped := 0

	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ngc: %w", err)
		}

		switch rec.get("Type") {
		case "Dup", "NonEx":
			skipped++
			continue
		}

		obj, err := parseNGCRow(rec)
		if err != nil {
			return nil, fmt.Errorf("ngc: %w", err)
		}
		if obj == nil {
			logger.Debug("Skipping %s: no magnitude", rec.get("Name"))
			skipped++
			continue
		}
		if seen[obj.ID] {
			return nil, fmt.Errorf("ngc: %w: %s", ErrDuplicateID, obj.ID)
		}
		seen[obj.ID] = true
		objects = append(objects, obj)
	}

	logger.Info("Loaded %d deep-sky objects from NGC catalog (%d skipped)", len(objects), skipped)
	return objects, nil
}

// parseNGCRow returns nil, nil for rows without a usable magnitude.
func parseNGCRow(rec row) (*CelestialObject, error) {
	name := rec.get("Name")
	if name == "" {
		return nil, rec.errorf("missing name")
	}

	typ, ok := ngcTypes[rec.get("Type")]
	if !ok {
		return nil, rec.errorf("%s: unknown type %q", name, rec.get("Type"))
	}

	ra, err := astro.ParseRA(rec.get("RA"))
	if err != nil {
		return nil, rec.errorf("%s: ra: %v", name, err)
	}
	dec, err := astro.ParseDec(rec.get("Dec"))
	if err != nil {
		return nil, rec.errorf("%s: dec: %v", name, err)
	}

	mag, ok, err := optionalFloat(rec.get("V-Mag"))
	if err != nil {
		return nil, rec.errorf("%s: V-Mag: %v", name, err)
	}
	if !ok {
		mag, ok, err = optionalFloat(rec.get("B-Mag"))
		if err != nil {
			return nil, rec.errorf("%s: B-Mag: %v", name, err)
		}
		if !ok {
			return nil, nil
		}
	}

	obj := &CelestialObject{
		ID:        name,
		Aliases:   ngcAliases(rec),
		Magnitude: mag,
		Type:      typ,
		RAdeg:     ra,
		DecDeg:    dec,
	}

	major, hasMajor, err := optionalFloat(rec.get("MajAx"))
	if err != nil {
		return nil, rec.errorf("%s: MajAx: %v", name, err)
	}
	if hasMajor {
		minor, hasMinor, err := optionalFloat(rec.get("MinAx"))
		if err != nil {
			return nil, rec.errorf("%s: MinAx: %v", name, err)
		}
		if !hasMinor {
			minor = major
		}
		obj.Size = &Size{Major: major, Minor: minor}
	}

	angle, hasAngle, err := optionalFloat(rec.get("PosAng"))
	if err != nil {
		return nil, rec.errorf("%s: PosAng: %v", name, err)
	}
	if hasAngle {
		obj.Angle = &angle
	}

	return obj, nil
}

// ngcAliases collects the Messier number, cross identifiers and common names.
func ngcAliases(rec row) []string {
	var aliases []string
	if m := strings.TrimLeft(rec.get("M"), "0"); m != "" {
		aliases = append(aliases, "M"+m)
	}
	for _, col := range []string{"Identifiers", "Common names"} {
		for _, a := range strings.Split(rec.get(col), ",") {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
	}
	return aliases
}

func optionalFloat(s string) (float64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
