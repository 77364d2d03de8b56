// Package selection filters loaded catalog records by magnitude and by an
// id/alias pattern.
package selection

import (
	"fmt"
	"regexp"

	"github.com/litescript/ls-skycat/internal/catalog"
	"github.com/litescript/ls-skycat/internal/logging"
)

// Criteria decides which records are kept.
type Criteria struct {
	MaxMagnitude float64
	Pattern      *regexp.Regexp
}

// NewCriteria compiles pattern. An invalid pattern is reported here, before
// any record is examined.
func NewCriteria(maxMagnitude float64, pattern string) (Criteria, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Criteria{}, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return Criteria{MaxMagnitude: maxMagnitude, Pattern: re}, nil
}

// MatchObject reports whether o is at most MaxMagnitude and the pattern
// matches its id or any single alias. Aliases are tested one at a time so a
// match can never straddle two adjacent aliases.
func (c Criteria) MatchObject(o *catalog.CelestialObject) bool {
	if o.Magnitude > c.MaxMagnitude {
		return false
	}
	if c.Pattern.MatchString(o.ID) {
		return true
	}
	for _, a := range o.Aliases {
		if c.Pattern.MatchString(a) {
			return true
		}
	}
	return false
}

// MatchConstellation reports whether the pattern matches the abbreviation.
// Magnitude does not apply to constellations.
func (c Criteria) MatchConstellation(k *catalog.Constellation) bool {
	return c.Pattern.MatchString(k.Abbr)
}

// Match dispatches on the record kind. Opaque records never match.
func (c Criteria) Match(r catalog.Record) bool {
	switch r.Kind {
	case catalog.KindObject:
		return c.MatchObject(r.Object)
	case catalog.KindConstellation:
		return c.MatchConstellation(r.Constellation)
	default:
		return false
	}
}

// SelectObjects returns the matching objects in catalog order.
func SelectObjects(objects []*catalog.CelestialObject, c Criteria, logger *logging.Logger) []catalog.Record {
	records := make([]catalog.Record, len(objects))
	for i, o := range objects {
		records[i] = catalog.ObjectRecord(o)
	}
	return Select(records, c, logger)
}

// SelectConstellations returns the matching constellations in catalog order.
func SelectConstellations(cons []*catalog.Constellation, c Criteria, logger *logging.Logger) []catalog.Record {
	records := make([]catalog.Record, len(cons))
	for i, k := range cons {
		records[i] = catalog.ConstellationRecord(k)
	}
	return Select(records, c, logger)
}

// Select filters already wrapped records, preserving order.
func Select(records []catalog.Record, c Criteria, logger *logging.Logger) []catalog.Record {
	debug := logger.Enabled(logging.LevelDebug)

	var out []catalog.Record
	for _, r := range records {
		if !c.Match(r) {
			continue
		}
		if debug {
			logSelected(logger, r)
		}
		out = append(out, r)
	}
	return out
}

func logSelected(logger *logging.Logger, r catalog.Record) {
	switch r.Kind {
	case catalog.KindObject:
		logger.Debug("Selected %s %v", r.Object.ID, r.Object.Aliases)
	case catalog.KindConstellation:
		logger.Debug("Selected constellation %s (%s)", r.Constellation.Abbr, r.Constellation.Name)
	}
}

// Sources holds everything loaded for one run. Nil fields mean the catalog
// was not requested.
type Sources struct {
	Stars          []*catalog.CelestialObject
	DeepSky        []*catalog.CelestialObject
	Constellations []*catalog.Constellation
}

// Gather selects from every source and concatenates the results in a fixed
// order: stars, then deep-sky objects, then constellations.
func Gather(src Sources, c Criteria, logger *logging.Logger) []catalog.Record {
	var out []catalog.Record
	out = append(out, SelectObjects(src.Stars, c, logger)...)
	out = append(out, SelectObjects(src.DeepSky, c, logger)...)
	out = append(out, SelectConstellations(src.Constellations, c, logger)...)
	logger.Info("Selected %d records", len(out))
	return out
}
