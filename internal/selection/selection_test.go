package selection

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skycat/internal/catalog"
	"github.com/litescript/ls-skycat/internal/logging"
)

func star(id string, mag float64, aliases ...string) *catalog.CelestialObject {
	return &catalog.CelestialObject{ID: id, Magnitude: mag, Type: catalog.TypeStar, Aliases: aliases}
}

func ids(records []catalog.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID())
	}
	return out
}

func TestNewCriteria_InvalidPattern(t *testing.T) {
	_, err := NewCriteria(5, "HIP(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HIP(")
}

func TestMatchObject_MagnitudeBoundary(t *testing.T) {
	c, err := NewCriteria(5, ".*")
	require.NoError(t, err)

	assert.True(t, c.MatchObject(star("A", 4.99)))
	assert.True(t, c.MatchObject(star("B", 5)), "magnitude equal to the limit is included")
	assert.False(t, c.MatchObject(star("C", 5.01)))
	assert.True(t, c.MatchObject(star("D", -1.46)))
}

func TestMatchObject_IDAndAliases(t *testing.T) {
	c, err := NewCriteria(10, "^M31$")
	require.NoError(t, err)

	assert.True(t, c.MatchObject(star("M31", 3)))
	assert.True(t, c.MatchObject(star("NGC0224", 3, "M31", "Andromeda Galaxy")))
	assert.False(t, c.MatchObject(star("NGC0225", 3, "M3", "1")), "no match across alias boundaries")
	assert.False(t, c.MatchObject(star("NGC0224", 11, "M31")), "magnitude still applies")
}

func TestMatchObject_AliasBlobFalsePositive(t *testing.T) {
	// Concatenating "HD1" and "23" would yield "HD123"
	c, err := NewCriteria(10, "HD123")
	require.NoError(t, err)
	assert.False(t, c.MatchObject(star("HIP9", 1, "HD1", "23")))
}

func TestMatchConstellation(t *testing.T) {
	c, err := NewCriteria(-100, "^OR")
	require.NoError(t, err)

	assert.True(t, c.MatchConstellation(&catalog.Constellation{Abbr: "ORI", Name: "Orion"}),
		"magnitude does not apply to constellations")
	assert.False(t, c.MatchConstellation(&catalog.Constellation{Abbr: "CRU", Name: "Orion-like"}),
		"only the abbreviation is matched")
}

func TestSelect_PreservesOrderAndSkipsOpaque(t *testing.T) {
	c, err := NewCriteria(5, ".*")
	require.NoError(t, err)

	records := []catalog.Record{
		catalog.ObjectRecord(star("Z", 1)),
		catalog.OpaqueRecord(map[string]int{"x": 1}),
		catalog.ObjectRecord(star("A", 9)),
		catalog.ConstellationRecord(&catalog.Constellation{Abbr: "CRU"}),
		catalog.ObjectRecord(star("M", 2)),
	}
	assert.Equal(t, []string{"Z", "CRU", "M"}, ids(Select(records, c, logging.Discard())))
}

func TestGather_FixedSourceOrder(t *testing.T) {
	c, err := NewCriteria(5, "1")
	require.NoError(t, err)

	src := Sources{
		Stars:   []*catalog.CelestialObject{star("HIP1", 3), star("HIP2", 3), star("HIP10", 6)},
		DeepSky: []*catalog.CelestialObject{star("NGC0001", 4), star("NGC0002", 4, "M1")},
		Constellations: []*catalog.Constellation{
			{Abbr: "AB1", Name: "One"},
			{Abbr: "CDE", Name: "Two"},
		},
	}

	got := Gather(src, c, logging.Discard())
	assert.Equal(t, []string{"HIP1", "NGC0001", "NGC0002", "AB1"}, ids(got))
	assert.Equal(t, catalog.KindObject, got[0].Kind)
	assert.Equal(t, catalog.KindConstellation, got[3].Kind)
}

func TestGather_Empty(t *testing.T) {
	c, err := NewCriteria(5, ".*")
	require.NoError(t, err)
	assert.Empty(t, Gather(Sources{}, c, nil))
}

func TestSelect_DoesNotMutate(t *testing.T) {
	c, err := NewCriteria(5, "HIP")
	require.NoError(t, err)

	s := star("HIP1", 3, "Alpha")
	_ = SelectObjects([]*catalog.CelestialObject{s}, c, nil)
	assert.Equal(t, "HIP1", s.ID)
	assert.Equal(t, []string{"Alpha"}, s.Aliases)
	assert.InDelta(t, 3, s.Magnitude, 0)
}

func TestSelect_DebugLogsEachMatch(t *testing.T) {
	c, err := NewCriteria(5, "HIP1|ORI")
	require.NoError(t, err)

	src := Sources{
		Stars:          []*catalog.CelestialObject{star("HIP1", 3, "Alpha"), star("HIP2", 3)},
		Constellations: []*catalog.Constellation{{Abbr: "ORI", Name: "Orion"}},
	}

	var buf bytes.Buffer
	Gather(src, c, logging.NewWriter(&buf, logging.LevelDebug))
	assert.Contains(t, buf.String(), "[DEBUG] Selected HIP1 [Alpha]")
	assert.Contains(t, buf.String(), "[DEBUG] Selected constellation ORI (Orion)")
	assert.NotContains(t, buf.String(), "HIP2")

	buf.Reset()
	Gather(src, c, logging.NewWriter(&buf, logging.LevelWarn))
	assert.Empty(t, buf.String(), "debug and info suppressed at warn")
}
