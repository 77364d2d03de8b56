package encode

import (
	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/catalog"
)

// PlainObject is the compact array entry for a celestial object.
type PlainObject struct {
	ID          string    `json:"id"`
	Magnitude   float64   `json:"magnitude"`
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Size        []float64 `json:"size"`
	Angle       float64   `json:"angle"`
}

// FeatureCollection is the GeoJSON document wrapper.
type FeatureCollection struct {
	Type     string `json:"type"`
	Features []any  `json:"features"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string   `json:"type"`
	Geometry   Geometry `json:"geometry"`
	Properties any      `json:"properties"`
}

// Geometry is a GeoJSON Point or MultiLineString.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// ObjectProperties are the GeoJSON properties of a celestial object.
type ObjectProperties struct {
	ID        string    `json:"id"`
	Magnitude float64   `json:"magnitude"`
	Type      string    `json:"type"`
	Size      []float64 `json:"size"`
	Angle     float64   `json:"angle"`
	Aliases   []string  `json:"aliases"`
	Name      *string   `json:"name,omitempty"`
}

// ConstellationProperties are the GeoJSON properties of a constellation.
type ConstellationProperties struct {
	ID   string `json:"id"`
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

// objectFields resolves the values shared by both object shapes.
func (e *Encoder) objectFields(o *catalog.CelestialObject) (typeName string, size []float64, angle float64, err error) {
	typeName, err = o.Type.Name()
	if err != nil {
		return "", nil, 0, err
	}

	size = []float64{}
	if o.Size != nil {
		size = []float64{o.Size.Major, o.Size.Minor}
	}
	if o.Angle != nil {
		angle = *o.Angle
	}
	return typeName, size, angle, nil
}

func (e *Encoder) plainObject(o *catalog.CelestialObject) (PlainObject, error) {
	typeName, size, angle, err := e.objectFields(o)
	if err != nil {
		return PlainObject{}, err
	}
	return PlainObject{
		ID:          o.ID,
		Magnitude:   o.Magnitude,
		Type:        typeName,
		Coordinates: e.opts.point(astro.Position{RAdeg: o.RAdeg, DecDeg: o.DecDeg}),
		Size:        size,
		Angle:       angle,
	}, nil
}

func (e *Encoder) objectFeature(o *catalog.CelestialObject) (Feature, error) {
	typeName, size, angle, err := e.objectFields(o)
	if err != nil {
		return Feature{}, err
	}

	aliases := o.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	props := ObjectProperties{
		ID:        o.ID,
		Magnitude: o.Magnitude,
		Type:      typeName,
		Size:      size,
		Angle:     angle,
		Aliases:   aliases,
	}
	if e.opts.IncludeName {
		name := o.ID
		props.Name = &name
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: e.opts.point(astro.Position{RAdeg: o.RAdeg, DecDeg: o.DecDeg}),
		},
		Properties: props,
	}, nil
}

func (e *Encoder) constellationFeature(c *catalog.Constellation) Feature {
	lines := make([][][]float64, 0, len(c.Lines))
	for _, l := range c.Lines {
		points := make([][]float64, 0, len(l.Positions))
		for _, p := range l.Positions {
			points = append(points, e.opts.point(p))
		}
		lines = append(lines, points)
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "MultiLineString",
			Coordinates: lines,
		},
		Properties: ConstellationProperties{
			ID:   c.Abbr,
			Abbr: c.Abbr,
			Name: c.Name,
		},
	}
}
