// Package encode renders selected catalog records as either a compact JSON
// array or a GeoJSON FeatureCollection.
package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/catalog"
)

// ErrUnsupportedRecord is returned when a record kind has no representation
// in the selected mode.
var ErrUnsupportedRecord = errors.New("record not supported in this mode")

// Mode selects the output document shape.
type Mode int

const (
	ModePlain Mode = iota
	ModeGeoJSON
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeGeoJSON:
		return "geojson"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options controls rendering. It is copied into the Encoder and never
// modified afterwards.
type Options struct {
	Mode        Mode
	InvertRA    bool // write 360-RA for every coordinate
	IncludeName bool // add properties.name (= id) to GeoJSON object features
	Indent      int  // >0 pretty prints with sorted keys
}

// RA returns the right ascension as it will be written.
func (o Options) RA(deg float64) float64 {
	if o.InvertRA {
		return astro.InvertRA(deg)
	}
	return deg
}

func (o Options) point(p astro.Position) []float64 {
	return []float64{o.RA(p.RAdeg), p.DecDeg}
}

// Encoder renders records with a fixed set of options.
type Encoder struct {
	opts Options
}

// New creates an encoder.
func New(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Options returns a copy of the encoder's options.
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode renders the whole document in memory. Any record that fails to
// encode fails the document; there is no partial output.
func Encode(records []catalog.Record, opts Options) ([]byte, error) {
	return New(opts).Encode(records)
}

// Encode renders records as a single JSON document without a trailing newline.
func (e *Encoder) Encode(records []catalog.Record) ([]byte, error) {
	doc, err := e.Document(records)
	if err != nil {
		return nil, err
	}
	return e.marshal(doc)
}

// Document builds the value that Encode serializes.
func (e *Encoder) Document(records []catalog.Record) (any, error) {
	items := make([]any, 0, len(records))
	for i, r := range records {
		v, err := e.encodeAs(r)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s %q): %w", i, r.Kind, r.ID(), err)
		}
		items = append(items, v)
	}

	switch e.opts.Mode {
	case ModePlain:
		return items, nil
	case ModeGeoJSON:
		return FeatureCollection{Type: "FeatureCollection", Features: items}, nil
	default:
		return nil, fmt.Errorf("unknown mode %v", e.opts.Mode)
	}
}

// encodeAs converts one record into its mode-specific shape.
func (e *Encoder) encodeAs(r catalog.Record) (any, error) {
	switch r.Kind {
	case catalog.KindObject:
		if e.opts.Mode == ModeGeoJSON {
			return e.objectFeature(r.Object)
		}
		return e.plainObject(r.Object)
	case catalog.KindConstellation:
		if e.opts.Mode == ModeGeoJSON {
			return e.constellationFeature(r.Constellation), nil
		}
		return nil, ErrUnsupportedRecord
	default:
		return r.Value, nil
	}
}

func (e *Encoder) marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if e.opts.Indent <= 0 {
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}

	// Struct fields keep declaration order, so pass the document through
	// generic maps to get sorted keys.
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("reparse json: %w", err)
	}

	var out bytes.Buffer
	pretty := json.NewEncoder(&out)
	pretty.SetEscapeHTML(false)
	pretty.SetIndent("", strings.Repeat(" ", e.opts.Indent))
	if err := pretty.Encode(generic); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimRight(out.Bytes(), "\n"), nil
}
