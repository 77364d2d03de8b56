package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/logging"
)

// LoadConstellations reads constellation line figures.
//
// The format is line oriented. A line starting in column one is a header
// "ABBR Full Name"; each following indented line is one polyline written as
// whitespace separated "ra,dec" pairs (RA in decimal hours, Dec in degrees).
// Blank lines and lines starting with '#' are ignored.
//
//	ORI Orion
//	    5.919,7.407 5.533,-0.299 5.242,-8.202
//	    5.679,-1.943 5.603,-1.202 5.533,-0.299
func LoadConstellations(r io.Reader, logger *logging.Logger) ([]*Constellation, error) {
	var (
		result  []*Constellation
		current *Constellation
		lineNo  int
	)
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		indented := raw[0] == ' ' || raw[0] == '\t'
		if !indented {
			fields := strings.Fields(text)
			abbr := fields[0]
			if seen[abbr] {
				return nil, fmt.Errorf("constellations: %w: %s (line %d)", ErrDuplicateID, abbr, lineNo)
			}
			seen[abbr] = true
			current = &Constellation{
				Abbr: abbr,
				Name: strings.Join(fields[1:], " "),
			}
			if current.Name == "" {
				current.Name = abbr
			}
			result = append(result, current)
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("constellations: %w: line %d: polyline before header", ErrMalformed, lineNo)
		}

		line, err := parsePolyline(text)
		if err != nil {
			return nil, fmt.Errorf("constellations: %w: line %d: %v", ErrMalformed, lineNo, err)
		}
		current.Lines = append(current.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("constellations: %w", err)
	}

	logger.Info("Loaded %d constellations", len(result))
	return result, nil
}

func parsePolyline(text string) (Line, error) {
	var line Line
	for _, pair := range strings.Fields(text) {
		raStr, decStr, ok := strings.Cut(pair, ",")
		if !ok {
			return Line{}, fmt.Errorf("point %q is not ra,dec", pair)
		}
		raHours, err := parseFinite(raStr)
		if err != nil || raHours < 0 || raHours > 24 {
			return Line{}, fmt.Errorf("point %q: bad right ascension", pair)
		}
		dec, err := parseFinite(decStr)
		if err != nil || dec < -90 || dec > 90 {
			return Line{}, fmt.Errorf("point %q: bad declination", pair)
		}
		line.Positions = append(line.Positions, astro.Position{
			RAdeg:  astro.NormalizeRA(astro.HoursToDegrees(raHours)),
			DecDeg: dec,
		})
	}
	return line, nil
}
