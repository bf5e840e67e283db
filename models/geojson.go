package models

import (
	"encoding/json"
	"strings"
)

// Coordinate is a single vertex, latitude first. GeoJSON carries vertices
// longitude-first, the swap happens exactly once at parse time.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseLineString reads a GeoJSON LineString payload into an ordered vertex list.
// It never returns an error: malformed input is reported through the failed flag
// so callers can surface it as a validation message instead of a fault.
//
// A blank payload and an empty coordinates array both parse to zero vertices
// without counting as a failure. Vertex entries that are not arrays of at least
// two numbers are skipped; everything else fails the parse as a whole
// (bad JSON, missing or non-LineString type, missing or non-array coordinates).
func ParseLineString(payload string) (coords []Coordinate, failed bool) {
	if strings.TrimSpace(payload) == "" {
		return nil, false
	}

	var doc struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, true
	}
	if !strings.EqualFold(doc.Type, "LineString") {
		return nil, true
	}
	if len(doc.Coordinates) == 0 {
		return nil, true
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(doc.Coordinates, &entries); err != nil || entries == nil {
		return nil, true
	}

	for _, entry := range entries {
		var pair []float64
		if err := json.Unmarshal(entry, &pair); err != nil || len(pair) < 2 {
			continue
		}
		coords = append(coords, Coordinate{Latitude: pair[1], Longitude: pair[0]})
	}
	return coords, false
}

// lineCache memoizes the parsed vertex list keyed by the exact source string.
// Re-reading with an unchanged source returns the same slice; assigning a new
// source invalidates on the next read.
type lineCache struct {
	populated bool
	source    string
	coords    []Coordinate
	failed    bool
}

func (c *lineCache) getOrCompute(source string) ([]Coordinate, bool) {
	if !c.populated || c.source != source {
		c.coords, c.failed = ParseLineString(source)
		c.source = source
		c.populated = true
	}
	return c.coords, c.failed
}
