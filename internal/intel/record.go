// Package intel holds the Event Record schema and the pure text heuristics
// (sector classification, coarse geolocation) applied to every record.
package intel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Origin tags which adapter produced a record. Diagnostics only.
const (
	OriginCurated = "curated"
	OriginSerper  = "serper"
	OriginGNews   = "gnews"
	OriginRSS     = "rss"
	OriginStatic  = "static"
)

// Record is one unit of intelligence. JSON keys are the wire names the
// front-end and the bundled snapshot already use.
type Record struct {
	Sector      string `json:"Topic/Sector"`
	Subject     string `json:"Entity/Subject"`
	KeyPlayers  string `json:"Key Player/Organization"`
	Timeline    string `json:"Timeline"`
	Impact      string `json:"Expected Impact/Value"`
	SourceLabel string `json:"Source"`
	URL         string `json:"url,omitempty"`
	Latitude    string `json:"Latitude"`
	Longitude   string `json:"Longitude"`
	Category    string `json:"Broad_Category"`
	IsCurated   bool   `json:"isCurated"`
	IsScraped   bool   `json:"isScraped"`
	Origin      string `json:"_scraperSource,omitempty"`
}

// Valid reports whether the record has a subject and a known sector.
func (r Record) Valid() bool {
	if strings.TrimSpace(r.Subject) == "" {
		return false
	}
	_, ok := ParseSector(r.Sector)
	return ok
}

// SetSector writes both the display label and the color-coding category.
func (r *Record) SetSector(s Sector) {
	r.Sector = s.Label()
	r.Category = s.Category()
}

// SetCoordinate stores c in the stringified lat/lng fields.
func (r *Record) SetCoordinate(c Coordinate) {
	r.Latitude, r.Longitude = c.Strings()
}

// Coordinate is a coarse (lat, lng) pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// DefaultCoordinate is returned when no place keyword matches.
var DefaultCoordinate = Coordinate{Lat: 20.0, Lng: 0.0}

// Strings formats the pair the way the front-end expects: shortest
// representation, so 20.0 becomes "20" and 31.2 stays "31.2".
func (c Coordinate) Strings() (string, string) {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64), strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Feed is the envelope served to callers.
type Feed struct {
	Items    []Record        `json:"items"`
	Minerals json.RawMessage `json:"minerals,omitempty"`
}

// DecodeFeed accepts both response shapes: the current {items, minerals}
// envelope and the legacy bare array served by the static fallback path.
func DecodeFeed(body []byte) (Feed, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return Feed{}, errors.New("empty feed body")
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []Record
		if err := json.Unmarshal(body, &items); err != nil {
			return Feed{}, fmt.Errorf("decode legacy feed: %w", err)
		}
		return Feed{Items: items}, nil
	}

	var f Feed
	if err := json.Unmarshal(body, &f); err != nil {
		return Feed{}, fmt.Errorf("decode feed: %w", err)
	}
	if f.Items == nil {
		f.Items = []Record{}
	}
	return f, nil
}
