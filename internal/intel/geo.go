package intel

import (
	"fmt"
	"strings"
)

// Place maps a lowercase keyword to a coarse coordinate.
type Place struct {
	Keyword string
	Coord   Coordinate
}

// Places is scanned in order and the first substring hit wins, so longer
// names must precede names they contain ("north korea" before "korea",
// "south china sea" is unreachable behind "china" and kept for parity).
// Keywords are matched as raw substrings: "un" also hits "under".
var Places = []Place{
	{"ukraine", Coordinate{49.0, 31.2}},
	{"russia", Coordinate{61.5, 105.3}},
	{"gaza", Coordinate{31.5, 34.5}},
	{"israel", Coordinate{31.0, 34.9}},
	{"palestine", Coordinate{31.9, 35.2}},
	{"iran", Coordinate{32.4, 53.7}},
	{"iraq", Coordinate{33.2, 43.7}},
	{"syria", Coordinate{34.8, 38.9}},
	{"china", Coordinate{35.9, 104.2}},
	{"taiwan", Coordinate{23.7, 120.9}},
	{"hong kong", Coordinate{22.3, 114.2}},
	{"north korea", Coordinate{40.3, 127.5}},
	{"korea", Coordinate{36.5, 127.9}},
	{"usa", Coordinate{37.1, -95.6}},
	{"united states", Coordinate{37.1, -95.6}},
	{"america", Coordinate{37.1, -95.6}},
	{"europe", Coordinate{54.5, 15.3}},
	{"germany", Coordinate{51.2, 10.5}},
	{"france", Coordinate{46.2, 2.2}},
	{"uk", Coordinate{55.4, -3.4}},
	{"britain", Coordinate{55.4, -3.4}},
	{"nato", Coordinate{50.8, 4.3}},
	{"un", Coordinate{40.7, -74.0}},
	{"africa", Coordinate{8.8, 26.8}},
	{"sudan", Coordinate{12.9, 30.2}},
	{"ethiopia", Coordinate{9.1, 40.5}},
	{"somalia", Coordinate{5.2, 46.2}},
	{"nigeria", Coordinate{9.1, 8.7}},
	{"congo", Coordinate{-4.0, 21.8}},
	{"india", Coordinate{20.6, 79.0}},
	{"pakistan", Coordinate{30.4, 69.3}},
	{"afghanistan", Coordinate{33.9, 67.7}},
	{"myanmar", Coordinate{19.2, 96.7}},
	{"thailand", Coordinate{15.9, 101.0}},
	{"philippines", Coordinate{12.9, 121.8}},
	{"japan", Coordinate{36.2, 138.3}},
	{"south china sea", Coordinate{14.0, 114.0}},
	{"venezuela", Coordinate{6.4, -66.6}},
	{"colombia", Coordinate{4.6, -74.1}},
	{"mexico", Coordinate{23.6, -102.5}},
	{"brazil", Coordinate{-14.2, -51.9}},
	{"haiti", Coordinate{18.9, -72.3}},
	{"turkey", Coordinate{38.9, 35.2}},
	{"saudi arabia", Coordinate{23.9, 45.1}},
	{"yemen", Coordinate{15.6, 48.5}},
}

// Locate maps free text to a coordinate, DefaultCoordinate when nothing
// matches.
func Locate(text string) Coordinate {
	return LocateIn(Places, text)
}

// LocateIn is Locate over an explicit table.
func LocateIn(places []Place, text string) Coordinate {
	lower := strings.ToLower(text)
	for _, p := range places {
		if strings.Contains(lower, p.Keyword) {
			return p.Coord
		}
	}
	return DefaultCoordinate
}

// ValidatePlaces rejects tables with a repeated keyword. A repeat is
// unreachable behind its first occurrence and usually a copy-paste slip.
func ValidatePlaces(places []Place) error {
	seen := make(map[string]int, len(places))
	for i, p := range places {
		if j, dup := seen[p.Keyword]; dup {
			return fmt.Errorf("place %q repeated at %d (first at %d)", p.Keyword, i, j)
		}
		seen[p.Keyword] = i
	}
	return nil
}
