package intel

import (
	"regexp"
	"strings"
)

// Sector is the closed set of topical categories.
type Sector int

const (
	SectorConflict Sector = iota
	SectorEconomy
	SectorEnvironment
	SectorTechnology
	SectorHealth
)

// DefaultSector is assigned when no rule matches.
const DefaultSector = SectorConflict

var sectorNames = [...]struct {
	label    string
	category string
}{
	SectorConflict:    {"Geopolitics / Conflict", "Geopolitics & Conflict"},
	SectorEconomy:     {"Economy / Global", "Economy & Trade"},
	SectorEnvironment: {"Environment / Energy", "Environment & Energy"},
	SectorTechnology:  {"Technology / Security", "Technology & Science"},
	SectorHealth:      {"Health / Society", "Health & Society"},
}

// Sectors lists every sector in enum order.
func Sectors() []Sector {
	return []Sector{SectorConflict, SectorEconomy, SectorEnvironment, SectorTechnology, SectorHealth}
}

// Label is the display name stored in Topic/Sector.
func (s Sector) Label() string {
	if s < 0 || int(s) >= len(sectorNames) {
		return sectorNames[DefaultSector].label
	}
	return sectorNames[s].label
}

// Category is the color-coding name stored in Broad_Category.
func (s Sector) Category() string {
	if s < 0 || int(s) >= len(sectorNames) {
		return sectorNames[DefaultSector].category
	}
	return sectorNames[s].category
}

func (s Sector) String() string {
	return s.Label()
}

// ParseSector resolves either a label or a category name.
func ParseSector(name string) (Sector, bool) {
	for _, s := range Sectors() {
		if name == s.Label() || name == s.Category() {
			return s, true
		}
	}
	return DefaultSector, false
}

// RulesVersion changes whenever SectorRules changes order or content.
// Reordering silently reclassifies any text that matches several rules.
const RulesVersion = 1

// SectorRule pairs a predicate with the sector it selects.
type SectorRule struct {
	Pattern *regexp.Regexp
	Sector  Sector
}

// SectorRules is evaluated top to bottom; the first match wins. Patterns are
// unanchored substring tests on lowercased text, so short tokens like "ai"
// or "cop" also match inside longer words.
var SectorRules = []SectorRule{
	{regexp.MustCompile(`war|conflict|military|attack|missile|sanction|nato|nuclear|troops|coup|siege|weapons|drone`), SectorConflict},
	{regexp.MustCompile(`economy|trade|gdp|inflation|tariff|market|debt|recession|bank|supply chain|crypto`), SectorEconomy},
	{regexp.MustCompile(`climate|energy|oil|gas|carbon|emissions|environment|flooding|drought|cop`), SectorEnvironment},
	{regexp.MustCompile(`ai|tech|cyber|hack|satellite|space|chip|quantum|digital|surveillance`), SectorTechnology},
	{regexp.MustCompile(`health|pandemic|disease|vaccine|hospital|mental|food crisis|famine`), SectorHealth},
}

// Classify maps free text to a sector.
func Classify(text string) Sector {
	t := strings.ToLower(text)
	for _, rule := range SectorRules {
		if rule.Pattern.MatchString(t) {
			return rule.Sector
		}
	}
	return DefaultSector
}
