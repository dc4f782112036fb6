package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FirstRuleWins(t *testing.T) {
	// "war" (conflict) and "trade" (economy) both match; conflict is listed first.
	assert.Equal(t, SectorConflict, Classify("Trade war escalates between rivals"))
	// "oil" (environment) and "tariff" (economy); economy is listed first.
	assert.Equal(t, SectorEconomy, Classify("New tariff on oil imports"))
	// "energy" (environment) and "cyber" (technology).
	assert.Equal(t, SectorEnvironment, Classify("Cyber incident hits energy grid"))
}

func TestClassify_EachSector(t *testing.T) {
	cases := map[string]Sector{
		"Missile strike reported":         SectorConflict,
		"GDP shrinks for second quarter":  SectorEconomy,
		"Severe drought across the plain": SectorEnvironment,
		"Quantum computing breakthrough":  SectorTechnology,
		"Vaccine rollout begins":          SectorHealth,
	}
	for text, want := range cases {
		assert.Equal(t, want, Classify(text), text)
	}
}

func TestClassify_DefaultsToConflict(t *testing.T) {
	assert.Equal(t, SectorConflict, Classify("Elections held peacefully"))
	assert.Equal(t, SectorConflict, Classify(""))
}

func TestClassify_CaseInsensitiveAndSubstring(t *testing.T) {
	// "ai" matches inside "said"; this mirrors the shipped rules.
	assert.Equal(t, SectorTechnology, Classify("Minister SAID nothing"))
	assert.Equal(t, SectorHealth, Classify("HOSPITAL capacity"))
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Drone attack on oil facility raises market fears"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestSectorLabels(t *testing.T) {
	assert.Equal(t, "Geopolitics / Conflict", SectorConflict.Label())
	assert.Equal(t, "Economy & Trade", SectorEconomy.Category())
	assert.Equal(t, "Technology / Security", SectorTechnology.String())
	assert.Equal(t, DefaultSector.Label(), Sector(42).Label())

	for _, s := range Sectors() {
		got, ok := ParseSector(s.Label())
		assert.True(t, ok)
		assert.Equal(t, s, got)
		got, ok = ParseSector(s.Category())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseSector("Culture & Entertainment")
	assert.False(t, ok)
}
