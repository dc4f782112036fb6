package minerals

import (
	"regexp"
	"strconv"
	"strings"
)

// Supply status labels for rare earths, which have no single spot price.
const (
	StatusConstrained = "⚠ CONSTRAINED"
	StatusStable      = "✅ STABLE"
	StatusMonitored   = "⬤ MONITORED"
)

var (
	goldRe         = regexp.MustCompile(`(?i)gold.*?\$\s*([\d,]+\.?\d*)`)
	goldPerOunceRe = regexp.MustCompile(`(?i)\$\s*([\d,]+\.?\d*).*?(?:per\s+ounce|/oz)`)
	silverRe       = regexp.MustCompile(`(?i)silver.*?\$\s*([\d,.]+)`)
	lithiumRe      = regexp.MustCompile(`(?i)lithium.*?\$\s*([\d,]+)`)
	cobaltRe       = regexp.MustCompile(`(?i)cobalt.*?\$\s*([\d,]+)`)
	copperRe       = regexp.MustCompile(`(?i)copper.*?\$\s*([\d,.]+)`)
	dollarRe       = regexp.MustCompile(`\$[\d,]+\.?\d*`)

	constrainedRe = regexp.MustCompile(`(?i)shortage|crisis|disruption|restrict|ban|tension`)
	stableRe      = regexp.MustCompile(`(?i)stable|surplus|growth`)

	leadingFloatRe = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

func capture(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// leadingInt reads the integer prefix of a capture after dropping commas.
func leadingInt(raw string) (int64, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	return v, err == nil
}

// leadingFloat reads the decimal prefix of a capture after dropping commas.
func leadingFloat(raw string) (float64, bool) {
	s := leadingFloatRe.FindString(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func price(raw string) *string {
	p := "$" + raw
	return &p
}

// goldPrice tries the named pattern first and only falls back to the
// per-ounce pattern when the first does not match at all.
func goldPrice(text string) *string {
	raw, ok := capture(goldRe, text)
	if !ok {
		raw, ok = capture(goldPerOunceRe, text)
	}
	if !ok {
		return nil
	}
	if v, ok := leadingInt(raw); ok && v > 1000 {
		return price(raw)
	}
	return nil
}

func silverPrice(text string) *string {
	raw, ok := capture(silverRe, text)
	if !ok {
		return nil
	}
	if v, ok := leadingFloat(raw); ok && v < 200 {
		return price(raw)
	}
	return nil
}

func tonnePrice(re *regexp.Regexp, text string) *string {
	raw, ok := capture(re, text)
	if !ok {
		return nil
	}
	if v, ok := leadingInt(raw); ok && v > 1000 {
		return price(raw)
	}
	return nil
}

func copperPrice(text string) *string {
	raw, ok := capture(copperRe, text)
	if !ok {
		return nil
	}
	return price(raw)
}

// knowledgeGraphPrice takes the first dollar amount from a knowledge
// graph price string as is.
func knowledgeGraphPrice(s string) *string {
	m := dollarRe.FindString(s)
	if m == "" {
		return nil
	}
	return &m
}

// supplyStatus grades a rare earth supply snippet.
func supplyStatus(snippet string) string {
	switch {
	case constrainedRe.MatchString(snippet):
		return StatusConstrained
	case stableRe.MatchString(snippet):
		return StatusStable
	default:
		return StatusMonitored
	}
}

// ApplyPrecious fills gold and silver from result texts, first accepted
// match wins.
func (t *Table) ApplyPrecious(texts []string) {
	for _, text := range texts {
		if t.Gold.Price == nil {
			t.Gold.Price = goldPrice(text)
		}
		if t.Silver.Price == nil {
			t.Silver.Price = silverPrice(text)
		}
	}
}

// ApplyIndustrial fills lithium, cobalt and copper.
func (t *Table) ApplyIndustrial(texts []string) {
	for _, text := range texts {
		if t.Lithium.Price == nil {
			t.Lithium.Price = tonnePrice(lithiumRe, text)
		}
		if t.Cobalt.Price == nil {
			t.Cobalt.Price = tonnePrice(cobaltRe, text)
		}
		if t.Copper.Price == nil {
			t.Copper.Price = copperPrice(text)
		}
	}
}

// ApplyRareEarths sets the supply status label from the lead snippet.
func (t *Table) ApplyRareEarths(snippet string) {
	status := supplyStatus(snippet)
	t.RareEarths.Price = &status
}
