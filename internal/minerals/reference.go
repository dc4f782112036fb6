// Package minerals keeps the commodity reference table and fills in live
// prices scraped from search snippets.
package minerals

// Entry is one commodity row. Price stays nil until a value is extracted.
type Entry struct {
	Symbol  string  `json:"symbol"`
	Unit    string  `json:"unit"`
	Origins string  `json:"origins"`
	Players string  `json:"players"`
	Price   *string `json:"price"`
}

// Table is the full commodity grid in display order.
type Table struct {
	Gold       Entry `json:"gold"`
	Silver     Entry `json:"silver"`
	Lithium    Entry `json:"lithium"`
	Cobalt     Entry `json:"cobalt"`
	Copper     Entry `json:"copper"`
	RareEarths Entry `json:"rareEarths"`
}

// Reference returns the static table with every price unset.
func Reference() Table {
	return Table{
		Gold:       Entry{Symbol: "Au", Unit: "/oz", Origins: "China, Australia, Russia, USA", Players: "Newmont, Barrick Gold, AngloGold"},
		Silver:     Entry{Symbol: "Ag", Unit: "/oz", Origins: "Mexico, Peru, China, Australia", Players: "Fresnillo, Polymetal, Pan American Silver"},
		Lithium:    Entry{Symbol: "Li", Unit: "/t", Origins: "Australia, Chile, China, Argentina", Players: "Albemarle, SQM, Ganfeng Lithium"},
		Cobalt:     Entry{Symbol: "Co", Unit: "/t", Origins: "DRC (70%), Russia, Australia", Players: "Glencore, CMOC, ERG"},
		Copper:     Entry{Symbol: "Cu", Unit: "/lb", Origins: "Chile, Peru, DRC, China", Players: "Codelco, Freeport-McMoRan, BHP"},
		RareEarths: Entry{Symbol: "RE", Unit: "", Origins: "China (60%), Myanmar, USA, Australia", Players: "Northern Rare Earths, Lynas, MP Materials"},
	}
}

// Resolved counts entries with a price set.
func (t Table) Resolved() int {
	n := 0
	for _, e := range []Entry{t.Gold, t.Silver, t.Lithium, t.Cobalt, t.Copper, t.RareEarths} {
		if e.Price != nil {
			n++
		}
	}
	return n
}
