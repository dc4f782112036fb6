package minerals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestGoldBounds(t *testing.T) {
	tbl := Reference()
	tbl.ApplyPrecious([]string{"Gold slipped to $500 in a typo'd headline"})
	assert.Nil(t, tbl.Gold.Price)

	tbl.ApplyPrecious([]string{"Gold rallies to $2600 as dollar weakens"})
	assert.Equal(t, "$2600", deref(tbl.Gold.Price))
}

func TestGoldPerOunceFallback(t *testing.T) {
	tbl := Reference()
	tbl.ApplyPrecious([]string{"Spot bullion at $2,650.40 per ounce"})
	assert.Equal(t, "$2,650.40", deref(tbl.Gold.Price))
}

func TestGoldFirstPatternShadowsSecond(t *testing.T) {
	// the named pattern matched with a low value, so the per-ounce
	// pattern is not consulted for this text
	tbl := Reference()
	tbl.ApplyPrecious([]string{"gold coins from $50, bullion $2,700 per ounce"})
	assert.Nil(t, tbl.Gold.Price)
}

func TestSilverBounds(t *testing.T) {
	tbl := Reference()
	tbl.ApplyPrecious([]string{"silver futures $250.00"})
	assert.Nil(t, tbl.Silver.Price)

	tbl.ApplyPrecious([]string{"Silver trades near $31.20."})
	assert.Equal(t, "$31.20.", deref(tbl.Silver.Price))
}

func TestFirstAcceptedMatchWins(t *testing.T) {
	tbl := Reference()
	tbl.ApplyPrecious([]string{
		"gold price today $2,610",
		"gold price yesterday $2,590",
	})
	assert.Equal(t, "$2,610", deref(tbl.Gold.Price))
}

func TestIndustrial(t *testing.T) {
	tbl := Reference()
	tbl.ApplyIndustrial([]string{
		"Lithium carbonate $900 per tonne in China",
		"lithium hydroxide $10,500 per tonne; cobalt at $24,000",
		"Copper edges up to $4.12/lb",
	})
	assert.Equal(t, "$10,500", deref(tbl.Lithium.Price))
	assert.Equal(t, "$24,000", deref(tbl.Cobalt.Price))
	assert.Equal(t, "$4.12", deref(tbl.Copper.Price))
}

func TestSupplyStatus(t *testing.T) {
	assert.Equal(t, StatusConstrained, supplyStatus("Export restrictions tighten rare earth supply"))
	assert.Equal(t, StatusStable, supplyStatus("Supply remains STABLE this quarter"))
	assert.Equal(t, StatusMonitored, supplyStatus(""))
}

func TestLeadingNumbers(t *testing.T) {
	v, ok := leadingInt("2,600.50")
	require.True(t, ok)
	assert.Equal(t, int64(2600), v)

	_, ok = leadingInt(",")
	assert.False(t, ok)

	f, ok := leadingFloat("31.20.")
	require.True(t, ok)
	assert.InDelta(t, 31.2, f, 1e-9)

	_, ok = leadingFloat("...")
	assert.False(t, ok)
}

func TestRun_NilExtractorLeavesPricesUnset(t *testing.T) {
	out := Run(context.Background(), nil)
	require.NoError(t, out.Err)
	assert.Equal(t, Reference(), out.Table)
	assert.Equal(t, 0, out.Table.Resolved())

	body, err := json.Marshal(out.Table)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"gold":{"symbol":"Au","unit":"/oz"`)
	assert.Contains(t, string(body), `"rareEarths":{`)
	assert.Contains(t, string(body), `"price":null`)
}

func TestExtractor_Enrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-API-KEY"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Q {
		case preciousQuery:
			assert.Equal(t, 5, req.Num)
			_, _ = w.Write([]byte(`{"knowledgeGraph":{"attributes":{"Price":"$2,655.10 USD"}},"organic":[{"title":"Silver","snippet":"silver at $30.5 today"}]}`))
		case industrialQuery:
			w.WriteHeader(http.StatusInternalServerError)
		case rareEarthsQuery:
			assert.Equal(t, 2, req.Num)
			_, _ = w.Write([]byte(`{"organic":[{"title":"x","snippet":"A deepening supply crisis"},{"title":"y","snippet":"stable"}]}`))
		default:
			t.Errorf("unexpected query %q", req.Q)
		}
	}))
	defer srv.Close()

	out := Run(context.Background(), NewExtractor(srv.URL, "key", time.Second, nil))
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "industrial")

	assert.Equal(t, "$2,655.10", deref(out.Table.Gold.Price))
	assert.Equal(t, "$30.5", deref(out.Table.Silver.Price))
	assert.Nil(t, out.Table.Lithium.Price)
	assert.Nil(t, out.Table.Copper.Price)
	assert.Equal(t, StatusConstrained, deref(out.Table.RareEarths.Price))
}
