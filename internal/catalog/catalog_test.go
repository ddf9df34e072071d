package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugs(ms []Model) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Slug
	}
	return out
}

func TestSlugsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range All() {
		assert.False(t, seen[m.Slug], "duplicate slug %s", m.Slug)
		seen[m.Slug] = true
		assert.Greater(t, m.ATMKg, m.TareKg, m.Slug)
	}
}

func TestFilterPredicates(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"everything", Filter{}, slugs(All())},
		{"range case-insensitive", Filter{Range: "outback"}, []string{"outback-18", "outback-21-family"}},
		{"min berths", Filter{MinBerths: 5}, []string{"outback-21-family", "family-20-bunk"}},
		{"max price", Filter{MaxPrice: 65000}, []string{"coastal-16", "coastal-19"}},
		{"max length", Filter{MaxLength: 5.5}, []string{"coastal-16", "outback-18"}},
		{"text search", Filter{Query: "ENSUITE"}, []string{"coastal-19", "family-20-bunk", "family-22-lounge"}},
		{"combined", Filter{Range: "Family", MaxPrice: 70000}, []string{"family-20-bunk"}},
		{"no match", Filter{Range: "Pop-top"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.filter, "")
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, slugs(got))
			for _, m := range got {
				assert.True(t, tt.filter.Matches(m))
			}
		})
	}
}

func TestSortKeys(t *testing.T) {
	byPrice := Search(Filter{}, SortPriceAsc)
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].BasePrice, byPrice[i].BasePrice)
	}

	desc := Search(Filter{}, SortPriceDesc)
	assert.Equal(t, "outback-21-family", desc[0].Slug)

	byLength := Search(Filter{}, SortLength)
	assert.Equal(t, "coastal-16", byLength[0].Slug)
	assert.Equal(t, "family-22-lounge", byLength[len(byLength)-1].Slug)

	byBerths := Search(Filter{}, SortBerths)
	assert.Equal(t, 6, byBerths[len(byBerths)-1].Berths)

	byName := Search(Filter{}, SortName)
	assert.Equal(t, "Coastal 16", byName[0].Name)

	assert.Equal(t, slugs(All()), slugs(Search(Filter{}, "bogus")))
}

func TestRanges(t *testing.T) {
	assert.Equal(t, []string{"Coastal", "Outback", "Family"}, Ranges())
}

func TestPriceQuote(t *testing.T) {
	q, err := PriceQuote("outback-18", nil)
	require.NoError(t, err)
	assert.Equal(t, 79990+2990+2650, q.Total)
	assert.Len(t, q.Options, 2)

	q, err = PriceQuote("coastal-16", []string{"tv-24", "tv-24", "awning-electric"})
	require.NoError(t, err)
	assert.Equal(t, 54990+690+1890, q.Total)

	_, err = PriceQuote("coastal-16", []string{"diesel-heater"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = PriceQuote("pop-top-14", nil)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/models?range=coastal&sort=-price")
	require.Equal(t, http.StatusOK, w.Code)
	var ms []Model
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ms))
	assert.Equal(t, []string{"coastal-19", "coastal-16"}, slugs(ms))

	w = get("/models?range=none")
	assert.JSONEq(t, "[]", w.Body.String())

	assert.Equal(t, http.StatusOK, get("/models/coastal-19").Code)
	assert.Equal(t, http.StatusNotFound, get("/models/nope").Code)

	w = get("/models/coastal-19/price?options=washer,solar-200")
	require.Equal(t, http.StatusOK, w.Code)
	var q Quote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&q))
	assert.Equal(t, 64990+990+1450, q.Total)

	assert.Equal(t, http.StatusBadRequest, get("/models/coastal-19/price?options=jetski").Code)
	assert.Equal(t, http.StatusNotFound, get("/models/nope/price").Code)
}
