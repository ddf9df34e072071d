package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{validate.Errors{"email": "is required"}, http.StatusBadRequest},
		{fmt.Errorf("getting quote: %w", db.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		WriteError(w, tt.err)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())

		var body ErrorBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.NotEmpty(t, body.Error)
	}
}

func TestDecodeValidates(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"x"}`))
	var p payload
	err := Decode(req, &p)
	var fields validate.Errors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "email")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	err = Decode(req, &p)
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "body")
}

func TestParsePage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&offset=10", nil)
	assert.Equal(t, Page{Limit: 5, Offset: 10}, ParsePage(req))

	req = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=abc", nil)
	assert.Equal(t, Page{}, ParsePage(req))
}

func TestParseTime(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?since=2026-03-01&until=2026-03-02T10:00:00Z&bad=yesterday", nil)
	since := ParseTime(req, "since")
	require.NotNil(t, since)
	assert.Equal(t, 2026, since.Year())
	assert.NotNil(t, ParseTime(req, "until"))
	assert.Nil(t, ParseTime(req, "bad"))
	assert.Nil(t, ParseTime(req, "missing"))
}

func TestParseUntilCoversWholeDay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?until=2026-03-02&exact=2026-03-02T10:00:00Z", nil)

	until := ParseUntil(req, "until")
	require.NotNil(t, until)
	evening := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)
	assert.False(t, evening.After(*until), "last second of the day is included")
	assert.True(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC).After(*until), "next day is excluded")

	exact := ParseUntil(req, "exact")
	require.NotNil(t, exact)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), *exact)
	assert.Nil(t, ParseUntil(req, "missing"))
}

func TestParseListFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?status=new&q=smith&since=2026-01-02&until=bogus&limit=5&offset=10", nil)
	f := ParseListFilter(req)

	assert.Equal(t, "new", f.Status)
	assert.Equal(t, "smith", f.Query)
	require.NotNil(t, f.Since)
	assert.Equal(t, 2, f.Since.Day())
	assert.Nil(t, f.Until)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, 10, f.Offset)
}
