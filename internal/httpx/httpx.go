// Package httpx holds the JSON request/response helpers shared by every
// route package.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// maxBodyBytes bounds request bodies; forms are small.
const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status code and writes an ErrorBody.
// Validation errors become 400, db.ErrNotFound 404, anything else 500.
func WriteError(w http.ResponseWriter, err error) {
	var fields validate.Errors
	switch {
	case errors.As(err, &fields):
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Fields: fields})
	case errors.Is(err, db.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, ErrorBody{Error: "not found"})
	default:
		WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: err.Error()})
	}
}

// BadRequest writes a 400 with a plain message.
func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: msg})
}

// Decode reads a JSON body into v and validates it.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return validate.Errors{"body": fmt.Sprintf("invalid JSON: %v", err)}
	}
	return validate.Struct(v)
}

// Page is the limit/offset pair common to every list endpoint.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset query parameters. Invalid values are ignored.
func ParsePage(r *http.Request) Page {
	var p Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Offset = n
		}
	}
	return p
}

// ParseTime reads an RFC 3339 (or YYYY-MM-DD) query parameter.
func ParseTime(r *http.Request, key string) *time.Time {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return &t
	}
	return nil
}

// ParseUntil reads an upper time bound for an inclusive (<=) comparison. A
// bare date covers that whole day, so until=2026-03-02 matches records
// created at any time on the 2nd.
func ParseUntil(r *http.Request, key string) *time.Time {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end
	}
	return nil
}

// ParseListFilter reads the admin list query parameters:
// status, q, since, until, limit and offset.
func ParseListFilter(r *http.Request) db.ListFilter {
	q := r.URL.Query()
	page := ParsePage(r)
	return db.ListFilter{
		Status: q.Get("status"),
		Query:  q.Get("q"),
		Since:  ParseTime(r, "since"),
		Until:  ParseUntil(r, "until"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
