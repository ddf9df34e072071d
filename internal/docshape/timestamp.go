// Package docshape normalizes documents exported from the hosted store,
// where the same collection holds records written by several generations
// of the site.
package docshape

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accepted string layouts, tried in order. Strings without a zone are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp converts any of the timestamp shapes found in exports to
// a UTC time:
//
//   - an ISO 8601 string, with or without fractional seconds or zone,
//   - a store timestamp object {seconds, nanoseconds} or {_seconds, _nanoseconds},
//   - a number of milliseconds since the epoch,
//   - nil or an empty string, which yield the zero time.
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTimeString(t)
	case float64:
		return fromMillis(t), nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", t, err)
		}
		return fromMillis(f), nil
	case map[string]any:
		return parseTimestampObject(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// Timestamp is ParseTimestamp with unparseable values mapped to the zero time.
func Timestamp(v any) time.Time {
	t, err := ParseTimestamp(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	// Some exports stringify the epoch milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func parseTimestampObject(m map[string]any) (time.Time, error) {
	secs, ok := number(m["seconds"])
	if !ok {
		secs, ok = number(m["_seconds"])
	}
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp object without seconds: %v", m)
	}
	nanos, ok := number(m["nanoseconds"])
	if !ok {
		nanos, _ = number(m["_nanoseconds"])
	}
	return time.Unix(int64(secs), int64(nanos)).UTC(), nil
}

func fromMillis(ms float64) time.Time {
	whole, frac := math.Modf(ms)
	return time.UnixMilli(int64(whole)).Add(time.Duration(frac * float64(time.Millisecond))).UTC()
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
