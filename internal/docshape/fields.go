package docshape

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Document is a decoded store document.
type Document map[string]any

// String returns the first non-empty string among keys.
func (d Document) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := d[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Int returns the first numeric value among keys, rounded.
func (d Document) Int(keys ...string) (int, bool) {
	for _, k := range keys {
		if n, ok := number(d[k]); ok {
			return int(math.Round(n)), true
		}
	}
	return 0, false
}

// Bool returns the first boolean among keys.
func (d Document) Bool(keys ...string) bool {
	for _, k := range keys {
		if b, ok := d[k].(bool); ok {
			return b
		}
	}
	return false
}

// Strings returns the first list among keys. A comma-separated string is
// split.
func (d Document) Strings(keys ...string) []string {
	for _, k := range keys {
		switch v := d[k].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			return out
		case []string:
			return v
		case string:
			if v == "" {
				continue
			}
			var out []string
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out
		}
	}
	return nil
}

// Has reports whether any of keys is present.
func (d Document) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := d[k]; ok {
			return true
		}
	}
	return false
}

// Slugify lowercases s and joins its runs of letters and digits with
// hyphens. Letters of every script are kept; accents on Latin letters are
// dropped so "Café" becomes "cafe".
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	latinBase := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		case unicode.IsMark(r):
			if !latinBase && b.Len() > 0 && !pendingHyphen {
				b.WriteRune(r)
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			latinBase = unicode.Is(unicode.Latin, r)
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’':
			// Drop apostrophes so "Pat's" becomes "pats".
		default:
			pendingHyphen = true
		}
	}
	return norm.NFC.String(b.String())
}

// SlugFor slugifies title, falling back to id when the title has no letters
// or digits to build a slug from.
func SlugFor(title, id string) string {
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return Slugify(id)
}
