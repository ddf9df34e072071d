// Package catalog serves the static caravan range: filtering, sorting and
// pricing a configuration.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrUnknownModel is returned for a slug that is not in the range.
	ErrUnknownModel = errors.New("unknown model")
	// ErrUnknownOption is returned when a quote names an option the model does not offer.
	ErrUnknownOption = errors.New("unknown option")
)

// All returns a copy of every model in catalog order.
func All() []Model {
	return slices.Clone(models)
}

// BySlug finds a model.
func BySlug(slug string) (Model, bool) {
	for _, m := range models {
		if m.Slug == slug {
			return m, true
		}
	}
	return Model{}, false
}

// Ranges returns the distinct range names in catalog order.
func Ranges() []string {
	var out []string
	for _, m := range models {
		if !slices.Contains(out, m.Range) {
			out = append(out, m.Range)
		}
	}
	return out
}

// Matches reports whether m satisfies every set field of f.
func (f Filter) Matches(m Model) bool {
	if f.Range != "" && !strings.EqualFold(m.Range, f.Range) {
		return false
	}
	if f.MinBerths > 0 && m.Berths < f.MinBerths {
		return false
	}
	if f.MaxPrice > 0 && m.BasePrice > f.MaxPrice {
		return false
	}
	if f.MaxLength > 0 && m.LengthM > f.MaxLength {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(m.Name + " " + m.Range + " " + m.Summary + " " + strings.Join(m.Features, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// Search filters and sorts the range. An unknown sort key keeps catalog order.
func Search(f Filter, key SortKey) []Model {
	var out []Model
	for _, m := range models {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	Sort(out, key)
	return out
}

// Sort orders ms in place. Ties keep their existing order.
func Sort(ms []Model, key SortKey) {
	var less func(a, b Model) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Model) bool { return a.BasePrice < b.BasePrice }
	case SortPriceDesc:
		less = func(a, b Model) bool { return a.BasePrice > b.BasePrice }
	case SortLength:
		less = func(a, b Model) bool { return a.LengthM < b.LengthM }
	case SortBerths:
		less = func(a, b Model) bool { return a.Berths < b.Berths }
	case SortName:
		less = func(a, b Model) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		return
	}
	sort.SliceStable(ms, func(i, j int) bool { return less(ms[i], ms[j]) })
}

// DefaultOptions returns the ids of the options fitted as standard.
func (m Model) DefaultOptions() []string {
	var ids []string
	for _, o := range m.Options {
		if o.Default {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Option looks up one of the model's options.
func (m Model) Option(id string) (Option, bool) {
	for _, o := range m.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// PriceQuote prices a model with the given options. With no options the
// model's defaults are applied. Repeated ids are counted once.
func PriceQuote(slug string, optionIDs []string) (Quote, error) {
	m, ok := BySlug(slug)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnknownModel, slug)
	}
	if len(optionIDs) == 0 {
		optionIDs = m.DefaultOptions()
	}

	q := Quote{Model: m.Slug, BasePrice: m.BasePrice, Total: m.BasePrice, Options: []Option{}}
	seen := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		o, ok := m.Option(id)
		if !ok {
			return Quote{}, fmt.Errorf("%w %q for %s", ErrUnknownOption, id, m.Slug)
		}
		q.Options = append(q.Options, o)
		q.Total += o.Price
	}
	return q, nil
}
