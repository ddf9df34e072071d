// Package locator implements the dealer and service-agent finders: a fixed
// set of map regions, the entries in each, and the region selection toggle.
package locator

import (
	"slices"
	"strings"
)

// Directory is a set of entries grouped by map region.
type Directory struct {
	Kind    string
	regions []Region
	entries []Entry
}

// NewDirectory creates a Directory. Entries naming unknown regions are kept
// but never listed for a selection.
func NewDirectory(kind string, regions []Region, entries []Entry) *Directory {
	return &Directory{Kind: kind, regions: regions, entries: entries}
}

// Regions returns the map regions in drawing order.
func (d *Directory) Regions() []Region {
	return slices.Clone(d.regions)
}

// Region looks up a region by id.
func (d *Directory) Region(id string) (Region, bool) {
	for _, r := range d.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Toggle returns the selection after clicking a region. Clicking the
// selected region clears the selection; clicking any other region selects
// it. Unknown region ids leave the selection unchanged. The empty string
// means nothing is selected.
func (d *Directory) Toggle(selected, clicked string) string {
	if _, ok := d.Region(clicked); !ok {
		return selected
	}
	if selected == clicked {
		return ""
	}
	return clicked
}

// ForRegion returns the entries in a region sorted by name. With no
// selection the list is empty.
func (d *Directory) ForRegion(selected string) []Entry {
	if selected == "" {
		return []Entry{}
	}
	out := []Entry{}
	for _, e := range d.entries {
		if e.Region == selected {
			out = append(out, e)
		}
	}
	sortByName(out)
	return out
}

// Search matches q against name, suburb and postcode across every region.
func (d *Directory) Search(q string) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []Entry{}
	if q == "" {
		return out
	}
	for _, e := range d.entries {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Suburb), q) ||
			e.Postcode == q {
			out = append(out, e)
		}
	}
	sortByName(out)
	return out
}

// Counts returns the number of entries per region id.
func (d *Directory) Counts() map[string]int {
	counts := make(map[string]int, len(d.regions))
	for _, r := range d.regions {
		counts[r.ID] = 0
	}
	for _, e := range d.entries {
		if _, ok := counts[e.Region]; ok {
			counts[e.Region]++
		}
	}
	return counts
}

func sortByName(es []Entry) {
	slices.SortStableFunc(es, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// Entry looks up an entry by id.
func (d *Directory) Entry(id string) (Entry, bool) {
	for _, e := range d.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
