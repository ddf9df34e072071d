package importers

import "github.com/ziadkadry99/caravansite/internal/docshape"

// Record is one document from an export, keyed by its store id.
type Record struct {
	ID  string
	Doc docshape.Document
}

// Source is an export file and the collection it feeds.
type Source struct {
	Path       string `json:"path"`
	Collection string `json:"collection"`
}

// Result contains the outcome of importing one source.
type Result struct {
	Source   Source   `json:"source"`
	Found    int      `json:"found"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// aliases maps file base names onto collections. Table names and the
// older "articles" name are accepted too.
var aliases = map[string]string{
	"quoteRequests":       "quoteRequests",
	"quote_requests":      "quoteRequests",
	"brochureRequests":    "brochureRequests",
	"brochure_requests":   "brochureRequests",
	"warranty-claims":     "warranty-claims",
	"warranty_claims":     "warranty-claims",
	"eventRegistrations":  "eventRegistrations",
	"event_registrations": "eventRegistrations",
	"reviews":             "reviews",
	"blogs":               "blogs",
	"articles":            "blogs",
	"events":              "events",
}

// order controls import sequence: registrations reference events.
var order = map[string]int{
	"events":             0,
	"blogs":              1,
	"reviews":            2,
	"quoteRequests":      3,
	"brochureRequests":   4,
	"warranty-claims":    5,
	"eventRegistrations": 6,
}
