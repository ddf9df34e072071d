package catalog

// Option is an add-on that can be fitted to a model.
type Option struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Price   int    `json:"price"`
	Default bool   `json:"default"`
}

// Model is a caravan in the current range. Prices are whole dollars.
type Model struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Range       string   `json:"range"`
	Berths      int      `json:"berths"`
	LengthM     float64  `json:"length_m"`
	TareKg      int      `json:"tare_kg"`
	ATMKg       int      `json:"atm_kg"`
	BasePrice   int      `json:"base_price"`
	Summary     string   `json:"summary"`
	Features    []string `json:"features"`
	Options     []Option `json:"options"`
	HeroImage   string   `json:"hero_image"`
	BrochureURL string   `json:"brochure_url,omitempty"`
}

// Filter narrows the model list. Zero values match everything.
type Filter struct {
	Range     string
	MinBerths int
	MaxPrice  int
	MaxLength float64
	Query     string
}

// SortKey orders the model list.
type SortKey string

const (
	SortPriceAsc  SortKey = "price"
	SortPriceDesc SortKey = "-price"
	SortLength    SortKey = "length"
	SortBerths    SortKey = "berths"
	SortName      SortKey = "name"
)

// Quote is the priced configuration of a model.
type Quote struct {
	Model     string   `json:"model"`
	BasePrice int      `json:"base_price"`
	Options   []Option `json:"options"`
	Total     int      `json:"total"`
}
