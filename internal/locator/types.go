package locator

// Region is a clickable area of the map.
type Region struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
	// LabelX and LabelY position the region's text on the map.
	LabelX int `json:"label_x"`
	LabelY int `json:"label_y"`
}

// Entry is a dealer or service agent.
type Entry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Region   string   `json:"region"`
	Address  string   `json:"address"`
	Suburb   string   `json:"suburb"`
	Postcode string   `json:"postcode"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email,omitempty"`
	Website  string   `json:"website,omitempty"`
	Services []string `json:"services,omitempty"`
}
