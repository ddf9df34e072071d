package catalog

// models is the current caravan range.
var models = []Model{
	{
		Slug: "coastal-16", Name: "Coastal 16", Range: "Coastal",
		Berths: 2, LengthM: 5.0, TareKg: 1650, ATMKg: 2200, BasePrice: 54990,
		Summary:  "A compact couples van for sealed-road touring.",
		Features: []string{"Queen island bed", "Front kitchen", "Combo shower and toilet"},
		Options: []Option{
			{ID: "solar-200", Label: "200W roof solar", Price: 1450, Default: true},
			{ID: "awning-electric", Label: "Electric roll-out awning", Price: 1890},
			{ID: "tv-24", Label: "24\" TV with bracket", Price: 690},
		},
		HeroImage: "/static/img/models/coastal-16.jpg",
	},
	{
		Slug: "coastal-19", Name: "Coastal 19", Range: "Coastal",
		Berths: 2, LengthM: 5.9, TareKg: 1980, ATMKg: 2600, BasePrice: 64990,
		Summary:  "Full ensuite and a walk-around bed for longer trips.",
		Features: []string{"Walk-around queen bed", "Full ensuite", "Front tunnel boot"},
		Options: []Option{
			{ID: "solar-200", Label: "200W roof solar", Price: 1450, Default: true},
			{ID: "lithium-200", Label: "200Ah lithium battery", Price: 2990},
			{ID: "awning-electric", Label: "Electric roll-out awning", Price: 1890},
			{ID: "washer", Label: "3kg washing machine", Price: 990},
		},
		HeroImage: "/static/img/models/coastal-19.jpg",
	},
	{
		Slug: "outback-18", Name: "Outback 18", Range: "Outback",
		Berths: 2, LengthM: 5.5, TareKg: 2250, ATMKg: 3000, BasePrice: 79990,
		Summary:  "Off-road chassis and independent suspension for gravel and corrugations.",
		Features: []string{"Independent coil suspension", "Off-road hitch", "Dual 95L water tanks"},
		Options: []Option{
			{ID: "lithium-200", Label: "200Ah lithium battery", Price: 2990, Default: true},
			{ID: "solar-400", Label: "400W roof solar", Price: 2650, Default: true},
			{ID: "diesel-heater", Label: "Diesel heater", Price: 1990},
			{ID: "spare-second", Label: "Second spare wheel", Price: 590},
		},
		HeroImage: "/static/img/models/outback-18.jpg",
	},
	{
		Slug: "outback-21-family", Name: "Outback 21 Family", Range: "Outback",
		Berths: 5, LengthM: 6.4, TareKg: 2650, ATMKg: 3500, BasePrice: 92990,
		Summary:  "Triple bunks and off-road running gear for families heading bush.",
		Features: []string{"Triple bunks", "Independent coil suspension", "External kitchen"},
		Options: []Option{
			{ID: "lithium-200", Label: "200Ah lithium battery", Price: 2990, Default: true},
			{ID: "solar-400", Label: "400W roof solar", Price: 2650},
			{ID: "diesel-heater", Label: "Diesel heater", Price: 1990},
			{ID: "washer", Label: "3kg washing machine", Price: 990},
		},
		HeroImage: "/static/img/models/outback-21-family.jpg",
	},
	{
		Slug: "family-20-bunk", Name: "Family 20 Bunk", Range: "Family",
		Berths: 6, LengthM: 6.1, TareKg: 2300, ATMKg: 3000, BasePrice: 69990,
		Summary:  "Double bunks and a club lounge for caravan parks with the kids.",
		Features: []string{"Double bunks", "Club lounge", "Full ensuite"},
		Options: []Option{
			{ID: "solar-200", Label: "200W roof solar", Price: 1450, Default: true},
			{ID: "awning-electric", Label: "Electric roll-out awning", Price: 1890},
			{ID: "tv-24", Label: "24\" TV with bracket", Price: 690},
			{ID: "washer", Label: "3kg washing machine", Price: 990},
		},
		HeroImage: "/static/img/models/family-20-bunk.jpg",
	},
	{
		Slug: "family-22-lounge", Name: "Family 22 Lounge", Range: "Family",
		Berths: 4, LengthM: 6.8, TareKg: 2550, ATMKg: 3300, BasePrice: 74990,
		Summary:  "Rear lounge layout with a convertible dinette.",
		Features: []string{"Rear lounge", "Convertible dinette", "Full ensuite"},
		Options: []Option{
			{ID: "solar-400", Label: "400W roof solar", Price: 2650, Default: true},
			{ID: "lithium-200", Label: "200Ah lithium battery", Price: 2990},
			{ID: "tv-24", Label: "24\" TV with bracket", Price: 690},
		},
		HeroImage: "/static/img/models/family-22-lounge.jpg",
	},
}
