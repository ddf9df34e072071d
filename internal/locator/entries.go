package locator

// Dealers is the sales dealer network.
var Dealers = NewDirectory("dealers", regions, []Entry{
	{ID: "d-perth", Name: "Swan Valley Caravans", Region: "wa", Address: "112 Great Northern Hwy", Suburb: "Midland", Postcode: "6056", Phone: "08 9274 1100", Website: "https://swanvalleycaravans.example"},
	{ID: "d-bunbury", Name: "Bunbury RV Centre", Region: "wa", Address: "4 Strickland St", Suburb: "Bunbury", Postcode: "6230", Phone: "08 9721 4400"},
	{ID: "d-darwin", Name: "Top End Caravans", Region: "nt", Address: "27 Stuart Hwy", Suburb: "Winnellie", Postcode: "0820", Phone: "08 8947 2200"},
	{ID: "d-adelaide", Name: "Adelaide Caravan World", Region: "sa", Address: "900 Main North Rd", Suburb: "Pooraka", Postcode: "5095", Phone: "08 8262 3300", Email: "sales@acw.example"},
	{ID: "d-brisbane", Name: "Brisbane Caravan Co", Region: "qld", Address: "55 Bruce Hwy", Suburb: "Burpengary", Postcode: "4505", Phone: "07 3888 1200", Website: "https://brisbanecaravan.example"},
	{ID: "d-townsville", Name: "North Queensland RV", Region: "qld", Address: "3 Bowen Rd", Suburb: "Garbutt", Postcode: "4814", Phone: "07 4779 5500"},
	{ID: "d-cairns", Name: "Cairns Caravan Sales", Region: "qld", Address: "18 Mulgrave Rd", Suburb: "Westcourt", Postcode: "4870", Phone: "07 4051 6600"},
	{ID: "d-sydney", Name: "Sydney RV Centre", Region: "nsw", Address: "1 Camden Valley Way", Suburb: "Narellan", Postcode: "2567", Phone: "02 4647 9900"},
	{ID: "d-newcastle", Name: "Hunter Caravans", Region: "nsw", Address: "88 Pacific Hwy", Suburb: "Cardiff", Postcode: "2285", Phone: "02 4954 1000"},
	{ID: "d-canberra", Name: "Capital Caravans", Region: "act", Address: "9 Sandford St", Suburb: "Mitchell", Postcode: "2911", Phone: "02 6241 7700"},
	{ID: "d-melbourne", Name: "Melbourne Caravan Hub", Region: "vic", Address: "240 Princes Hwy", Suburb: "Dandenong", Postcode: "3175", Phone: "03 9793 4400"},
	{ID: "d-geelong", Name: "Geelong RV", Region: "vic", Address: "75 Princes Hwy", Suburb: "Corio", Postcode: "3214", Phone: "03 5275 2200"},
	{ID: "d-hobart", Name: "Island Caravans", Region: "tas", Address: "14 Brooker Hwy", Suburb: "Glenorchy", Postcode: "7010", Phone: "03 6273 1800"},
})

// ServiceAgents is the warranty and repair network.
var ServiceAgents = NewDirectory("service-agents", regions, []Entry{
	{ID: "s-perth", Name: "WestCoast RV Repairs", Region: "wa", Address: "6 Kewdale Rd", Suburb: "Welshpool", Postcode: "6106", Phone: "08 9458 3300", Services: []string{"warranty", "chassis", "electrical"}},
	{ID: "s-alice", Name: "Red Centre Auto & RV", Region: "nt", Address: "21 Smith St", Suburb: "Alice Springs", Postcode: "0870", Phone: "08 8952 4400", Services: []string{"chassis", "suspension"}},
	{ID: "s-adelaide", Name: "Gawler Caravan Services", Region: "sa", Address: "3 Main Rd", Suburb: "Gawler", Postcode: "5118", Phone: "08 8522 1100", Services: []string{"warranty", "appliances"}},
	{ID: "s-gold-coast", Name: "Gold Coast RV Care", Region: "qld", Address: "40 Hinde St", Suburb: "Ashmore", Postcode: "4214", Phone: "07 5597 1200", Services: []string{"warranty", "electrical", "appliances"}},
	{ID: "s-rockhampton", Name: "Capricorn Caravan Repairs", Region: "qld", Address: "12 Yaamba Rd", Suburb: "Park Avenue", Postcode: "4701", Phone: "07 4928 3300", Services: []string{"chassis"}},
	{ID: "s-sydney", Name: "Penrith Caravan Service Centre", Region: "nsw", Address: "5 Castlereagh Rd", Suburb: "Penrith", Postcode: "2750", Phone: "02 4721 9900", Services: []string{"warranty", "chassis", "electrical", "appliances"}},
	{ID: "s-wagga", Name: "Riverina RV Repairs", Region: "nsw", Address: "77 Hammond Ave", Suburb: "Wagga Wagga", Postcode: "2650", Phone: "02 6921 4400", Services: []string{"suspension", "electrical"}},
	{ID: "s-melbourne", Name: "Bayside RV Service", Region: "vic", Address: "19 Chesterville Rd", Suburb: "Moorabbin", Postcode: "3189", Phone: "03 9555 6600", Services: []string{"warranty", "appliances"}},
	{ID: "s-launceston", Name: "Tamar Caravan Care", Region: "tas", Address: "8 Invermay Rd", Suburb: "Invermay", Postcode: "7248", Phone: "03 6331 5500", Services: []string{"warranty"}},
})
