package client

// Region describes one selectable pricing region. The list mirrors the
// backend's location table so the picker can render names and currency
// symbols without a round trip.
type Region struct {
	Code     string
	Name     string
	Currency string
	Symbol   string
}

// DefaultRegion is used before the user has ever picked one.
const DefaultRegion = "FL"

// Regions returns the selectable region list in display order: US states
// first, then international markets.
func Regions() []Region {
	return []Region{
		{Code: "FL", Name: "Florida", Currency: "USD", Symbol: "$"},
		{Code: "NY", Name: "New York", Currency: "USD", Symbol: "$"},
		{Code: "CA", Name: "California", Currency: "USD", Symbol: "$"},
		{Code: "TX", Name: "Texas", Currency: "USD", Symbol: "$"},
		{Code: "WA", Name: "Washington", Currency: "USD", Symbol: "$"},
		{Code: "MA", Name: "Massachusetts", Currency: "USD", Symbol: "$"},
		{Code: "IL", Name: "Illinois", Currency: "USD", Symbol: "$"},
		{Code: "GA", Name: "Georgia", Currency: "USD", Symbol: "$"},
		{Code: "PA", Name: "Pennsylvania", Currency: "USD", Symbol: "$"},

		{Code: "UK", Name: "United Kingdom (NHS)", Currency: "GBP", Symbol: "£"},
		{Code: "DE", Name: "Germany (GKV)", Currency: "EUR", Symbol: "€"},
		{Code: "AU", Name: "Australia (PBS)", Currency: "AUD", Symbol: "A$"},
		{Code: "IN", Name: "India (Local Generic)", Currency: "INR", Symbol: "₹"},
		{Code: "AE", Name: "United Arab Emirates", Currency: "AED", Symbol: "dh"},
	}
}

// RegionName returns the display name for a region code, or the code
// itself when it is not in the catalog.
func RegionName(code string) string {
	for _, r := range Regions() {
		if r.Code == code {
			return r.Name
		}
	}
	return code
}

// ValidRegion reports whether the code is in the catalog.
func ValidRegion(code string) bool {
	for _, r := range Regions() {
		if r.Code == code {
			return true
		}
	}
	return false
}

// NextRegion returns the catalog entry after the given code, wrapping at
// the end. Unknown codes restart at the top of the list.
func NextRegion(code string) Region {
	regions := Regions()
	for i, r := range regions {
		if r.Code == code {
			return regions[(i+1)%len(regions)]
		}
	}
	return regions[0]
}
