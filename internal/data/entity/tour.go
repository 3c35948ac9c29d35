package entity

// Tour is a bookable product with per-person pricing and a capacity ceiling.
// Owned by the catalog; the booking subsystem only reads it.
type Tour struct {
	Base
	Name        string  `db:"name"`
	Description string  `db:"description"`
	AdultPrice  float64 `db:"adult_price"`
	ChildPrice  float64 `db:"child_price"`
	MaxCapacity int     `db:"max_capacity"`

	// Optional repeating season window as MM-DD bounds, inclusive.
	// The window may wrap the year boundary (e.g. "11-01".."04-01").
	// Empty strings mean the tour is bookable year-round.
	SeasonStart string `db:"season_start"`
	SeasonEnd   string `db:"season_end"`
}

// HasSeason reports whether the tour declares a season window.
func (t *Tour) HasSeason() bool {
	return t.SeasonStart != "" && t.SeasonEnd != ""
}

// PriceFor computes the authoritative total for a party. Client-supplied
// totals are validated against this, never trusted.
func (t *Tour) PriceFor(adults, children int) float64 {
	return float64(adults)*t.AdultPrice + float64(children)*t.ChildPrice
}
