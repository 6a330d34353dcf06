package finance

// Sufficiency compares a recommended cover with what the user already holds.
type Sufficiency struct {
	Existing   float64 `json:"existing"`
	Gap        float64 `json:"gap"`
	Surplus    float64 `json:"surplus"`
	Sufficient bool    `json:"sufficient"`
}

func compareCover(recommended, existing float64) Sufficiency {
	existing = nonNegative(existing)
	s := Sufficiency{Existing: existing}
	if existing >= recommended {
		s.Sufficient = true
		s.Surplus = existing - recommended
		return s
	}
	s.Gap = recommended - existing
	return s
}

// BreakdownItem is one contribution to a recommended cover. The items of a
// recommendation always sum to its cover.
type BreakdownItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}
