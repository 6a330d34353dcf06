package finance

// DimeInput holds the four DIME need categories (Debt, Income, Mortgage,
// Education) and the assets already available to offset them.
type DimeInput struct {
	Debt      float64 `json:"debt" yaml:"debt"`
	Income    float64 `json:"income" yaml:"income"`
	Mortgage  float64 `json:"mortgage" yaml:"mortgage"`
	Education float64 `json:"education" yaml:"education"`
	Assets    float64 `json:"assets" yaml:"assets"`
}

type DimeGap struct {
	TotalNeeds float64 `json:"total_needs"`
	Assets     float64 `json:"assets"`
	Gap        float64 `json:"gap"`
}

// CalculateDimeGap returns the protection gap left after existing assets.
func CalculateDimeGap(in DimeInput) DimeGap {
	needs := nonNegative(in.Debt) + nonNegative(in.Income) + nonNegative(in.Mortgage) + nonNegative(in.Education)
	assets := nonNegative(in.Assets)
	gap := needs - assets
	if gap < 0 {
		gap = 0
	}
	return DimeGap{TotalNeeds: needs, Assets: assets, Gap: gap}
}
