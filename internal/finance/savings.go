package finance

import "math"

const (
	maxSavingsRate  = 100.0
	minSavingsYears = 1
	maxSavingsYears = 100
)

// SavingsInput describes a recurring-deposit projection.
type SavingsInput struct {
	Initial             float64 `json:"initial" yaml:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution" yaml:"monthly_contribution"`
	AnnualRatePercent   float64 `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	Years               int     `json:"years" yaml:"years"`
}

// YearPoint is the state of the account at the start of a year, before that
// year's growth is applied. Interest equals Balance - Invested.
type YearPoint struct {
	Year     int     `json:"year"`
	Balance  float64 `json:"balance"`
	Invested float64 `json:"invested"`
	Interest float64 `json:"interest"`
}

// SavingsProjection is the year-by-year series plus the headline figures
// taken from its last point.
type SavingsProjection struct {
	Points        []YearPoint `json:"points"`
	FinalBalance  float64     `json:"final_balance"`
	TotalInvested float64     `json:"total_invested"`
	TotalInterest float64     `json:"total_interest"`
}

// ProjectSavings compounds the initial deposit monthly at AnnualRatePercent/12
// and adds the contribution at the end of every month. It returns Years+1
// points, for years 0 through Years inclusive.
func ProjectSavings(in SavingsInput) SavingsProjection {
	initial := nonNegative(in.Initial)
	monthly := nonNegative(in.MonthlyContribution)
	rate := clampRange(in.AnnualRatePercent, 0, maxSavingsRate)
	years := in.Years
	if years < minSavingsYears {
		years = minSavingsYears
	}
	if years > maxSavingsYears {
		years = maxSavingsYears
	}

	monthlyFactor := 1 + rate/100/12
	balance := initial
	invested := initial

	points := make([]YearPoint, 0, years+1)
	for year := 0; year <= years; year++ {
		points = append(points, YearPoint{
			Year:     year,
			Balance:  math.Round(balance),
			Invested: math.Round(invested),
			Interest: math.Round(balance - invested),
		})
		for m := 0; m < 12; m++ {
			balance = balance*monthlyFactor + monthly
			invested += monthly
		}
	}

	last := points[len(points)-1]
	return SavingsProjection{
		Points:        points,
		FinalBalance:  last.Balance,
		TotalInvested: last.Invested,
		TotalInterest: last.Interest,
	}
}
