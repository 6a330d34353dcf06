package finance

import "math"

const (
	// RetirementInflationRate is the yearly growth applied to today's expenses.
	RetirementInflationRate = 0.06
	// SafeWithdrawalRate is the share of the corpus assumed spendable each year.
	SafeWithdrawalRate = 0.04
)

type RetirementInput struct {
	CurrentAge     int     `json:"current_age" yaml:"current_age"`
	RetirementAge  int     `json:"retirement_age" yaml:"retirement_age"`
	AnnualExpenses float64 `json:"annual_expenses" yaml:"annual_expenses"`
}

type RetirementGap struct {
	YearsToRetirement    int     `json:"years_to_retirement"`
	FutureAnnualExpenses float64 `json:"future_annual_expenses"`
	CorpusNeeded         float64 `json:"corpus_needed"`
}

// EstimateRetirementGap inflates today's annual expenses to the retirement
// year and sizes the corpus that sustains them at SafeWithdrawalRate.
func EstimateRetirementGap(in RetirementInput) RetirementGap {
	years := in.RetirementAge - in.CurrentAge
	if years < 0 {
		years = 0
	}
	future := nonNegative(in.AnnualExpenses) * math.Pow(1+RetirementInflationRate, float64(years))
	return RetirementGap{
		YearsToRetirement:    years,
		FutureAnnualExpenses: future,
		CorpusNeeded:         future / SafeWithdrawalRate,
	}
}
