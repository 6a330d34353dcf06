package finance

import "math"

// ScoreInput holds the monthly figures and yes/no habits behind the score.
type ScoreInput struct {
	MonthlyIncome   float64 `json:"monthly_income" yaml:"monthly_income"`
	MonthlySavings  float64 `json:"monthly_savings" yaml:"monthly_savings"`
	TotalDebt       float64 `json:"total_debt" yaml:"total_debt"`
	MonthlyEMI      float64 `json:"monthly_emi" yaml:"monthly_emi"`
	EmergencyFund   float64 `json:"emergency_fund" yaml:"emergency_fund"`
	HealthInsurance Answer  `json:"health_insurance" yaml:"health_insurance"`
	LifeInsurance   Answer  `json:"life_insurance" yaml:"life_insurance"`
	Investments     Answer  `json:"investments" yaml:"investments"`
	Budget          Answer  `json:"budget" yaml:"budget"`
	Will            Answer  `json:"will" yaml:"will"`
}

// ScoreBreakdown holds the six category scores. Savings, debt, emergency and
// insurance are out of 20; investment and planning out of 15.
type ScoreBreakdown struct {
	Savings    int `json:"savings"`
	Debt       int `json:"debt"`
	Emergency  int `json:"emergency"`
	Insurance  int `json:"insurance"`
	Investment int `json:"investment"`
	Planning   int `json:"planning"`
}

// Sum adds the category scores.
func (b ScoreBreakdown) Sum() int {
	return b.Savings + b.Debt + b.Emergency + b.Insurance + b.Investment + b.Planning
}

// Recommendation is a good/bad verdict for one score category.
type Recommendation struct {
	Category string `json:"category"`
	Good     bool   `json:"good"`
}

type HealthScore struct {
	Total           int              `json:"total"`
	Label           string           `json:"label"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	SavingsRatio    float64          `json:"savings_ratio"`
	EMIRatio        float64          `json:"emi_ratio"`
	DebtRatio       float64          `json:"debt_ratio"`
	EmergencyMonths float64          `json:"emergency_months"`
	Recommendations []Recommendation `json:"recommendations"`
}

const maxScore = 100

// Score labels.
const (
	ScoreExcellent = "excellent"
	ScoreGood      = "good"
	ScoreFair      = "fair"
	ScorePoor      = "poor"
)

// ScoreFinancialHealth computes the 0-100 financial health score. Without a
// positive income every category scores 0. Unknown answers score as No.
func ScoreFinancialHealth(in ScoreInput) HealthScore {
	income := nonNegative(in.MonthlyIncome)
	if income <= 0 {
		return HealthScore{Label: ScoreLabel(0), Recommendations: recommend(ScoreBreakdown{})}
	}
	savings := nonNegative(in.MonthlySavings)
	emi := nonNegative(in.MonthlyEMI)
	debt := nonNegative(in.TotalDebt)
	fund := nonNegative(in.EmergencyFund)

	out := HealthScore{
		SavingsRatio: math.Min(savings/income*100, 100),
		EMIRatio:     emi / income * 100,
		DebtRatio:    debt / (income * 12) * 100,
	}

	var b ScoreBreakdown
	b.Savings = savingsScore(out.SavingsRatio)
	b.Debt = debtScore(out.EMIRatio, out.DebtRatio)

	// Monthly spend is what is left after saving. When savings meet or exceed
	// income there is nothing to cover, so any emergency fund counts as full
	// cover and an empty one as none.
	expenses := income - savings
	if expenses > 0 {
		out.EmergencyMonths = fund / expenses
		b.Emergency = emergencyScore(out.EmergencyMonths)
	} else if fund > 0 {
		b.Emergency = 20
	}

	if in.HealthInsurance.IsYes() {
		b.Insurance += 10
	}
	if in.LifeInsurance.IsYes() {
		b.Insurance += 10
	}
	if in.Investments.IsYes() {
		b.Investment = 15
	}
	if in.Budget.IsYes() {
		b.Planning += 8
	}
	if in.Will.IsYes() {
		b.Planning += 7
	}

	out.Breakdown = b
	out.Total = b.Sum()
	if out.Total > maxScore {
		out.Total = maxScore
	}
	out.Label = ScoreLabel(out.Total)
	out.Recommendations = recommend(b)
	return out
}

func savingsScore(ratio float64) int {
	switch {
	case ratio >= 30:
		return 20
	case ratio >= 20:
		return 16
	case ratio >= 10:
		return 10
	case ratio >= 5:
		return 5
	}
	return 0
}

func debtScore(emiRatio, debtRatio float64) int {
	score := 20
	switch {
	case emiRatio > 50:
		score = 2
	case emiRatio > 40:
		score = 6
	case emiRatio > 30:
		score = 10
	case emiRatio > 20:
		score = 14
	}
	if debtRatio > 300 {
		score -= 6
		if score < 0 {
			score = 0
		}
	}
	return score
}

func emergencyScore(months float64) int {
	switch {
	case months >= 12:
		return 20
	case months >= 6:
		return 16
	case months >= 3:
		return 10
	case months >= 1:
		return 5
	}
	return 0
}

// ScoreLabel buckets a total score.
func ScoreLabel(total int) string {
	switch {
	case total >= 80:
		return ScoreExcellent
	case total >= 60:
		return ScoreGood
	case total >= 40:
		return ScoreFair
	}
	return ScorePoor
}

func recommend(b ScoreBreakdown) []Recommendation {
	return []Recommendation{
		{Category: "savings", Good: b.Savings >= 16},
		{Category: "debt", Good: b.Debt >= 14},
		{Category: "emergency", Good: b.Emergency >= 16},
		{Category: "insurance", Good: b.Insurance >= 16},
		{Category: "investment", Good: b.Investment >= 10},
		{Category: "planning", Good: b.Planning >= 10},
	}
}
