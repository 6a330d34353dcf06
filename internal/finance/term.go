package finance

import "math"

const (
	termRetirementAge     = 60
	termMinYears          = 5
	termMaxHLVMultiple    = 25
	termIncomeMultiple    = 10
	termEducationPerChild = 2_500_000

	TermCoverUnit  = 500_000.0
	TermCoverFloor = 5_000_000.0
	TermCoverCap   = 500_000_000.0

	termPremiumUnit   = 100.0
	termPremiumFloor  = 5_000.0
	termPremiumCheck  = 500_000.0
	termPremiumMaxPct = 0.03
)

type TermInput struct {
	MonthlyIncome float64 `json:"monthly_income" yaml:"monthly_income"`
	TotalDebt     float64 `json:"total_debt" yaml:"total_debt"`
	Age           int     `json:"age" yaml:"age"`
	Children      int     `json:"children" yaml:"children"`
	ExistingCover float64 `json:"existing_cover" yaml:"existing_cover"`
}

type TermRecommendation struct {
	Cover               float64     `json:"cover"`
	Premium             float64     `json:"premium"`
	HLVCover            float64     `json:"hlv_cover"`
	IncomeReplacement   float64     `json:"income_replacement"`
	DebtCover           float64     `json:"debt_cover"`
	ChildEducation      float64     `json:"child_education"`
	TotalNeed           float64     `json:"total_need"`
	MinimumCoverApplied bool        `json:"minimum_cover_applied"`
	Reasons             []string    `json:"reasons"`
	Sufficiency         Sufficiency `json:"sufficiency"`
}

// TermRatePerLakh is the yearly term premium per lakh of cover by age.
func TermRatePerLakh(age int) float64 {
	switch {
	case age <= 25:
		return 70
	case age <= 30:
		return 100
	case age <= 35:
		return 140
	case age <= 40:
		return 220
	case age <= 45:
		return 300
	case age <= 50:
		return 480
	case age <= 55:
		return 750
	default:
		return 1200
	}
}

func termVolumeDiscount(coverInLakhs float64) float64 {
	switch {
	case coverInLakhs > 200:
		return 0.85
	case coverInLakhs > 100:
		return 0.90
	default:
		return 1.0
	}
}

// EstimateTermCover sizes term life cover as the larger of human life value
// and ten years of income, plus outstanding debt and children's education.
// Without income the minimum cover is returned.
func EstimateTermCover(in TermInput) TermRecommendation {
	annualIncome := nonNegative(in.MonthlyIncome) * 12
	debt := nonNegative(in.TotalDebt)
	children := nonNegativeInt(in.Children)

	var rec TermRecommendation
	if annualIncome <= 0 {
		rec.Cover = TermCoverFloor
		rec.MinimumCoverApplied = true
		rec.Reasons = []string{"minimum"}
	} else {
		years := termRetirementAge - in.Age
		if years < termMinYears {
			years = termMinYears
		}
		multiple := years
		if multiple > termMaxHLVMultiple {
			multiple = termMaxHLVMultiple
		}

		rec.HLVCover = annualIncome * float64(multiple)
		rec.IncomeReplacement = annualIncome * termIncomeMultiple
		rec.DebtCover = debt
		rec.ChildEducation = float64(children) * termEducationPerChild
		rec.TotalNeed = math.Max(rec.HLVCover, rec.IncomeReplacement) + rec.DebtCover + rec.ChildEducation

		cover := roundUpTo(rec.TotalNeed, TermCoverUnit)
		if cover < TermCoverFloor {
			cover = TermCoverFloor
			rec.MinimumCoverApplied = true
		}
		if cover > TermCoverCap {
			cover = TermCoverCap
		}
		rec.Cover = cover

		rec.Reasons = append(rec.Reasons, "income")
		if debt > 0 {
			rec.Reasons = append(rec.Reasons, "debt")
		}
		if children > 0 {
			rec.Reasons = append(rec.Reasons, "dependents")
		}
		rec.Reasons = append(rec.Reasons, "hlv")
	}

	rec.Premium = termPremium(rec.Cover, in.Age)
	rec.Sufficiency = compareCover(rec.Cover, in.ExistingCover)
	return rec
}

func termPremium(cover float64, age int) float64 {
	lakhs := cover / Lakh
	premium := math.Round(lakhs * TermRatePerLakh(age) * termVolumeDiscount(lakhs))
	premium = roundUpTo(premium, termPremiumUnit)
	if premium < termPremiumFloor {
		premium = termPremiumFloor
	}
	if premium > termPremiumCheck {
		premium = math.Min(premium, math.Round(cover*termPremiumMaxPct))
	}
	return premium
}
