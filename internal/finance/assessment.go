package finance

const (
	defaultAge          = 30
	defaultSpouseAgeGap = 2
	defaultEldestParent = 60
)

// AssessmentInput is everything the FinScore page asks for: the score
// questions plus the household used to size health and term cover.
type AssessmentInput struct {
	Score ScoreInput `json:"score" yaml:"score"`

	Age int `json:"age" yaml:"age"`
	// HasSpouse is nil when the question was not answered, which counts as
	// married, the form's initial answer.
	HasSpouse           *bool    `json:"has_spouse" yaml:"has_spouse"`
	SpouseAge           int      `json:"spouse_age" yaml:"spouse_age"`
	Children            int      `json:"children" yaml:"children"`
	Parents             int      `json:"parents" yaml:"parents"`
	EldestParentAge     int      `json:"eldest_parent_age" yaml:"eldest_parent_age"`
	City                CityTier `json:"city" yaml:"city"`
	ExistingHealthCover float64  `json:"existing_health_cover" yaml:"existing_health_cover"`
	ExistingTermCover   float64  `json:"existing_term_cover" yaml:"existing_term_cover"`
}

// Assessment bundles the score with the insurance recommendations.
type Assessment struct {
	Score  HealthScore          `json:"score"`
	Health HealthRecommendation `json:"health"`
	Term   TermRecommendation   `json:"term"`
}

// Assess runs the score, the FinScore health variant and the term estimator.
// Missing ages fall back to 30 for the user, two years younger for the
// spouse and 60 for the eldest parent. A missing HasSpouse includes the spouse.
func Assess(in AssessmentInput) Assessment {
	age := in.Age
	if age <= 0 {
		age = defaultAge
	}
	spouseAge := in.SpouseAge
	if spouseAge <= 0 {
		spouseAge = age - defaultSpouseAgeGap
	}
	parentAge := in.EldestParentAge
	if parentAge <= 0 {
		parentAge = defaultEldestParent
	}
	adults := 1
	if in.HasSpouse == nil || *in.HasSpouse {
		adults = 2
	}

	health := EstimateHealthCover(FinScoreVariant(), HealthInput{
		Adults:          adults,
		Children:        in.Children,
		SelfAge:         age,
		SpouseAge:       spouseAge,
		Parents:         in.Parents,
		EldestParentAge: parentAge,
		City:            in.City,
		ExistingCover:   in.ExistingHealthCover,
	})
	term := EstimateTermCover(TermInput{
		MonthlyIncome: in.Score.MonthlyIncome,
		TotalDebt:     in.Score.TotalDebt,
		Age:           age,
		Children:      in.Children,
		ExistingCover: in.ExistingTermCover,
	})

	return Assessment{
		Score:  ScoreFinancialHealth(in.Score),
		Health: health,
		Term:   term,
	}
}
