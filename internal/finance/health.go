package finance

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// CityTier is the cost-of-living class of the insured's city.
type CityTier string

const (
	Tier1 CityTier = "tier1"
	Tier2 CityTier = "tier2"
	Tier3 CityTier = "tier3"
)

// InputError reports an enumerated input outside its allowed values.
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// ParseCityTier accepts "tier1".."tier3" or "1".."3", case-insensitively.
// Empty means tier1. Anything else is an *InputError.
func ParseCityTier(s string) (CityTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tier1", "1", "":
		return Tier1, nil
	case "tier2", "2":
		return Tier2, nil
	case "tier3", "3":
		return Tier3, nil
	}
	return "", &InputError{Field: "city", Value: s}
}

func (c *CityTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InputError{Field: "city", Value: string(data)}
	}
	tier, err := ParseCityTier(s)
	if err != nil {
		return err
	}
	*c = tier
	return nil
}

func (c *CityTier) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	tier, err := ParseCityTier(s)
	if err != nil {
		return err
	}
	*c = tier
	return nil
}

// Procedure is a planned medical procedure whose typical cost sets a floor
// under the recommended cover.
type Procedure string

const (
	ProcedureNone        Procedure = "none"
	ProcedureAngioplasty Procedure = "angioplasty"
	ProcedureBypass      Procedure = "bypass"
	ProcedureKnee        Procedure = "knee"
	ProcedureMaternity   Procedure = "maternity"
	ProcedureCataract    Procedure = "cataract"
	ProcedureCancer      Procedure = "cancer"
)

var procedureCosts = map[Procedure]float64{
	ProcedureNone:        0,
	ProcedureAngioplasty: 500_000,
	ProcedureBypass:      800_000,
	ProcedureKnee:        600_000,
	ProcedureMaternity:   200_000,
	ProcedureCataract:    100_000,
	ProcedureCancer:      2_500_000,
}

// ProcedureCost returns the cover floor for p; unknown procedures cost 0.
func ProcedureCost(p Procedure) float64 {
	return procedureCosts[p]
}

// ParseProcedure accepts the known procedure names, case-insensitively.
// Empty means none. Anything else is an *InputError.
func ParseProcedure(s string) (Procedure, error) {
	p := Procedure(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return ProcedureNone, nil
	}
	if _, ok := procedureCosts[p]; !ok {
		return "", &InputError{Field: "procedure", Value: s}
	}
	return p, nil
}

func (p *Procedure) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InputError{Field: "procedure", Value: string(data)}
	}
	parsed, err := ParseProcedure(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p *Procedure) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseProcedure(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PremiumModel selects how a health premium is estimated.
type PremiumModel int

const (
	// PremiumRated prices per lakh of cover by age, with volume, family-size
	// and city adjustments.
	PremiumRated PremiumModel = iota
	// PremiumProportional is a flat share of the cover plus per-head loadings.
	PremiumProportional
)

// HealthVariant configures the health cover pipeline. GapVariant and
// FinScoreVariant are the two calculators offered on the site.
type HealthVariant struct {
	Name string

	SelfBase   float64
	AdultBase  float64
	ChildBase  float64
	ParentBase float64

	CityCoverFactor     map[CityTier]float64
	CityPremiumDiscount map[CityTier]float64

	PreExistingFactor        float64 // 0 disables the loading
	PreExistingPremiumFactor float64
	ProcedureFloor           bool

	HighSpendThreshold float64 // monthly spend above which HighSpendLoading is added
	HighSpendLoading   float64

	MedicalInflation float64
	InflationYears   int

	CoverUnit  float64
	CoverFloor float64
	CoverCap   float64 // 0 means uncapped

	Premium             PremiumModel
	PremiumFloor        float64
	PremiumUnit         float64
	SeparateParents     bool
	ParentsPremiumFloor float64

	// Proportional model parameters.
	PremiumCoverShare float64
	PremiumPerAdult   float64
	PremiumPerChild   float64
}

// GapVariant is the standalone health-gap calculator: proportional premium,
// pre-existing loading, planned-procedure floor, no cap.
func GapVariant() HealthVariant {
	return HealthVariant{
		Name:                     "gap",
		SelfBase:                 500_000,
		AdultBase:                200_000,
		ChildBase:                150_000,
		CityCoverFactor:          map[CityTier]float64{Tier1: 1.5, Tier2: 1.2, Tier3: 1.0},
		PreExistingFactor:        1.3,
		PreExistingPremiumFactor: 1.4,
		ProcedureFloor:           true,
		HighSpendThreshold:       5_000,
		HighSpendLoading:         500_000,
		MedicalInflation:         0.06,
		InflationYears:           5,
		CoverUnit:                Lakh,
		CoverFloor:               500_000,
		Premium:                  PremiumProportional,
		PremiumUnit:              500,
		PremiumCoverShare:        0.003,
		PremiumPerAdult:          5_000,
		PremiumPerChild:          2_000,
	}
}

// FinScoreVariant is the family floater recommendation shown with the
// financial health score. Parents are covered by a separate policy.
func FinScoreVariant() HealthVariant {
	return HealthVariant{
		Name:                "finscore",
		SelfBase:            300_000,
		AdultBase:           200_000,
		ChildBase:           150_000,
		ParentBase:          300_000,
		CityCoverFactor:     map[CityTier]float64{Tier1: 1.5, Tier2: 1.2, Tier3: 1.0},
		CityPremiumDiscount: map[CityTier]float64{Tier2: 0.90, Tier3: 0.80},
		MedicalInflation:    0.06,
		InflationYears:      5,
		CoverUnit:           Lakh,
		CoverFloor:          500_000,
		CoverCap:            50_000_000,
		Premium:             PremiumRated,
		PremiumUnit:         100,
		PremiumFloor:        5_000,
		SeparateParents:     true,
		ParentsPremiumFloor: 8_000,
	}
}

// HealthVariantByName resolves "gap" or "finscore".
func HealthVariantByName(name string) (HealthVariant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gap", "":
		return GapVariant(), nil
	case "finscore":
		return FinScoreVariant(), nil
	}
	return HealthVariant{}, fmt.Errorf("unknown health variant %q", name)
}

// HealthInput describes the household to insure. Adults counts the primary
// insured, so 1 means a single adult and 2 adds a spouse.
type HealthInput struct {
	Adults              int       `json:"adults" yaml:"adults"`
	Children            int       `json:"children" yaml:"children"`
	SelfAge             int       `json:"self_age" yaml:"self_age"`
	SpouseAge           int       `json:"spouse_age" yaml:"spouse_age"`
	Parents             int       `json:"parents" yaml:"parents"`
	EldestParentAge     int       `json:"eldest_parent_age" yaml:"eldest_parent_age"`
	City                CityTier  `json:"city" yaml:"city"`
	PreExisting         Answer    `json:"pre_existing" yaml:"pre_existing"`
	Procedure           Procedure `json:"procedure" yaml:"procedure"`
	MonthlyMedicalSpend float64   `json:"monthly_medical_spend" yaml:"monthly_medical_spend"`
	ExistingCover       float64   `json:"existing_cover" yaml:"existing_cover"`
}

// Plan types.
const (
	PlanIndividual    = "individual"
	PlanFamilyFloater = "family_floater"
)

// HealthRecommendation is the outcome of the health cover pipeline.
type HealthRecommendation struct {
	Variant     string          `json:"variant"`
	Cover       float64         `json:"cover"`
	Premium     float64         `json:"premium"`
	Breakdown   []BreakdownItem `json:"breakdown"`
	PlanType    string          `json:"plan_type"`
	Members     int             `json:"members"`
	Reasons     []string        `json:"reasons"`
	Sufficiency Sufficiency     `json:"sufficiency"`
	Parents     *ParentsCover   `json:"parents,omitempty"`
}

// ParentsCover is the separate policy suggested for dependent parents.
type ParentsCover struct {
	Count     int             `json:"count"`
	Cover     float64         `json:"cover"`
	Premium   float64         `json:"premium"`
	Breakdown []BreakdownItem `json:"breakdown"`
}

// Breakdown labels, also used as localisation keys by the site.
const (
	LabelSelf        = "self"
	LabelSpouse      = "spouse"
	LabelAdults      = "adults"
	LabelChildren    = "children"
	LabelParents     = "parents"
	LabelCity        = "city"
	LabelHighSpend   = "medical_spend"
	LabelAge         = "age"
	LabelPreExisting = "pre_existing"
	LabelProcedure   = "procedure"
	LabelInflation   = "inflation"
	LabelRounding    = "rounding"
)

// AgeCoverFactor loads the cover for the eldest insured member.
func AgeCoverFactor(age int) float64 {
	switch {
	case age >= 55:
		return 1.4
	case age >= 45:
		return 1.3
	case age >= 35:
		return 1.15
	default:
		return 1.0
	}
}

// HealthRatePerLakh is the yearly premium per lakh of cover for the eldest
// insured member.
func HealthRatePerLakh(eldestAge int) float64 {
	switch {
	case eldestAge <= 25:
		return 800
	case eldestAge <= 30:
		return 950
	case eldestAge <= 35:
		return 1100
	case eldestAge <= 40:
		return 1400
	case eldestAge <= 45:
		return 1800
	case eldestAge <= 50:
		return 2300
	case eldestAge <= 55:
		return 3000
	case eldestAge <= 60:
		return 4000
	case eldestAge <= 65:
		return 5200
	case eldestAge <= 70:
		return 6500
	default:
		return 8500
	}
}

// HealthVolumeDiscount rewards larger sums insured.
func HealthVolumeDiscount(coverInLakhs float64) float64 {
	switch {
	case coverInLakhs <= 5:
		return 1.0
	case coverInLakhs <= 10:
		return 0.90
	case coverInLakhs <= 20:
		return 0.80
	case coverInLakhs <= 50:
		return 0.70
	default:
		return 0.60
	}
}

// FamilyPremiumFactor scales a floater premium by the number of members.
// Parents in the same floater add a flat 0.15.
func FamilyPremiumFactor(members int, withParents bool) float64 {
	var f float64
	switch {
	case members <= 1:
		f = 1.0
	case members == 2:
		f = 1.35
	case members == 3:
		f = 1.50
	case members == 4:
		f = 1.60
	default:
		f = 1.70
	}
	if withParents {
		f += 0.15
	}
	return f
}

// coverPipeline accumulates a cover and the itemised reasons for it.
type coverPipeline struct {
	cover     float64
	breakdown []BreakdownItem
	reasons   []string
}

func (p *coverPipeline) add(label string, amount float64) {
	if amount <= 0 {
		return
	}
	p.cover += amount
	p.breakdown = append(p.breakdown, BreakdownItem{Label: label, Amount: amount})
}

func (p *coverPipeline) scale(label string, factor float64) {
	if factor <= 1 {
		return
	}
	p.breakdown = append(p.breakdown, BreakdownItem{Label: label, Amount: math.Round(p.cover * (factor - 1))})
	p.cover *= factor
}

// finish rounds the cover and appends the rounding line so the breakdown
// sums to the final figure.
func (p *coverPipeline) finish(v HealthVariant) float64 {
	final := roundUpTo(p.cover, v.CoverUnit)
	if final < v.CoverFloor {
		final = v.CoverFloor
	}
	if v.CoverCap > 0 && final > v.CoverCap {
		final = v.CoverCap
	}
	var itemised float64
	for _, item := range p.breakdown {
		itemised += item.Amount
	}
	if diff := final - itemised; diff != 0 {
		p.breakdown = append(p.breakdown, BreakdownItem{Label: LabelRounding, Amount: diff})
	}
	return final
}

func (v HealthVariant) inflationFactor() float64 {
	return math.Pow(1+v.MedicalInflation, float64(v.InflationYears))
}

func (v HealthVariant) cityFactor(tier CityTier) float64 {
	if f, ok := v.CityCoverFactor[tier]; ok && f > 0 {
		return f
	}
	return 1.0
}

func (v HealthVariant) applyCityDiscount(premium float64, tier CityTier) float64 {
	if d, ok := v.CityPremiumDiscount[tier]; ok && d > 0 {
		return math.Round(premium * d)
	}
	return premium
}

// EstimateHealthCover sizes a health policy for the household in.
//
// The base cover is the sum of per-member amounts. It is then loaded for city
// tier, high medical spend, the eldest member's age and pre-existing
// conditions, raised to the planned procedure's cost, inflated over
// InflationYears and finally rounded up to CoverUnit within [CoverFloor, CoverCap].
// Tier and procedure spellings are normalized as by ParseCityTier and
// ParseProcedure; an unrecognized tier is priced as tier1 and an unrecognized
// procedure as none.
func EstimateHealthCover(v HealthVariant, in HealthInput) HealthRecommendation {
	adults := nonNegativeInt(in.Adults)
	if adults < 1 {
		adults = 1
	}
	children := nonNegativeInt(in.Children)
	tier, err := ParseCityTier(string(in.City))
	if err != nil {
		tier = Tier1
	}
	procedure, err := ParseProcedure(string(in.Procedure))
	if err != nil {
		procedure = ProcedureNone
	}

	p := &coverPipeline{}
	p.add(LabelSelf, v.SelfBase)
	if adults == 2 {
		p.add(LabelSpouse, v.AdultBase)
	} else if adults > 2 {
		p.add(LabelAdults, float64(adults-1)*v.AdultBase)
	}
	p.add(LabelChildren, float64(children)*v.ChildBase)
	p.reasons = append(p.reasons, "floater")

	cityFactor := v.cityFactor(tier)
	p.scale(LabelCity, cityFactor)
	switch tier {
	case Tier1:
		p.reasons = append(p.reasons, "metro")
	case Tier2:
		p.reasons = append(p.reasons, "urban")
	}

	if v.HighSpendLoading > 0 && in.MonthlyMedicalSpend > v.HighSpendThreshold {
		p.add(LabelHighSpend, v.HighSpendLoading)
		p.reasons = append(p.reasons, "medical_spend")
	}

	elder := in.SelfAge
	if adults > 1 && in.SpouseAge > elder {
		elder = in.SpouseAge
	}
	ageFactor := AgeCoverFactor(elder)
	p.scale(LabelAge, ageFactor)
	if reason := ageReason(elder); reason != "" {
		p.reasons = append(p.reasons, reason)
	}

	preExisting := v.PreExistingFactor > 0 && in.PreExisting.IsYes()
	if preExisting {
		p.scale(LabelPreExisting, v.PreExistingFactor)
		p.reasons = append(p.reasons, "pre_existing")
	}

	if v.ProcedureFloor {
		if floor := ProcedureCost(procedure); floor > p.cover {
			p.add(LabelProcedure, math.Round(floor-p.cover))
			p.cover = floor
			p.reasons = append(p.reasons, "procedure")
		}
	}

	p.scale(LabelInflation, v.inflationFactor())
	p.reasons = append(p.reasons, "inflation")

	unrounded := p.cover
	cover := p.finish(v)
	members := adults + children

	rec := HealthRecommendation{
		Variant:     v.Name,
		Cover:       cover,
		Breakdown:   p.breakdown,
		Members:     members,
		Reasons:     p.reasons,
		Sufficiency: compareCover(cover, in.ExistingCover),
	}
	if members <= 1 {
		rec.PlanType = PlanIndividual
	} else {
		rec.PlanType = PlanFamilyFloater
	}

	switch v.Premium {
	case PremiumProportional:
		est := unrounded*v.PremiumCoverShare + float64(adults)*v.PremiumPerAdult + float64(children)*v.PremiumPerChild
		if preExisting && v.PreExistingPremiumFactor > 0 {
			est *= v.PreExistingPremiumFactor
		}
		rec.Premium = roundUpTo(est, v.PremiumUnit)
	default:
		// Parents are priced on their own policy, never in this floater.
		rec.Premium = v.ratedPremium(cover, elder, FamilyPremiumFactor(members, false), tier, v.PremiumFloor)
	}

	if v.SeparateParents && in.Parents > 0 {
		rec.Parents = v.parentsCover(in, tier)
	}
	return rec
}

func (v HealthVariant) parentsCover(in HealthInput, tier CityTier) *ParentsCover {
	p := &coverPipeline{}
	p.add(LabelParents, float64(in.Parents)*v.ParentBase)
	p.scale(LabelCity, v.cityFactor(tier))
	p.scale(LabelAge, AgeCoverFactor(in.EldestParentAge))
	if v.PreExistingFactor > 0 && in.PreExisting.IsYes() {
		p.scale(LabelPreExisting, v.PreExistingFactor)
	}
	p.scale(LabelInflation, v.inflationFactor())
	cover := p.finish(v)

	family := 1.0
	if in.Parents >= 2 {
		family = FamilyPremiumFactor(2, false)
	}
	return &ParentsCover{
		Count:     in.Parents,
		Cover:     cover,
		Premium:   v.ratedPremium(cover, in.EldestParentAge, family, tier, v.ParentsPremiumFloor),
		Breakdown: p.breakdown,
	}
}

// ratedPremium prices cover at the age rate per lakh, then applies the
// volume discount, family factor and city discount before rounding up.
func (v HealthVariant) ratedPremium(cover float64, eldestAge int, family float64, tier CityTier, floor float64) float64 {
	lakhs := cover / Lakh
	premium := lakhs * HealthRatePerLakh(eldestAge)
	premium *= HealthVolumeDiscount(lakhs)
	premium = math.Round(premium * family)
	premium = v.applyCityDiscount(premium, tier)
	premium = roundUpTo(premium, v.PremiumUnit)
	if premium < floor {
		premium = floor
	}
	return premium
}

func ageReason(age int) string {
	switch {
	case age >= 55:
		return "age55"
	case age >= 45:
		return "age45"
	case age >= 35:
		return "age35"
	}
	return ""
}
