// Package report renders a FinScore assessment as a downloadable PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/advisory-service/internal/finance"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	labelWidth   = 110.0
)

var categoryTitles = map[string]string{
	"savings":    "Savings",
	"debt":       "Debt",
	"emergency":  "Emergency fund",
	"insurance":  "Insurance",
	"investment": "Investments",
	"planning":   "Planning",
}

var advice = map[string][2]string{
	"savings":    {"Aim to save at least 20% of monthly income.", "Your savings rate is healthy."},
	"debt":       {"Keep EMIs below 30% of income and prepay costly loans.", "Your debt load is under control."},
	"emergency":  {"Build an emergency fund covering six months of expenses.", "Your emergency fund is adequate."},
	"insurance":  {"Hold both health and term life cover.", "You are insured for health and life."},
	"investment": {"Start a SIP or other long-term investment.", "You are investing for the long term."},
	"planning":   {"Track a monthly budget and write a will.", "Your financial planning is in place."},
}

type finScoreReport struct {
	pdf *fpdf.Fpdf
	a   finance.Assessment
}

// FinScorePDF lays out the score, its breakdown and the recommended health
// and term cover on a single A4 page.
func FinScorePDF(a finance.Assessment, generated time.Time) ([]byte, error) {
	r := &finScoreReport{
		pdf: fpdf.New("P", "mm", "A4", ""),
		a:   a,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetCreationDate(generated)
	r.pdf.SetTitle("FinScore Report", false)

	r.pdf.AddPage()
	r.addHeader(generated)
	r.addScore()
	r.addHealth()
	r.addTerm()
	r.addFooter()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// inr replaces the rupee sign, which the core PDF fonts cannot encode.
func inr(v float64) string {
	return strings.Replace(finance.CompactINR(v), "₹", "Rs. ", 1)
}

func (r *finScoreReport) section(title string) {
	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.CellFormat(contentWidth, 8, title, "B", 1, "L", true, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *finScoreReport) row(label, value string) {
	r.pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth-labelWidth, 6, value, "", 1, "R", false, 0, "")
}

func (r *finScoreReport) addHeader(generated time.Time) {
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "FinScore Report", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", generated.Format("2 January 2006")), "", 1, "C", false, 0, "")
}

func (r *finScoreReport) addScore() {
	s := r.a.Score
	r.section("Financial health score")

	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("%d / 100  (%s)", s.Total, strings.ToUpper(s.Label)), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)

	b := s.Breakdown
	points := map[string]string{
		"savings":    fmt.Sprintf("%d / 20", b.Savings),
		"debt":       fmt.Sprintf("%d / 20", b.Debt),
		"emergency":  fmt.Sprintf("%d / 20", b.Emergency),
		"insurance":  fmt.Sprintf("%d / 20", b.Insurance),
		"investment": fmt.Sprintf("%d / 15", b.Investment),
		"planning":   fmt.Sprintf("%d / 15", b.Planning),
	}
	for _, rec := range s.Recommendations {
		r.row(categoryTitles[rec.Category], points[rec.Category])
	}

	r.pdf.Ln(2)
	r.row("Savings ratio", fmt.Sprintf("%.1f%%", s.SavingsRatio))
	r.row("EMI to income", fmt.Sprintf("%.1f%%", s.EMIRatio))
	r.row("Emergency fund", fmt.Sprintf("%.1f months", s.EmergencyMonths))

	r.pdf.Ln(3)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat(contentWidth, 6, "Recommendations", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	for _, rec := range s.Recommendations {
		text := advice[rec.Category][0]
		if rec.Good {
			text = advice[rec.Category][1]
		}
		r.pdf.MultiCell(contentWidth, 5, "- "+text, "", "L", false)
	}
}

func (r *finScoreReport) addHealth() {
	h := r.a.Health
	r.section("Health insurance")

	plan := "Individual"
	if h.PlanType == finance.PlanFamilyFloater {
		plan = "Family floater"
	}
	r.row("Plan", fmt.Sprintf("%s, %d member(s)", plan, h.Members))
	r.row("Recommended cover", inr(h.Cover))
	r.row("Estimated yearly premium", inr(h.Premium))
	r.sufficiency(h.Sufficiency)

	if p := h.Parents; p != nil {
		r.pdf.Ln(2)
		r.row(fmt.Sprintf("Separate cover for %d parent(s)", p.Count), inr(p.Cover))
		r.row("Parents' yearly premium", inr(p.Premium))
	}
}

func (r *finScoreReport) addTerm() {
	t := r.a.Term
	r.section("Term life insurance")

	r.row("Recommended cover", inr(t.Cover))
	r.row("Estimated yearly premium", inr(t.Premium))
	r.row("Income replacement", inr(t.IncomeReplacement))
	r.row("Debt cover", inr(t.DebtCover))
	r.row("Children's education", inr(t.ChildEducation))
	r.sufficiency(t.Sufficiency)
}

func (r *finScoreReport) sufficiency(s finance.Sufficiency) {
	if s.Existing <= 0 {
		return
	}
	r.row("Existing cover", inr(s.Existing))
	if s.Sufficient {
		r.row("Status", "Sufficient")
		return
	}
	r.row("Shortfall", inr(s.Gap))
}

func (r *finScoreReport) addFooter() {
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4,
		"Figures are indicative estimates based on the answers provided and standard assumptions. "+
			"Actual premiums depend on the insurer, underwriting and medical history. "+
			"Please consult an advisor before purchasing any policy.",
		"", "L", false)
}
