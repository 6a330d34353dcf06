package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TrendMonths is how many months the trend series keeps.
const TrendMonths = 6

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type MonthTotal struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summary holds the aggregates derived from a ledger. Nothing here is stored.
type Summary struct {
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	NetSavings    float64         `json:"net_savings"`
	SavingsRate   int64           `json:"savings_rate"`
	Categories    []CategoryTotal `json:"categories"`
	Trend         []MonthTotal    `json:"trend"`
	Entries       int             `json:"entries"`
}

type monthSums struct {
	income, expense decimal.Decimal
}

// Summarize totals the ledger. Sums are kept in decimal so adding and then
// deleting an entry gives back exactly the same totals. The trend holds the
// latest TrendMonths months that have entries, oldest first.
func Summarize(entries []Entry) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	byMonth := map[string]*monthSums{}

	for _, e := range entries {
		amount := decimal.NewFromFloat(e.Amount)
		m, ok := byMonth[e.Month()]
		if !ok {
			m = &monthSums{income: decimal.Zero, expense: decimal.Zero}
			byMonth[e.Month()] = m
		}
		if e.Type == Income {
			income = income.Add(amount)
			m.income = m.income.Add(amount)
			continue
		}
		expenses = expenses.Add(amount)
		m.expense = m.expense.Add(amount)
		byCategory[e.Category] = byCategory[e.Category].Add(amount)
	}

	net := income.Sub(expenses)
	s := Summary{
		TotalIncome:   income.InexactFloat64(),
		TotalExpenses: expenses.InexactFloat64(),
		NetSavings:    net.InexactFloat64(),
		Categories:    make([]CategoryTotal, 0, len(byCategory)),
		Trend:         make([]MonthTotal, 0, TrendMonths),
		Entries:       len(entries),
	}
	if income.IsPositive() {
		s.SavingsRate = net.Div(income).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	for cat, total := range byCategory {
		s.Categories = append(s.Categories, CategoryTotal{Category: cat, Amount: total.InexactFloat64()})
	}
	sort.Slice(s.Categories, func(i, j int) bool { return s.Categories[i].Category < s.Categories[j].Category })

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	if len(months) > TrendMonths {
		months = months[len(months)-TrendMonths:]
	}
	for _, month := range months {
		m := byMonth[month]
		s.Trend = append(s.Trend, MonthTotal{Month: month, Income: m.income.InexactFloat64(), Expense: m.expense.InexactFloat64()})
	}
	return s
}
