package finance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rupee = "₹"

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

type magnitude struct {
	divisor float64
	unit    string
	plural  bool
}

var magnitudes = []magnitude{
	{divisor: Crore, unit: "Crore", plural: true},
	{divisor: Lakh, unit: "Lakh"},
	{divisor: Thousand, unit: "Thousand"},
}

// AmountToWords renders an amount as a rupee magnitude label such as
// "₹1.2 Crore" or "₹2.5 Lakh". Zero and non-finite values yield "".
func AmountToWords(value float64) string {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}

	abs := math.Abs(value)
	sign := ""
	if value < 0 {
		sign = "Minus "
	}

	for _, m := range magnitudes {
		if abs < m.divisor {
			continue
		}
		scaled := abs / m.divisor
		unit := m.unit
		if m.plural && scaled >= 2 {
			unit += "s"
		}
		return fmt.Sprintf("%s%s%s %s", sign, rupee, trimDecimals(scaled), unit)
	}

	return sign + rupee + GroupIndian(abs)
}

// AmountToWordsString parses s as a number first; anything non-numeric yields "".
func AmountToWordsString(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return ""
	}
	return AmountToWords(v)
}

// GroupIndian formats the rounded integer part of v with en-IN digit grouping.
func GroupIndian(v float64) string {
	return indianPrinter.Sprintf("%d", int64(math.Round(v)))
}

// CompactINR is the short label used in dense layouts: "₹1.2 Cr", "₹3.5 L",
// or a grouped rupee figure below one lakh.
func CompactINR(value float64) string {
	switch {
	case value >= Crore:
		return fmt.Sprintf("%s%.1f Cr", rupee, value/Crore)
	case value >= Lakh:
		return fmt.Sprintf("%s%.1f L", rupee, value/Lakh)
	default:
		return rupee + GroupIndian(value)
	}
}

// trimDecimals formats with two decimals and drops trailing zeros and point.
func trimDecimals(v float64) string {
	whole, frac, _ := strings.Cut(strconv.FormatFloat(v, 'f', 2, 64), ".")
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
