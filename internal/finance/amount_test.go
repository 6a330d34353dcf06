package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero is empty", 0, ""},
		{"one crore twenty lakh", 12_000_000, "₹1.2 Crore"},
		{"two crore pluralised", 20_000_000, "₹2 Crores"},
		{"hundred crore keeps integer zeros", 1_000_000_000, "₹100 Crores"},
		{"lakh never pluralised", 250_000, "₹2.5 Lakh"},
		{"exact lakh", 100_000, "₹1 Lakh"},
		{"two decimals kept", 123_456, "₹1.23 Lakh"},
		{"thousand", 1_500, "₹1.5 Thousand"},
		{"ten thousand", 10_000, "₹10 Thousand"},
		{"negative plain value", -500, "Minus ₹500"},
		{"negative lakh", -300_000, "Minus ₹3 Lakh"},
		{"plain value rounded", 999.6, "₹1,000"},
		{"plain value", 42, "₹42"},
		{"NaN is empty", math.NaN(), ""},
		{"infinity is empty", math.Inf(1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountToWords(tt.value))
		})
	}
}

func TestAmountToWordsString(t *testing.T) {
	assert.Equal(t, "₹2.5 Lakh", AmountToWordsString("250000"))
	assert.Equal(t, "₹2.5 Lakh", AmountToWordsString(" 250000 "))
	assert.Equal(t, "", AmountToWordsString("abc"))
	assert.Equal(t, "", AmountToWordsString(""))
	assert.Equal(t, "", AmountToWordsString("0"))
}

func TestCompactINR(t *testing.T) {
	assert.Equal(t, "₹1.2 Cr", CompactINR(12_000_000))
	assert.Equal(t, "₹3.5 L", CompactINR(350_000))
	assert.Equal(t, "₹500", CompactINR(500))
}
