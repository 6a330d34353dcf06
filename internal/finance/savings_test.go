package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSavings(t *testing.T) {
	proj := ProjectSavings(SavingsInput{Initial: 10_000, MonthlyContribution: 500, AnnualRatePercent: 7, Years: 20})

	require.Len(t, proj.Points, 21)
	first := proj.Points[0]
	assert.Equal(t, 0, first.Year)
	assert.Equal(t, 10_000.0, first.Balance)
	assert.Equal(t, 10_000.0, first.Invested)
	assert.Equal(t, 0.0, first.Interest)

	for i := 1; i < len(proj.Points); i++ {
		prev, cur := proj.Points[i-1], proj.Points[i]
		assert.Equal(t, i, cur.Year)
		assert.GreaterOrEqual(t, cur.Balance, prev.Balance, "year %d", i)
		assert.InDelta(t, cur.Balance-cur.Invested, cur.Interest, 1, "year %d", i)
	}

	last := proj.Points[20]
	assert.Equal(t, last.Balance, proj.FinalBalance)
	assert.Equal(t, last.Interest, proj.TotalInterest)
	assert.Equal(t, 130_000.0, proj.TotalInvested)
	assert.Greater(t, proj.TotalInterest, 0.0)
}

func TestProjectSavingsZeroRate(t *testing.T) {
	proj := ProjectSavings(SavingsInput{Initial: 10_000, MonthlyContribution: 500, AnnualRatePercent: 0, Years: 20})

	assert.Equal(t, 130_000.0, proj.FinalBalance)
	assert.Equal(t, 0.0, proj.TotalInterest)
}

func TestProjectSavingsFirstYear(t *testing.T) {
	proj := ProjectSavings(SavingsInput{Initial: 0, MonthlyContribution: 1_000, AnnualRatePercent: 12, Years: 1})

	// 1000 * ((1.01^12 - 1) / 0.01) = 12682.50
	require.Len(t, proj.Points, 2)
	assert.Equal(t, 12_683.0, proj.FinalBalance)
	assert.Equal(t, 12_000.0, proj.TotalInvested)
	assert.Equal(t, 683.0, proj.TotalInterest)
}

func TestProjectSavingsClampsInputs(t *testing.T) {
	proj := ProjectSavings(SavingsInput{Initial: -5, MonthlyContribution: -1, AnnualRatePercent: 250, Years: 0})
	require.Len(t, proj.Points, 2)
	assert.Equal(t, 0.0, proj.FinalBalance)

	proj = ProjectSavings(SavingsInput{Initial: 1, Years: 500})
	assert.Len(t, proj.Points, 101)
}

func TestProjectSavingsDeterministic(t *testing.T) {
	in := SavingsInput{Initial: 25_000, MonthlyContribution: 2_500, AnnualRatePercent: 9.5, Years: 35}
	assert.Equal(t, ProjectSavings(in), ProjectSavings(in))
}
