package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flatHistory(start time.Time, days, qty int) []DailySales {
	history := make([]DailySales, days)
	for i := range history {
		history[i] = DailySales{Date: start.AddDate(0, 0, i), Quantity: qty}
	}
	return history
}

func TestDemand_FlatHistory(t *testing.T) {
	start := day(2026, time.February, 2) // Monday
	history := flatHistory(start, 14, 10)
	target := day(2026, time.February, 17) // Tuesday

	f := Demand(1, history, target, 20)
	assert.Equal(t, 10.0, f.AverageDaily)
	assert.Equal(t, 0.0, f.Trend)
	assert.Equal(t, 1.0, f.WeekendFactor)
	assert.Equal(t, 10, f.PredictedQuantity)
	assert.Equal(t, RiskLow, f.Risk)
}

func TestDemand_WeekendBoost(t *testing.T) {
	start := day(2026, time.February, 2)
	history := flatHistory(start, 14, 8)
	saturday := day(2026, time.February, 21)

	f := Demand(1, history, saturday, 20)
	assert.Equal(t, 1.25, f.WeekendFactor)
	assert.Equal(t, 10, f.PredictedQuantity) // 8 * 1.25
}

func TestDemand_Trend(t *testing.T) {
	start := day(2026, time.February, 2)

	t.Run("rising sales push the forecast up", func(t *testing.T) {
		history := append(flatHistory(start, 7, 10), flatHistory(start.AddDate(0, 0, 7), 7, 20)...)
		f := Demand(1, history, day(2026, time.February, 17), 20)

		assert.Equal(t, 15.0, f.AverageDaily)
		assert.Equal(t, 1.0, f.Trend) // (20-10)/10
		assert.Equal(t, 30, f.PredictedQuantity)
	})

	t.Run("falling sales pull it down", func(t *testing.T) {
		history := append(flatHistory(start, 7, 20), flatHistory(start.AddDate(0, 0, 7), 7, 10)...)
		f := Demand(1, history, day(2026, time.February, 17), 20)

		assert.Equal(t, -0.5, f.Trend)
		assert.Equal(t, 8, f.PredictedQuantity) // 15 * 0.5 = 7.5, rounds up
	})

	t.Run("zero older half leaves trend at zero", func(t *testing.T) {
		history := append(flatHistory(start, 7, 0), flatHistory(start.AddDate(0, 0, 7), 7, 10)...)
		f := Demand(1, history, day(2026, time.February, 17), 20)
		assert.Equal(t, 0.0, f.Trend)
	})
}

func TestDemand_EmptyHistory(t *testing.T) {
	f := Demand(1, nil, day(2026, time.February, 17), 20)
	assert.Equal(t, 0, f.PredictedQuantity)
	assert.Equal(t, 0.0, f.AverageDaily)
	assert.Equal(t, RiskLow, f.Risk)
}

func TestDemand_RiskBands(t *testing.T) {
	target := day(2026, time.February, 17)
	assert.Equal(t, RiskHigh, Demand(1, nil, target, 0).Risk)
	assert.Equal(t, RiskHigh, Demand(1, nil, target, 3).Risk)
	assert.Equal(t, RiskMedium, Demand(1, nil, target, 4).Risk)
	assert.Equal(t, RiskMedium, Demand(1, nil, target, 7).Risk)
	assert.Equal(t, RiskLow, Demand(1, nil, target, 8).Risk)
}
