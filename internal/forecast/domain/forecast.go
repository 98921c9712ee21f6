package domain

import (
	"math"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DailySales is one day's sold quantity for a product. Days with no sales
// appear with quantity zero so the averages are not skewed by gaps.
type DailySales struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

type Forecast struct {
	ProductID         int64     `json:"product_id"`
	TargetDate        time.Time `json:"target_date"`
	PredictedQuantity int       `json:"predicted_quantity"`
	AverageDaily      float64   `json:"average_daily"`
	Trend             float64   `json:"trend"`
	WeekendFactor     float64   `json:"weekend_factor"`
	Risk              RiskLevel `json:"risk"`
}

const weekendBoost = 1.25

// Demand is the rule-based forecast heuristic: average daily sales, scaled
// by the recent-versus-older trend and a weekend factor, with a risk band
// from how close the product's soonest stock is to expiry. Pure arithmetic
// over the inputs; it touches no store and keeps no state.
func Demand(productID int64, history []DailySales, targetDate time.Time, daysToExpiry int) Forecast {
	f := Forecast{
		ProductID:     productID,
		TargetDate:    targetDate,
		WeekendFactor: 1.0,
		Risk:          riskBand(daysToExpiry),
	}

	if len(history) == 0 {
		return f
	}

	var total int
	for _, day := range history {
		total += day.Quantity
	}
	f.AverageDaily = float64(total) / float64(len(history))

	// Trend compares the newer half of the window against the older half.
	if len(history) >= 2 {
		half := len(history) / 2
		olderAvg := average(history[:half])
		recentAvg := average(history[half:])
		if olderAvg > 0 {
			f.Trend = (recentAvg - olderAvg) / olderAvg
		}
	}

	switch targetDate.Weekday() {
	case time.Saturday, time.Sunday:
		f.WeekendFactor = weekendBoost
	}

	predicted := f.AverageDaily * (1 + f.Trend) * f.WeekendFactor
	if predicted < 0 {
		predicted = 0
	}
	f.PredictedQuantity = int(math.Round(predicted))

	return f
}

func average(days []DailySales) float64 {
	if len(days) == 0 {
		return 0
	}
	var total int
	for _, day := range days {
		total += day.Quantity
	}
	return float64(total) / float64(len(days))
}

func riskBand(daysToExpiry int) RiskLevel {
	switch {
	case daysToExpiry <= 3:
		return RiskHigh
	case daysToExpiry <= 7:
		return RiskMedium
	default:
		return RiskLow
	}
}
