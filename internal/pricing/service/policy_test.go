package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTieredPolicy_PriceFor(t *testing.T) {
	policy := NewTieredPolicy()
	forDate := day(2026, time.March, 1)
	base := 10.00

	cases := []struct {
		name     string
		expiry   time.Time
		expected float64
	}{
		{"far from expiry keeps base price", day(2026, time.April, 10), 10.00}, // 40 days
		{"20 days out gets 10% off", day(2026, time.March, 21), 9.00},
		{"10 days out gets 20% off", day(2026, time.March, 11), 8.00},
		{"6 days out gets 30% off", day(2026, time.March, 7), 7.00},
		{"2 days out gets 50% off", day(2026, time.March, 3), 5.00},
		{"expires today hits the floor", day(2026, time.March, 1), 3.00},
		{"already expired stays at the floor", day(2026, time.February, 27), 3.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.PriceFor(domain.PriceInput{
				BasePrice:  base,
				ExpiryDate: tc.expiry,
				ForDate:    forDate,
			})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTieredPolicy_TierBoundaries(t *testing.T) {
	cases := []struct {
		days   int
		factor float64
	}{
		{30, 1.0}, {29, 0.90}, {15, 0.90}, {14, 0.80}, {8, 0.80},
		{7, 0.70}, {4, 0.70}, {3, 0.50}, {1, 0.50}, {0, 0.30}, {-5, 0.30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.factor, tierFactor(tc.days), "days=%d", tc.days)
	}
}

func TestRandomWalkPolicy_FirstDrawWithinBand(t *testing.T) {
	policy := NewRandomWalkPolicy(nil, rand.New(rand.NewSource(42)))
	band := DefaultPriceRanges["Apple"]

	for i := 0; i < 200; i++ {
		price := policy.PriceFor(domain.PriceInput{
			ProductName: "Apple",
			BasePrice:   2.50,
			ForDate:     day(2026, time.March, 1),
		})
		assert.GreaterOrEqual(t, price, band.Min)
		assert.LessOrEqual(t, price, band.Max)
	}
}

func TestRandomWalkPolicy_WalkStaysWithinBand(t *testing.T) {
	policy := NewRandomWalkPolicy(nil, rand.New(rand.NewSource(7)))
	band := DefaultPriceRanges["Banana"]

	prev := 1.20
	for i := 0; i < 500; i++ {
		price := policy.PriceFor(domain.PriceInput{
			ProductName: "Banana",
			BasePrice:   1.20,
			ForDate:     day(2026, time.March, 1).AddDate(0, 0, i),
			PrevPrice:   &prev,
		})
		assert.GreaterOrEqual(t, price, band.Min)
		assert.LessOrEqual(t, price, band.Max)
		// A single step never moves more than 5% plus rounding.
		assert.InDelta(t, prev, price, prev*walkMaxStep+0.005)
		prev = price
	}
}

func TestRandomWalkPolicy_UnknownProductFallsBackToBasePriceBand(t *testing.T) {
	policy := NewRandomWalkPolicy(nil, rand.New(rand.NewSource(99)))
	base := 8.00

	for i := 0; i < 200; i++ {
		price := policy.PriceFor(domain.PriceInput{
			ProductName: "Dragonfruit",
			BasePrice:   base,
			ForDate:     day(2026, time.March, 1),
		})
		assert.GreaterOrEqual(t, price, 0.7*base)
		assert.LessOrEqual(t, price, base)
	}
}
