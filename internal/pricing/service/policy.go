package service

import (
	"math"
	"math/rand"

	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
)

const (
	PolicyTiered     = "tiered"
	PolicyRandomWalk = "random_walk"
)

// PricePolicy maps a batch and a target date to that day's discounted price.
// Implementations are pure apart from injected randomness.
type PricePolicy interface {
	Name() string
	PriceFor(in domain.PriceInput) float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// tieredPolicy discounts the base price by a step function of days-to-expiry.
// The bottom tier doubles as the price floor: nothing is ever quoted below
// 30% of base, even past expiry.
type tieredPolicy struct{}

func NewTieredPolicy() PricePolicy {
	return tieredPolicy{}
}

func (tieredPolicy) Name() string { return PolicyTiered }

func (tieredPolicy) PriceFor(in domain.PriceInput) float64 {
	days := int(in.ExpiryDate.Sub(in.ForDate).Hours() / 24)
	return round2(in.BasePrice * tierFactor(days))
}

func tierFactor(daysToExpiry int) float64 {
	switch {
	case daysToExpiry >= 30:
		return 1.0
	case daysToExpiry >= 15:
		return 0.90
	case daysToExpiry >= 8:
		return 0.80
	case daysToExpiry >= 4:
		return 0.70
	case daysToExpiry >= 1:
		return 0.50
	default:
		return 0.30
	}
}

// randomWalkPolicy nudges the previous day's price by a bounded percentage
// and clamps the result to the product's configured price band. Products
// without a configured band fall back to [0.7*base, base].
type randomWalkPolicy struct {
	ranges map[string]domain.PriceRange
	rng    *rand.Rand
}

const walkMaxStep = 0.05

// DefaultPriceRanges holds the per-product-name bands the walk is clamped to.
var DefaultPriceRanges = map[string]domain.PriceRange{
	"Apple":      {Min: 1.50, Max: 3.50},
	"Banana":     {Min: 0.80, Max: 2.00},
	"Carrot":     {Min: 0.60, Max: 1.80},
	"Tomato":     {Min: 1.20, Max: 3.00},
	"Potato":     {Min: 0.50, Max: 1.50},
	"Onion":      {Min: 0.70, Max: 1.90},
	"Orange":     {Min: 1.40, Max: 3.20},
	"Strawberry": {Min: 2.50, Max: 6.00},
	"Lettuce":    {Min: 1.00, Max: 2.50},
	"Avocado":    {Min: 1.80, Max: 4.50},
}

func NewRandomWalkPolicy(ranges map[string]domain.PriceRange, rng *rand.Rand) PricePolicy {
	if ranges == nil {
		ranges = DefaultPriceRanges
	}
	return &randomWalkPolicy{ranges: ranges, rng: rng}
}

func (*randomWalkPolicy) Name() string { return PolicyRandomWalk }

func (p *randomWalkPolicy) PriceFor(in domain.PriceInput) float64 {
	band, ok := p.ranges[in.ProductName]
	if !ok {
		band = domain.PriceRange{Min: 0.7 * in.BasePrice, Max: in.BasePrice}
	}
	if in.PrevPrice == nil {
		// First pricing day: a uniform draw within the band.
		return round2(band.Min + p.rng.Float64()*(band.Max-band.Min))
	}
	step := (p.rng.Float64()*2 - 1) * walkMaxStep
	next := *in.PrevPrice * (1 + step)
	if next < band.Min {
		next = band.Min
	}
	if next > band.Max {
		next = band.Max
	}
	return round2(next)
}
