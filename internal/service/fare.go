package service

import (
	"math"
	"math/rand"
)

// FareEstimator quotes a fare for a route at booking time.
type FareEstimator interface {
	Estimate(pickup, destination string) float64
}

// RandomFareEstimator quotes a bounded pseudo-random fare. This is a
// deliberate placeholder, not a pricing model: the booking flow only needs
// some positive fare attached to the ride at creation.
type RandomFareEstimator struct {
	Min float64
	Max float64
}

// NewRandomFareEstimator creates an estimator quoting between 5 and 25.
func NewRandomFareEstimator() *RandomFareEstimator {
	return &RandomFareEstimator{Min: 5.0, Max: 25.0}
}

// Estimate returns a fare in [Min, Max], rounded to cents.
func (e *RandomFareEstimator) Estimate(pickup, destination string) float64 {
	fare := e.Min + rand.Float64()*(e.Max-e.Min)
	return math.Round(fare*100) / 100
}

// FixedFareEstimator always quotes the same fare. Used in tests.
type FixedFareEstimator struct {
	Fare float64
}

// Estimate returns the configured fare.
func (e *FixedFareEstimator) Estimate(pickup, destination string) float64 {
	return e.Fare
}

var (
	_ FareEstimator = (*RandomFareEstimator)(nil)
	_ FareEstimator = (*FixedFareEstimator)(nil)
)
