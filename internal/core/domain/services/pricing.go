package services

import (
	"math"

	"brewride/internal/core/domain/model/kernel"
)

// DefaultFeePerKm is the delivery fee rate in USD per great-circle kilometer.
const DefaultFeePerKm = 0.2

// FeeCalculator is a domain service that prices deliveries. The fee is a
// function of the straight-line (haversine) distance from the cafe to the
// delivery point, not the drivable route, which is consumed only for map
// display. The result is frozen into the order at creation
// time and never recomputed.
//
// Example:
//
//	calc := services.NewFeeCalculator()
//	fee := calc.DeliveryFee(cafe, destination) // 10 km away -> 2.00
type FeeCalculator struct {
	feePerKm float64
}

// NewFeeCalculator creates a calculator with the default per-kilometer rate.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{feePerKm: DefaultFeePerKm}
}

// DeliveryFee returns the delivery fee in USD for the straight-line distance
// between the cafe and the delivery point, rounded to 2 decimals.
func (c FeeCalculator) DeliveryFee(cafe kernel.GeoPoint, deliveryPoint kernel.GeoPoint) float64 {
	return roundToCents(cafe.DistanceKm(deliveryPoint) * c.feePerKm)
}

func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
