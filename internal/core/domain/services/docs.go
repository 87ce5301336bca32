// Package services contains stateless domain services that don't belong to
// a single aggregate: delivery fee pricing (haversine distance at a fixed
// per-kilometer rate, frozen at order creation) and read-time earnings
// aggregation into daily/weekly/monthly buckets.
package services
