// Package kernel contains shared value objects used across the domain model.
//
// It provides two building blocks:
//   - UUID: an immutable identifier wrapping github.com/google/uuid, used as
//     the identity of every aggregate (orders, riders).
//   - GeoPoint: a validated latitude/longitude pair with great-circle distance
//     calculation, used for delivery destinations and rider positions.
//
// Both types are value objects: they are immutable, compared by value, and
// must be created through their constructors. Zero values fail Validate.
package kernel
