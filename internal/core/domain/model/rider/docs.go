// Package rider contains the Rider aggregate and its earnings stats.
//
// A rider has an administrative account status (pending, approved, rejected)
// that gates fleet participation, separate from any order's lifecycle state.
// Stats accrue lifetime earnings and delivery counts exactly once per
// completed order; period breakdowns are computed at read time from the
// completed-order archive.
package rider
