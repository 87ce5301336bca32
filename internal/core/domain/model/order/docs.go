// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order moves through pending → approved → accepted → picked_up →
// delivered → completed, with side branches to rejected (admin) and
// cancelled (customer, before a rider claims it). Each transition is owned
// by exactly one actor role and enforced by the aggregate. The single
// cross-device race, riders competing to accept the same approved order,
// is resolved by a conditional write at the repository layer.
//
// The package also defines the Customer value object frozen into each order,
// the CompletedOrder archival record written once at completion, and the
// ChangedEvent notification published to tracking subscribers.
package order
