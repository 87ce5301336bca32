// Package tracking fans order change notifications out to live subscribers.
// Changes arrive from two sources: the broker consumer (low latency,
// best-effort) and the polling job (slow, authoritative). The hub merges
// both streams and drops observations that would move an order backwards,
// so subscribers see a monotonic view regardless of arrival order.
package tracking

import (
	"sync"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
)

// Snapshot is the per-order state delivered to subscribers.
type Snapshot struct {
	OrderID       string
	Status        order.Status
	RiderID       *string
	RiderPosition *kernel.GeoPoint
	ObservedAt    time.Time
}

// subscriberBuffer bounds how far a slow subscriber can fall behind.
// Snapshots carry full state, so dropping old ones loses nothing.
const subscriberBuffer = 16

// tombstoneRetention bounds how long the snapshot of a finished order is
// kept. The poller stops republishing terminal orders, so without the
// tombstone a delayed broker message from before the finish would look like
// a fresh order and resurrect an in-flight status.
const tombstoneRetention = time.Hour

type subscriber struct {
	ch chan Snapshot
}

// Hub routes snapshots to subscribers keyed by order ID.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[int]*subscriber
	latest      map[string]Snapshot
	nextID      int
	nextSweep   time.Time
}

// NewHub creates an empty tracking hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[int]*subscriber),
		latest:      make(map[string]Snapshot),
	}
}

// Subscribe registers interest in one order. The returned channel delivers
// the latest known snapshot immediately when one exists, then every accepted
// update. The cancel function must be called to release the subscription;
// it closes the channel.
func (h *Hub) Subscribe(orderID string) (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Snapshot, subscriberBuffer)}
	id := h.nextID
	h.nextID++

	if h.subscribers[orderID] == nil {
		h.subscribers[orderID] = make(map[int]*subscriber)
	}
	h.subscribers[orderID][id] = sub

	if last, ok := h.latest[orderID]; ok {
		sub.ch <- last
	}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		subs, ok := h.subscribers[orderID]
		if !ok {
			return
		}
		if _, ok := subs[id]; !ok {
			return
		}

		delete(subs, id)
		if len(subs) == 0 {
			delete(h.subscribers, orderID)
		}
		close(sub.ch)
	}

	return sub.ch, cancel
}

// Publish offers a snapshot to the hub. Stale observations are dropped:
// a snapshot whose status is neither the currently known status nor
// reachable from it describes the past. Position-only updates within the
// same status always pass through. Once an order is terminal its snapshot
// stays behind as a tombstone that absorbs every later observation, so a
// delayed broker message can never move a finished order back in flight.
func (h *Hub) Publish(snapshot Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sweepTombstones(time.Now())

	if last, ok := h.latest[snapshot.OrderID]; ok {
		if last.Status.IsTerminal() {
			return
		}
		if snapshot.Status != last.Status && !last.Status.CanProgressTo(snapshot.Status) {
			return
		}
	}

	h.latest[snapshot.OrderID] = snapshot

	for _, sub := range h.subscribers[snapshot.OrderID] {
		select {
		case sub.ch <- snapshot:
		default:
			// Subscriber is falling behind; drop the oldest buffered
			// snapshot to make room for the current one.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
	}

}

// sweepTombstones evicts terminal snapshots that outlived the retention
// window. Runs at most once per window so Publish stays cheap.
func (h *Hub) sweepTombstones(now time.Time) {
	if now.Before(h.nextSweep) {
		return
	}
	h.nextSweep = now.Add(tombstoneRetention)

	for orderID, last := range h.latest {
		if last.Status.IsTerminal() && now.Sub(last.ObservedAt) > tombstoneRetention {
			delete(h.latest, orderID)
		}
	}
}

// PublishEvent converts a broker change notification into a snapshot and
// offers it to the hub. Events with an unknown status are dropped.
func (h *Hub) PublishEvent(event order.ChangedEvent) {
	status, err := order.StatusFromString(event.Status)
	if err != nil {
		return
	}

	snapshot := Snapshot{
		OrderID:    event.OrderID,
		Status:     status,
		RiderID:    event.RiderID,
		ObservedAt: event.OccurredAt,
	}

	if event.RiderLat != nil && event.RiderLng != nil {
		if point, err := kernel.NewGeoPoint(*event.RiderLat, *event.RiderLng); err == nil {
			snapshot.RiderPosition = &point
		}
	}

	h.Publish(snapshot)
}

// PublishOrder converts a polled aggregate into a snapshot and offers it to
// the hub. The polling job uses it to republish authoritative rows, which
// also backfills changes the broker lost.
func (h *Hub) PublishOrder(aggregate *order.Order, observedAt time.Time) {
	snapshot := Snapshot{
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status(),
		ObservedAt: observedAt,
	}

	if aggregate.Rider() != nil {
		riderID := aggregate.Rider().String()
		snapshot.RiderID = &riderID
	}
	if aggregate.RiderPosition() != nil {
		position := *aggregate.RiderPosition()
		snapshot.RiderPosition = &position
	}

	h.Publish(snapshot)
}
