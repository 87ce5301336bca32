package order

import "time"

// ChangedEvent is the change notification emitted after an order row is
// committed. It carries the post-change snapshot that tracking clients need
// so subscribers can update without an extra fetch. Delivery is best-effort;
// every subscriber also polls the authoritative row on a fixed interval.
type ChangedEvent struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	RiderID    *string   `json:"rider_id,omitempty"`
	RiderLat   *float64  `json:"rider_lat,omitempty"`
	RiderLng   *float64  `json:"rider_lng,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangedEvent builds the change notification for the order's current state.
func (o *Order) ChangedEvent(occurredAt time.Time) ChangedEvent {
	event := ChangedEvent{
		OrderID:    o.id.String(),
		Status:     o.status.String(),
		OccurredAt: occurredAt,
	}

	if o.riderID != nil {
		riderID := o.riderID.String()
		event.RiderID = &riderID
	}

	if o.riderPosition != nil {
		lat := o.riderPosition.Lat()
		lng := o.riderPosition.Lng()
		event.RiderLat = &lat
		event.RiderLng = &lng
	}

	return event
}
