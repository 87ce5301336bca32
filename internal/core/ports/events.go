package ports

import (
	"context"

	"brewride/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order change notifications to tracking
// subscribers after a committed write. Publication is best-effort: handlers
// log a failed publish and move on, because every subscriber also polls the
// authoritative row on a fixed interval.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event order.ChangedEvent) error
}
