package commands

import (
	"context"
	"log/slog"
	"time"

	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
)

// notifier publishes order change events after a committed write. Publication
// is best-effort: a failed publish is logged and swallowed, never surfaced to
// the caller, because tracking subscribers also poll the authoritative row.
type notifier struct {
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher ports.OrderEventPublisher, logger *slog.Logger) notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return notifier{
		publisher: publisher,
		logger:    logger.With("component", "commands"),
	}
}

func (n notifier) orderChanged(ctx context.Context, aggregate *order.Order) {
	if n.publisher == nil {
		return
	}

	event := aggregate.ChangedEvent(time.Now().UTC())
	if err := n.publisher.PublishOrderChanged(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "order change publication failed",
			"order_id", event.OrderID,
			"status", event.Status,
			"error", err)
	}
}
