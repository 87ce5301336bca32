package tracking

import (
	"context"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"
)

// HubGeolocation implements the Geolocation port on top of the hub and the
// position cache. Current position is answered from the cache; streams are
// backed by a hub subscription filtered down to position changes.
type HubGeolocation struct {
	hub   *Hub
	cache ports.PositionCache
}

// NewHubGeolocation creates a geolocation source over the hub and cache.
func NewHubGeolocation(hub *Hub, cache ports.PositionCache) *HubGeolocation {
	return &HubGeolocation{hub: hub, cache: cache}
}

// CurrentPosition returns the cached rider position for an order. Returns
// an ObjectNotFoundError when no position has been reported yet, or when no
// cache is configured.
func (g *HubGeolocation) CurrentPosition(ctx context.Context, orderID kernel.UUID) (kernel.GeoPoint, error) {
	if g.cache == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("riderPosition", orderID.String())
	}

	position, err := g.cache.GetPosition(ctx, orderID)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if position == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("riderPosition", orderID.String())
	}

	return *position, nil
}

// StreamPosition delivers rider positions for the order as snapshots arrive.
// Snapshots without a position are skipped. The stream ends when the context
// is done or the returned stop function is called.
func (g *HubGeolocation) StreamPosition(ctx context.Context, orderID kernel.UUID) (<-chan kernel.GeoPoint, func(), error) {
	if err := orderID.Validate(); err != nil {
		return nil, nil, err
	}

	snapshots, cancel := g.hub.Subscribe(orderID.String())
	positions := make(chan kernel.GeoPoint, subscriberBuffer)

	go func() {
		defer close(positions)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				if snapshot.RiderPosition == nil {
					continue
				}
				select {
				case positions <- *snapshot.RiderPosition:
				case <-ctx.Done():
					cancel()
					return
				}
			}
		}
	}()

	return positions, cancel, nil
}
