package ports

import (
	"context"
	"iter"

	"parcels/internal/core/domain/model/tracking"
)

type TrackingLog interface {
	Append(ctx context.Context, e *tracking.Entry) error

	// ListByTrackingID yields entries for a tracking code in time order.
	ListByTrackingID(ctx context.Context, trackingID string) iter.Seq2[*tracking.Entry, error]
}
