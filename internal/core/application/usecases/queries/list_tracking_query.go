package queries

import (
	"context"
	"errors"
	"iter"
	"strings"

	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrListTrackingQueryIsNotConstructed = errors.New(
	"ListTrackingQuery must be created via NewListTrackingQuery constructor",
)

// ListTrackingQuery returns the tracking history of a parcel by its
// tracking code, oldest first.
type ListTrackingQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

func NewListTrackingQuery(trackingID string) (ListTrackingQuery, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return ListTrackingQuery{}, errs.NewValueIsRequiredError("trackingId")
	}
	return ListTrackingQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTrackingQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingQueryIsNotConstructed)
}

type ListTrackingQueryHandler struct {
	log TrackingReader
}

func NewListTrackingQueryHandler(trackingLog TrackingReader) ListTrackingQueryHandler {
	return ListTrackingQueryHandler{log: trackingLog}
}

func (h ListTrackingQueryHandler) Handle(ctx context.Context, q ListTrackingQuery) (iter.Seq2[*tracking.Entry, error], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.log.ListByTrackingID(ctx, q.trackingID), nil
}
