package queries

import (
	"context"
	"errors"
	"iter"

	"parcels/internal/core/domain/model/rider"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrListRidersQueryIsNotConstructed = errors.New(
	"ListRidersQuery must be created via NewListRidersQuery constructor",
)

// ListRidersQuery lists rider applications, most recent first. A zero status
// lists every application.
//
// Example:
//
//	q, _ := NewListRidersQuery(viewer, rider.Pending)
//	seq, err := handler.Handle(ctx, q)
//	if err != nil {
//	    return err
//	}
//	for r, err := range seq {
//	    ...
//	}
type ListRidersQuery struct {
	viewer Viewer
	status rider.Status

	guard guard.ConstructorGuard
}

func NewListRidersQuery(viewer Viewer, status rider.Status) (ListRidersQuery, error) {
	if status != rider.UnknownStatus {
		if err := status.Validate(); err != nil {
			return ListRidersQuery{}, err
		}
	}
	return ListRidersQuery{viewer: viewer, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRidersQuery) Validate() error {
	return q.guard.Validate(ErrListRidersQueryIsNotConstructed)
}

type ListRidersQueryHandler struct {
	riders RiderReader
}

func NewListRidersQueryHandler(riders RiderReader) ListRidersQueryHandler {
	return ListRidersQueryHandler{riders: riders}
}

// Handle is admin only.
func (h ListRidersQueryHandler) Handle(ctx context.Context, q ListRidersQuery) (iter.Seq2[*rider.Rider, error], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if !q.viewer.Role.IsAdmin() {
		return nil, errs.NewForbiddenError("list riders", "admin required")
	}

	if q.status == rider.UnknownStatus {
		return h.riders.ListAll(ctx), nil
	}
	return h.riders.ListByStatus(ctx, q.status), nil
}
