package ports

import (
	"context"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
)

type RiderRepository interface {
	// Apply stores a new pending application. It returns rider.ErrAlreadyApplied
	// when the email already has a pending or approved application; the check
	// holds under concurrent calls.
	Apply(ctx context.Context, r *rider.Rider) error

	// Get returns the application with the given ID or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// FindByEmail returns the pending or approved application for email, or an
	// errs.ObjectNotFoundError.
	FindByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error)

	// ListByStatus yields applications with the given status, most recent
	// first. The sequence is lazy and can be ranged over more than once; each
	// range issues a fresh query.
	ListByStatus(ctx context.Context, status rider.Status) iter.Seq2[*rider.Rider, error]

	// ListAll yields every application, most recent first.
	ListAll(ctx context.Context) iter.Seq2[*rider.Rider, error]

	// TransitionStatus applies action to a pending application and returns the
	// updated application. It does not touch the work status or any role.
	// Returns errs.ObjectNotFoundError or rider.ErrAlreadyReviewed.
	TransitionStatus(ctx context.Context, id kernel.UUID, action rider.Action) (*rider.Rider, error)

	// SetWorkStatus changes the work status of an approved rider from `from`
	// to `to` as a single compare-and-set. Returns errs.ObjectNotFoundError
	// when the rider does not exist, rider.ErrRiderNotApproved when it is not
	// approved, and rider.ErrWorkStatusChanged when the current work status is
	// not `from`.
	SetWorkStatus(ctx context.Context, id kernel.UUID, from, to rider.WorkStatus) error
}
