package ports

import (
	"context"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

type ParcelRepository interface {
	// Create stores a new parcel. There is no uniqueness constraint on owner.
	Create(ctx context.Context, p *parcel.Parcel) error

	// Get returns the parcel or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// ListByOwner yields parcels owned by email, newest first.
	ListByOwner(ctx context.Context, owner kernel.Email) iter.Seq2[*parcel.Parcel, error]

	// ListAll yields every parcel, newest first.
	ListAll(ctx context.Context) iter.Seq2[*parcel.Parcel, error]

	// ListPendingForRider yields parcels assigned to riderEmail that are still
	// in the Assigned Rider status.
	ListPendingForRider(ctx context.Context, riderEmail kernel.Email) iter.Seq2[*parcel.Parcel, error]

	// AssignRider moves a Created parcel without a rider to Assigned Rider and
	// records riderEmail in a single conditional write. Of any number of
	// concurrent calls for the same parcel at most one succeeds; the others get
	// parcel.ErrAlreadyAssigned. It does not check that the rider exists.
	// Returns errs.ObjectNotFoundError.
	AssignRider(ctx context.Context, id kernel.UUID, riderEmail kernel.Email) (*parcel.Parcel, error)

	// MarkDelivered moves an Assigned Rider parcel to Delivered in a single
	// conditional write. Returns parcel.ErrNotAssigned,
	// parcel.ErrAlreadyDelivered or errs.ObjectNotFoundError; in each case
	// nothing was written.
	MarkDelivered(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// Delete removes a parcel that is Created, unassigned and unpaid. The
	// check and the delete are one statement, so a concurrent payment or
	// assignment either happens first and blocks the delete (parcel.ErrNotDeletable)
	// or finds the parcel gone (errs.ObjectNotFoundError).
	Delete(ctx context.Context, id kernel.UUID) error

	// MarkPaid moves the payment status from unpaid to paid in a single
	// conditional write and returns the updated parcel. Returns
	// parcel.ErrAlreadyPaid or errs.ObjectNotFoundError; in both cases nothing
	// was written.
	MarkPaid(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
}
