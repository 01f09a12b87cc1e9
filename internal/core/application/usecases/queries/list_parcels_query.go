package queries

import (
	"context"
	"errors"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
	ErrListPendingParcelsQueryIsNotConstructed = errors.New(
		"ListPendingParcelsQuery must be created via NewListPendingParcelsQuery constructor",
	)
)

// ListParcelsQuery lists parcels newest first. A nil owner lists every
// parcel and needs an admin; otherwise the viewer must be the owner or an
// admin.
type ListParcelsQuery struct {
	viewer Viewer
	owner  *kernel.Email

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(viewer Viewer, owner *kernel.Email) (ListParcelsQuery, error) {
	if owner != nil {
		if err := owner.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
	}
	return ListParcelsQuery{viewer: viewer, owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// ListPendingParcelsQuery lists the parcels a rider still has to deliver.
type ListPendingParcelsQuery struct {
	viewer     Viewer
	riderEmail kernel.Email

	guard guard.ConstructorGuard
}

func NewListPendingParcelsQuery(viewer Viewer, riderEmail kernel.Email) (ListPendingParcelsQuery, error) {
	if err := riderEmail.Validate(); err != nil {
		return ListPendingParcelsQuery{}, err
	}
	return ListPendingParcelsQuery{viewer: viewer, riderEmail: riderEmail, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListPendingParcelsQueryIsNotConstructed)
}

type ListParcelsQueryHandler struct {
	parcels ParcelReader
}

func NewListParcelsQueryHandler(parcels ParcelReader) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{parcels: parcels}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, q ListParcelsQuery) (iter.Seq2[*parcel.Parcel, error], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := q.viewer.mayRead("list parcels", q.owner); err != nil {
		return nil, err
	}

	if q.owner == nil {
		return h.parcels.ListAll(ctx), nil
	}
	return h.parcels.ListByOwner(ctx, *q.owner), nil
}

// HandlePending lists parcels in Assigned Rider status for the rider. Only
// the rider and admins may see them.
func (h ListParcelsQueryHandler) HandlePending(
	ctx context.Context,
	q ListPendingParcelsQuery,
) (iter.Seq2[*parcel.Parcel, error], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := q.viewer.mayRead("list pending parcels", &q.riderEmail); err != nil {
		return nil, err
	}

	return h.parcels.ListPendingForRider(ctx, q.riderEmail), nil
}
