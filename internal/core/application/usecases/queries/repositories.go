// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
//
// List queries return lazy iter.Seq2 sequences straight from the stores, so
// a caller ranging over a large result never holds it in memory. The
// reconciliation report reads across tables with plain SQL, which no single
// store can answer.
package queries

import (
	"context"
	"fmt"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
)

type (
	RoleReader interface {
		GetRole(ctx context.Context, email kernel.Email) (user.Role, error)
	}

	RiderReader interface {
		ListByStatus(ctx context.Context, status rider.Status) iter.Seq2[*rider.Rider, error]
		ListAll(ctx context.Context) iter.Seq2[*rider.Rider, error]
	}

	ParcelReader interface {
		ListByOwner(ctx context.Context, owner kernel.Email) iter.Seq2[*parcel.Parcel, error]
		ListAll(ctx context.Context) iter.Seq2[*parcel.Parcel, error]
		ListPendingForRider(ctx context.Context, riderEmail kernel.Email) iter.Seq2[*parcel.Parcel, error]
	}

	PaymentReader interface {
		ListByPayer(ctx context.Context, payer kernel.Email) iter.Seq2[*payment.Payment, error]
		ListAll(ctx context.Context) iter.Seq2[*payment.Payment, error]
	}

	TrackingReader interface {
		ListByTrackingID(ctx context.Context, trackingID string) iter.Seq2[*tracking.Entry, error]
	}
)

// Viewer is the authenticated caller a query runs for.
type Viewer struct {
	Email kernel.Email
	Role  user.Role
}

// mayRead allows admins everything and everyone else only their own records.
func (v Viewer) mayRead(action string, owner *kernel.Email) error {
	if v.Role.IsAdmin() {
		return nil
	}
	if owner == nil {
		return errs.NewForbiddenError(action, "only an admin may list records of every user")
	}
	if !owner.IsEqual(v.Email) {
		return errs.NewForbiddenError(action, fmt.Sprintf("%s may not read records of %s", v.Email, owner))
	}
	return nil
}
