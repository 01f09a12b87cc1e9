package queries

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrFindInconsistenciesQueryIsNotConstructed = errors.New(
	"FindInconsistenciesQuery must be created via NewFindInconsistenciesQuery constructor",
)

// Kinds of cross-store inconsistency a partially applied saga can leave.
const (
	// An assigned parcel whose rider is missing, not approved or not busy.
	InconsistencyRiderNotBusy = "assigned_rider_not_busy"
	// A busy rider with no parcel waiting for delivery, typically left by a
	// delivery whose release step failed.
	InconsistencyBusyWithoutParcel = "busy_rider_without_parcel"
	// A paid parcel without exactly one payment record, or an unpaid parcel
	// with any.
	InconsistencyPaymentRecords = "payment_record_count"
	// An approved application whose applicant does not have the rider role.
	InconsistencyRoleNotPromoted = "approved_rider_not_promoted"
	// A rider role without an approved application behind it.
	InconsistencyRoleWithoutApproval = "rider_role_without_approval"
)

// FindInconsistenciesQuery scans all stores for broken cross-store
// invariants. It only reports; nothing is repaired.
//
// Example:
//
//	query := NewFindInconsistenciesQuery()
//	found, err := handler.Handle(ctx, query)
//	for _, i := range found {
//	    logger.Warn("inconsistency", "kind", i.Kind, "subject", i.Subject)
//	}
type FindInconsistenciesQuery struct {
	guard guard.ConstructorGuard
}

func NewFindInconsistenciesQuery() FindInconsistenciesQuery {
	return FindInconsistenciesQuery{guard: guard.NewConstructorGuard()}
}

func (q FindInconsistenciesQuery) Validate() error {
	return q.guard.Validate(ErrFindInconsistenciesQueryIsNotConstructed)
}

// FindInconsistenciesQueryResponse is one detected violation. Subject is the
// parcel ID for parcel-side findings and the email for rider and role
// findings.
type FindInconsistenciesQueryResponse struct {
	Kind    string
	Subject string
	Detail  string
}
