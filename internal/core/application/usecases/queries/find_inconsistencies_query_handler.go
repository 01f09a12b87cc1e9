package queries

import (
	"context"
	"database/sql"
	"fmt"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// FindInconsistenciesQueryHandler runs the reconciliation scan with direct
// SQL against the tables the postgres repositories maintain.
type FindInconsistenciesQueryHandler struct {
	db *gorm.DB
}

func NewFindInconsistenciesQueryHandler(db *gorm.DB) FindInconsistenciesQueryHandler {
	return FindInconsistenciesQueryHandler{db: db}
}

// Handle returns every violation found, grouped by kind. An empty result
// means the stores agree with each other.
func (h FindInconsistenciesQueryHandler) Handle(
	ctx context.Context,
	query FindInconsistenciesQuery,
) ([]FindInconsistenciesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found := make([]FindInconsistenciesQueryResponse, 0)
	for _, scan := range []func(context.Context) ([]FindInconsistenciesQueryResponse, error){
		h.ridersNotBusy,
		h.busyWithoutParcel,
		h.paymentRecordCounts,
		h.rolesNotPromoted,
		h.rolesWithoutApproval,
	} {
		rows, err := scan(ctx)
		if err != nil {
			return nil, err
		}
		found = append(found, rows...)
	}

	return found, nil
}

func (h FindInconsistenciesQueryHandler) ridersNotBusy(ctx context.Context) ([]FindInconsistenciesQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id::text,
			p.tracking_id,
			COALESCE(p.assigned_rider, ''),
			r.work_status
		FROM parcels p
		LEFT JOIN riders r
			ON r.email = p.assigned_rider AND r.status = ?
		WHERE p.status = ?
			AND (r.id IS NULL OR r.work_status <> ?)
		ORDER BY p.created_at
	`, int(rider.Approved), int(parcel.AssignedRider), int(rider.Busy)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []FindInconsistenciesQueryResponse
	for rows.Next() {
		var (
			parcelID, trackingID, riderEmail string
			workStatus                       sql.NullInt64
		)
		if err = rows.Scan(&parcelID, &trackingID, &riderEmail, &workStatus); err != nil {
			return nil, err
		}

		detail := fmt.Sprintf("parcel %s is assigned to %s, which has no approved application", trackingID, riderEmail)
		if workStatus.Valid {
			detail = fmt.Sprintf("parcel %s is assigned to %s, whose work status is %s",
				trackingID, riderEmail, rider.WorkStatus(workStatus.Int64))
		}
		found = append(found, FindInconsistenciesQueryResponse{
			Kind:    InconsistencyRiderNotBusy,
			Subject: parcelID,
			Detail:  detail,
		})
	}

	return found, rows.Err()
}

func (h FindInconsistenciesQueryHandler) busyWithoutParcel(ctx context.Context) ([]FindInconsistenciesQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.email
		FROM riders r
		WHERE r.status = ?
			AND r.work_status = ?
			AND NOT EXISTS (
				SELECT 1 FROM parcels p WHERE p.assigned_rider = r.email AND p.status = ?
			)
		ORDER BY r.email
	`, int(rider.Approved), int(rider.Busy), int(parcel.AssignedRider)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []FindInconsistenciesQueryResponse
	for rows.Next() {
		var email string
		if err = rows.Scan(&email); err != nil {
			return nil, err
		}
		found = append(found, FindInconsistenciesQueryResponse{
			Kind:    InconsistencyBusyWithoutParcel,
			Subject: email,
			Detail:  "rider is busy but has no parcel awaiting delivery",
		})
	}

	return found, rows.Err()
}

func (h FindInconsistenciesQueryHandler) paymentRecordCounts(ctx context.Context) ([]FindInconsistenciesQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id::text,
			p.tracking_id,
			p.payment_status,
			COUNT(pay.id)
		FROM parcels p
		LEFT JOIN payments pay ON pay.parcel_id = p.id
		GROUP BY p.id, p.tracking_id, p.payment_status
		HAVING (p.payment_status = ? AND COUNT(pay.id) <> 1)
			OR (p.payment_status <> ? AND COUNT(pay.id) > 0)
		ORDER BY p.id
	`, int(parcel.Paid), int(parcel.Paid)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []FindInconsistenciesQueryResponse
	for rows.Next() {
		var (
			parcelID, trackingID string
			status               int
			records              int64
		)
		if err = rows.Scan(&parcelID, &trackingID, &status, &records); err != nil {
			return nil, err
		}
		found = append(found, FindInconsistenciesQueryResponse{
			Kind:    InconsistencyPaymentRecords,
			Subject: parcelID,
			Detail: fmt.Sprintf("parcel %s is %s with %d payment records",
				trackingID, parcel.PaymentStatus(status), records),
		})
	}

	return found, rows.Err()
}

func (h FindInconsistenciesQueryHandler) rolesNotPromoted(ctx context.Context) ([]FindInconsistenciesQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.email, COALESCE(u.role, 0)
		FROM riders r
		LEFT JOIN users u ON u.email = r.email
		WHERE r.status = ?
			AND (u.id IS NULL OR u.role <> ?)
		ORDER BY r.email
	`, int(rider.Approved), int(user.RoleRider)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []FindInconsistenciesQueryResponse
	for rows.Next() {
		var (
			email string
			role  int
		)
		if err = rows.Scan(&email, &role); err != nil {
			return nil, err
		}

		detail := "approved applicant is not a registered user"
		if role != 0 {
			detail = fmt.Sprintf("approved applicant has role %s", user.Role(role))
		}
		found = append(found, FindInconsistenciesQueryResponse{
			Kind:    InconsistencyRoleNotPromoted,
			Subject: email,
			Detail:  detail,
		})
	}

	return found, rows.Err()
}

func (h FindInconsistenciesQueryHandler) rolesWithoutApproval(ctx context.Context) ([]FindInconsistenciesQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT u.email
		FROM users u
		WHERE u.role = ?
			AND NOT EXISTS (
				SELECT 1 FROM riders r WHERE r.email = u.email AND r.status = ?
			)
		ORDER BY u.email
	`, int(user.RoleRider), int(rider.Approved)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []FindInconsistenciesQueryResponse
	for rows.Next() {
		var email string
		if err = rows.Scan(&email); err != nil {
			return nil, err
		}
		found = append(found, FindInconsistenciesQueryResponse{
			Kind:    InconsistencyRoleWithoutApproval,
			Subject: email,
			Detail:  "user has the rider role without an approved application",
		})
	}

	return found, rows.Err()
}
