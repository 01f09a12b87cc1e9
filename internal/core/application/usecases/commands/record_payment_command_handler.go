package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/pkg/errs"
)

// RecordPaymentCommandHandler runs the payment saga:
//
//  1. parcel store: mark the parcel paid (unpaid -> paid, conditional)
//  2. payment ledger: append the payment record
//
// parcel.ErrAlreadyPaid or a missing parcel in step 1 aborts with nothing
// written, so a payment record only ever follows a fresh unpaid -> paid
// transition made by the same call. A failure in step 2 leaves a paid parcel
// with no ledger entry; it is reported as an *errs.PartialFailureError and
// step 1 is not undone.
//
// The payer is always the actor, never a field of the request body. A
// successful payment also appends a "paid" entry to the tracking log; a
// failed tracking write is logged and does not fail the payment.
//
// Example:
//
//	handler := NewRecordPaymentCommandHandler(parcels, ledger, trackingLog, logger)
//	cmd, _ := NewRecordPaymentCommand(actor, parcelID, 1500, payment.DefaultMethod, "pi_3N...")
//	id, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, parcel.ErrAlreadyPaid):
//	    // nothing was written
//	case errors.Is(err, errs.ErrPartialFailure):
//	    // parcel is paid, ledger entry missing
//	}
type RecordPaymentCommandHandler struct {
	parcels  ParcelStore
	ledger   PaymentLedger
	tracking TrackingLog
	logger   *slog.Logger
}

func NewRecordPaymentCommandHandler(
	parcels ParcelStore,
	ledger PaymentLedger,
	trackingLog TrackingLog,
	logger *slog.Logger,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		parcels:  parcels,
		ledger:   ledger,
		tracking: trackingLog,
		logger:   logger.With("component", "record_payment_saga"),
	}
}

// Handle returns the ID of the appended payment record. On a partial failure
// the returned ID is zero even though the parcel is already paid.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	// Build the record before step 1 so that invalid input can never leave a
	// paid parcel behind.
	record, err := payment.NewPayment(
		kernel.NewUUID(),
		cmd.ParcelID(),
		cmd.Actor().Email,
		cmd.Amount(),
		cmd.Method(),
		cmd.TransactionID(),
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	paid, err := h.parcels.MarkPaid(ctx, cmd.ParcelID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.ledger.Append(ctx, record); err != nil {
		pf := errs.NewPartialFailureError(
			SagaRecordPayment,
			StepAppendPayment,
			[]string{StepMarkParcelPaid},
			"parcel is marked paid but has no payment record",
			err,
		).WithEntity("parcel_id", paid.ID().String()).WithEntity("transaction_id", cmd.TransactionID())
		return kernel.UUID{}, reportPartialFailure(ctx, h.logger, pf)
	}

	appendTracking(ctx, h.logger, h.tracking, paid.TrackingID(), paid.ID(), tracking.StatusPaid,
		fmt.Sprintf("Paid %d via %s", record.Amount(), record.Method()), cmd.Actor().Email.String())

	return record.ID(), nil
}
