package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/pkg/guard"
)

var ErrRecordTrackingCommandIsNotConstructed = errors.New(
	"RecordTrackingCommand must be created via NewRecordTrackingCommand constructor",
)

// RecordTrackingCommand appends a free-form entry to the tracking log.
type RecordTrackingCommand struct {
	entry *tracking.Entry

	guard guard.ConstructorGuard
}

func NewRecordTrackingCommand(trackingID string, parcelID *kernel.UUID, status, message, updatedBy string) (RecordTrackingCommand, error) {
	entry, err := tracking.NewEntry(kernel.NewUUID(), trackingID, parcelID, status, message, updatedBy, time.Now().UTC())
	if err != nil {
		return RecordTrackingCommand{}, err
	}
	return RecordTrackingCommand{entry: entry, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingCommandIsNotConstructed)
}

type RecordTrackingCommandHandler struct {
	log TrackingLog
}

func NewRecordTrackingCommandHandler(trackingLog TrackingLog) RecordTrackingCommandHandler {
	return RecordTrackingCommandHandler{log: trackingLog}
}

func (h RecordTrackingCommandHandler) Handle(ctx context.Context, cmd RecordTrackingCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := h.log.Append(ctx, cmd.entry); err != nil {
		return kernel.UUID{}, err
	}
	return cmd.entry.ID(), nil
}
