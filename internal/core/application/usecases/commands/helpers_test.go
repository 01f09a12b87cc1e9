package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func actor(t *testing.T, email string, role user.Role) commands.Actor {
	t.Helper()
	a, err := commands.NewActor(kernel.MustNewEmail(email), role)
	require.NoError(t, err)
	return a
}

func adminActor(t *testing.T) commands.Actor {
	return actor(t, "admin@x.com", user.RoleAdmin)
}

func newTestRider(t *testing.T, email string, status rider.Status, ws rider.WorkStatus) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(kernel.NewUUID(), kernel.MustNewEmail(email),
		rider.Profile{Name: "Ayesha", Region: "Dhaka"}, status, ws, time.Now())
	require.NoError(t, err)
	return r
}

func newTestParcel(t *testing.T, owner string) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.MustNewEmail(owner),
		parcel.Details{Title: "Documents", ReceiverName: "Rahim", ReceiverRegion: "Sylhet"}, 150, time.Now())
	require.NoError(t, err)
	return p
}
