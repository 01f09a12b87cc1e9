package commands_test

import (
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignRiderCommand_Success(t *testing.T) {
	parcelID, riderID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewAssignRiderCommand(adminActor(t), parcelID, riderID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, riderID, cmd.RiderID())
}

func TestNewAssignRiderCommand_ZeroIDs(t *testing.T) {
	_, err := commands.NewAssignRiderCommand(adminActor(t), kernel.UUID{}, kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAssignRiderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AssignRiderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAssignRiderCommandIsNotConstructed)
}
