package commands_test

import (
	"testing"

	"rentalorders/internal/core/application/usecases/commands"
	"rentalorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewConfirmOrderCommand(11)
	require.NoError(t, err)
	assert.Equal(t, int64(11), cmd.OrderID())
	assert.NoError(t, cmd.Validate())
}

func TestNewConfirmOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewConfirmOrderCommand(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestConfirmOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.ConfirmOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrConfirmOrderCommandIsNotConstructed)
}
