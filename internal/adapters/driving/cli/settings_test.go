package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, _, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: http://127.0.0.1:5000")
	assert.Contains(t, out, "Timeout: 2m0s")
	assert.Contains(t, out, "Query rate: 2/s")
	assert.Contains(t, out, "Minimum requests: 5")
	assert.Contains(t, out, "Discard stale responses: yes")
	assert.Contains(t, out, "service.base_url")
}

func TestSettingsCmd_ShowBreakerDisabled(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.settings.Breaker.Enabled = false

	out, _, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.NotContains(t, out, "Minimum requests")
}

func TestSettingsCmd_ShowError(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.err = errors.New("corrupt config")

	_, _, err := executeCommand(t, "", "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get settings")
}

func TestSettingsSetCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, _, err := executeCommand(t, "", "settings", "set", "workflow.discard_stale", "false")

	require.NoError(t, err)
	assert.Equal(t, "false", ts.settings.set["workflow.discard_stale"])
	assert.Contains(t, out, "workflow.discard_stale = false")
}

func TestSettingsSetCmd_InvalidKey(t *testing.T) {
	setupTestServices(t)

	_, _, err := executeCommand(t, "", "settings", "set", "bogus", "1")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid setting")
}

func TestSettingsSetCmd_NeedsTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, _, err := executeCommand(t, "", "settings", "set", "service.base_url")

	require.Error(t, err)
}

func TestSettingsResetCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, _, err := executeCommand(t, "", "settings", "reset")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, domain.DefaultAppSettings(), *ts.settings.saved)
	assert.Contains(t, out, "Settings restored to defaults.")
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	clearServices()

	_, _, err := executeCommand(t, "", "settings")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
