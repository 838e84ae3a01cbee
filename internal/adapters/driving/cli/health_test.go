package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestHealthCmd_Healthy(t *testing.T) {
	ts := setupTestServices(t)
	ts.health.status = &domain.HealthStatus{Status: "healthy", Message: "API is running", RAGInitialized: true}

	out, _, err := executeCommand(t, "", "health")

	require.NoError(t, err)
	assert.Contains(t, out, "Status: healthy")
	assert.Contains(t, out, "Message: API is running")
	assert.Contains(t, out, "Query engine: initialised")
}

func TestHealthCmd_Unhealthy(t *testing.T) {
	ts := setupTestServices(t)
	ts.health.status = &domain.HealthStatus{Status: "degraded"}

	out, _, err := executeCommand(t, "", "health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not healthy")
	assert.Contains(t, out, "Query engine: not initialised")
}

func TestHealthCmd_Unreachable(t *testing.T) {
	ts := setupTestServices(t)
	ts.health.err = domain.ErrTransport

	_, _, err := executeCommand(t, "", "health")

	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestHealthCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, _, err := executeCommand(t, "", "health", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"status": "healthy"`)
	assert.Contains(t, out, `"rag_initialized": true`)
}

func TestHealthCmd_NotConfigured(t *testing.T) {
	clearServices()

	_, _, err := executeCommand(t, "", "health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "health service not configured")
}
