package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func historyFixture() []domain.HistoryEntry {
	return []domain.HistoryEntry{
		{
			ID: "h2", Kind: domain.HistoryQuery, FileName: "report.pdf", Success: true,
			Question: "Who audited it?", Answer: "An external firm.", CreatedAt: testTime,
		},
		{
			ID: "h1", Kind: domain.HistoryAnalysis, FileName: "report.pdf", Success: true,
			Answer: "2", CreatedAt: testTime,
		},
		{
			ID: "h0", Kind: domain.HistoryAnalysis, FileName: "broken.txt",
			Error: "transport error", CreatedAt: testTime,
		},
	}
}

func TestHistoryCmd_ListsEntries(t *testing.T) {
	ts := setupTestServices(t)
	ts.history.entries = historyFixture()

	out, _, err := executeCommand(t, "", "history")

	require.NoError(t, err)
	assert.Equal(t, 20, ts.history.limit)
	assert.Contains(t, out, "✓ query    report.pdf")
	assert.Contains(t, out, "Q: Who audited it?")
	assert.Contains(t, out, "A: An external firm.")
	assert.Contains(t, out, "2 answers")
	assert.Contains(t, out, "✗ analysis broken.txt")
	assert.Contains(t, out, "Error: transport error")
}

func TestHistoryListCmd_Limit(t *testing.T) {
	ts := setupTestServices(t)

	_, _, err := executeCommand(t, "", "history", "list", "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, ts.history.limit)
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, _, err := executeCommand(t, "", "history", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No history recorded.")
}

func TestHistoryCmd_JSONEmptyIsArray(t *testing.T) {
	setupTestServices(t)

	out, _, err := executeCommand(t, "", "history", "--json")

	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestHistoryCmd_ListError(t *testing.T) {
	ts := setupTestServices(t)
	ts.history.err = errors.New("disk full")

	_, _, err := executeCommand(t, "", "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list history")
}

func TestHistoryClearCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, _, err := executeCommand(t, "", "history", "clear")

	require.NoError(t, err)
	assert.True(t, ts.history.cleared)
	assert.Contains(t, out, "History cleared.")
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	clearServices()

	_, _, err := executeCommand(t, "", "history", "clear")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
