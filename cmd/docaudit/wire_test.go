package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestWire_CreatesConfigAndHistory(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := wire(context.Background(), cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()
	assert.FileExists(t, filepath.Join(dir, "data", "history.db"))
}

func TestWire_NoHistoryKeepsNothingOnDisk(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := wire(context.Background(), cli.Options{ConfigDir: dir, NoHistory: true})

	require.NoError(t, err)
	cleanup()
	_, statErr := os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWire_InvalidServerOverride(t *testing.T) {
	_, err := wire(context.Background(), cli.Options{
		ConfigDir: t.TempDir(),
		ServerURL: "ftp://example.com",
		NoHistory: true,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--server")
}

func TestNewDropFolder(t *testing.T) {
	dir := t.TempDir()

	folder := newDropFolder(dir, 10*time.Millisecond)

	assert.Equal(t, dir, folder.Dir())
}
