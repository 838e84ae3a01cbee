package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyServiceBaseURL, "https://audit.internal:8443")
	_ = store.Set(KeyServiceTimeout, int64(30))
	_ = store.Set(KeyServiceQueryRate, 0.5)
	_ = store.Set(KeyBreakerEnabled, false)
	_ = store.Set(KeyWorkflowDiscard, false)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://audit.internal:8443", settings.Service.BaseURL)
	assert.Equal(t, 30, settings.Service.TimeoutSeconds)
	assert.Equal(t, 0.5, settings.Service.QueryRate)
	assert.False(t, settings.Breaker.Enabled)
	assert.False(t, settings.Workflow.DiscardStale)
	assert.True(t, settings.History.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyServiceBaseURL, "not a url")
	_ = store.Set(KeyServiceTimeout, -5)
	_ = store.Set(KeyBreakerFailureRatio, 3.0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Service.BaseURL, settings.Service.BaseURL)
	assert.Equal(t, defaults.Service.TimeoutSeconds, settings.Service.TimeoutSeconds)
	assert.Equal(t, defaults.Breaker.FailureRatio, settings.Breaker.FailureRatio)
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Service.BaseURL = "http://10.0.0.5:5000"
	settings.Breaker.MinRequests = 10
	settings.History.Enabled = false

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Service.BaseURL = "ftp://nowhere"

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected any
	}{
		{KeyServiceBaseURL, "http://localhost:9000/", "http://localhost:9000"},
		{KeyServiceTimeout, "45", 45},
		{KeyServiceQueryRate, "1.5", 1.5},
		{KeyBreakerEnabled, "false", false},
		{KeyBreakerMinRequests, "3", 3},
		{KeyBreakerFailureRatio, "0.25", 0.25},
		{KeyBreakerOpenSeconds, "60", 60},
		{KeyWorkflowDiscard, "true", true},
		{KeyHistoryEnabled, " false ", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			require.NoError(t, service.Set(tt.key, tt.value))

			val, ok := store.Get(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{KeyServiceBaseURL, "localhost"},
		{KeyServiceTimeout, "0"},
		{KeyServiceTimeout, "ten"},
		{KeyServiceQueryRate, "-1"},
		{KeyBreakerFailureRatio, "1.5"},
		{KeyHistoryEnabled, "maybe"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()

			err := NewSettingsService(store).Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	require.Len(t, keys, 9)
	assert.Equal(t, KeyServiceBaseURL, keys[0])

	keys[0] = "mutated"
	assert.Equal(t, KeyServiceBaseURL, service.Keys()[0])
}
