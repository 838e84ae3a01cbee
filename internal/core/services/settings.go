package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServiceBaseURL      = "service.base_url"
	KeyServiceTimeout      = "service.timeout_seconds"
	KeyServiceQueryRate    = "service.query_rate"
	KeyBreakerEnabled      = "breaker.enabled"
	KeyBreakerMinRequests  = "breaker.min_requests"
	KeyBreakerFailureRatio = "breaker.failure_ratio"
	KeyBreakerOpenSeconds  = "breaker.open_seconds"
	KeyWorkflowDiscard     = "workflow.discard_stale"
	KeyHistoryEnabled      = "history.enabled"
)

var settingKeys = []string{
	KeyServiceBaseURL,
	KeyServiceTimeout,
	KeyServiceQueryRate,
	KeyBreakerEnabled,
	KeyBreakerMinRequests,
	KeyBreakerFailureRatio,
	KeyBreakerOpenSeconds,
	KeyWorkflowDiscard,
	KeyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults
// for missing or invalid values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Service: domain.ServiceSettings{
			BaseURL:        s.getURL(defaults.Service.BaseURL),
			TimeoutSeconds: s.getInt(KeyServiceTimeout, defaults.Service.TimeoutSeconds),
			QueryRate:      s.getFloat(KeyServiceQueryRate, defaults.Service.QueryRate),
		},
		Breaker: domain.BreakerSettings{
			Enabled:      s.getBool(KeyBreakerEnabled, defaults.Breaker.Enabled),
			MinRequests:  s.getInt(KeyBreakerMinRequests, defaults.Breaker.MinRequests),
			FailureRatio: s.getRatio(defaults.Breaker.FailureRatio),
			OpenSeconds:  s.getInt(KeyBreakerOpenSeconds, defaults.Breaker.OpenSeconds),
		},
		Workflow: domain.WorkflowSettings{
			DiscardStale: s.getBool(KeyWorkflowDiscard, defaults.Workflow.DiscardStale),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(KeyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := settings.Service.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyServiceBaseURL, settings.Service.BaseURL},
		{KeyServiceTimeout, settings.Service.TimeoutSeconds},
		{KeyServiceQueryRate, settings.Service.QueryRate},
		{KeyBreakerEnabled, settings.Breaker.Enabled},
		{KeyBreakerMinRequests, settings.Breaker.MinRequests},
		{KeyBreakerFailureRatio, settings.Breaker.FailureRatio},
		{KeyBreakerOpenSeconds, settings.Breaker.OpenSeconds},
		{KeyWorkflowDiscard, settings.Workflow.DiscardStale},
		{KeyHistoryEnabled, settings.History.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case KeyServiceBaseURL:
		if err := domain.ValidateServiceURL(value); err != nil {
			return err
		}
		parsed = strings.TrimRight(value, "/")
	case KeyServiceTimeout, KeyBreakerMinRequests, KeyBreakerOpenSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case KeyServiceQueryRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case KeyBreakerFailureRatio:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1]", domain.ErrInvalidInput, key)
		}
		parsed = f
	case KeyBreakerEnabled, KeyWorkflowDiscard, KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.configStore.Set(key, parsed)
}

// Keys returns the supported config keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getURL(defaultVal string) string {
	val := s.configStore.GetString(KeyServiceBaseURL)
	if val == "" || domain.ValidateServiceURL(val) != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getRatio(defaultVal float64) float64 {
	val := s.configStore.GetFloat(KeyBreakerFailureRatio)
	if val <= 0 || val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
