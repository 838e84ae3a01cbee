package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default connection to the Analysis Service.
const (
	DefaultServiceURL     = "http://127.0.0.1:5000"
	DefaultTimeoutSeconds = 120
	DefaultQueryRate      = 2.0
)

// ServiceSettings holds Analysis Service connection settings.
type ServiceSettings struct {
	// BaseURL is the service root, e.g. http://127.0.0.1:5000.
	BaseURL string

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int

	// QueryRate is the client-side limit on follow-up questions per second.
	QueryRate float64
}

// Timeout returns TimeoutSeconds as a duration.
func (s ServiceSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Validate checks the base URL is an absolute http(s) URL and the numbers are positive.
func (s ServiceSettings) Validate() error {
	if err := ValidateServiceURL(s.BaseURL); err != nil {
		return err
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.QueryRate <= 0 {
		return fmt.Errorf("%w: query rate must be positive", ErrInvalidInput)
	}
	return nil
}

// ValidateServiceURL checks raw is an absolute http or https URL.
func ValidateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: service url: %v", ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: service url must use http or https", ErrInvalidInput)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: service url has no host", ErrInvalidInput)
	}
	return nil
}

// BreakerSettings configures the circuit breaker in front of the service.
type BreakerSettings struct {
	// Enabled turns the breaker on.
	Enabled bool

	// MinRequests is how many calls are observed before the breaker may trip.
	MinRequests int

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// OpenSeconds is how long the breaker stays open before probing again.
	OpenSeconds int
}

// WorkflowSettings configures the document workflow controller.
type WorkflowSettings struct {
	// DiscardStale drops responses whose originating file or query has been
	// superseded. When false, late responses overwrite current results.
	DiscardStale bool
}

// HistorySettings configures the exchange history.
type HistorySettings struct {
	// Enabled records every completed analysis and query.
	Enabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Service  ServiceSettings
	Breaker  BreakerSettings
	Workflow WorkflowSettings
	History  HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Service: ServiceSettings{
			BaseURL:        DefaultServiceURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			QueryRate:      DefaultQueryRate,
		},
		Breaker: BreakerSettings{
			Enabled:      true,
			MinRequests:  5,
			FailureRatio: 0.6,
			OpenSeconds:  30,
		},
		Workflow: WorkflowSettings{
			DiscardStale: true,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}
