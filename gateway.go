package folio

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Gateway turns user text into assistant reply text using one backend.
//
// GenerateResponse never returns an error: backend failures are reported
// through Reply.Kind with a warning-marked Text. Implementations are not
// required to be safe for concurrent calls; callers serialize them per
// session.
type Gateway interface {
	GenerateResponse(ctx context.Context, userText string) Reply
}

// Backend selects a Gateway implementation.
type Backend string

const (
	BackendCloud Backend = "cloud"
	BackendLocal Backend = "local"
)

// ParseBackend returns the Backend named s. Matching ignores case and
// surrounding space.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendCloud, BackendLocal:
		return b, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownBackend)
}

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 30 * time.Second

// DefaultSystemPrompt is the assistant persona for the portfolio chat.
const DefaultSystemPrompt = `You are the assistant on a personal portfolio website. Answer visitors' questions about the site owner's work and interests in Technology, Machine Learning, Web Development and Data Science. Be friendly and concise, use Markdown when it helps, and say so when you do not know something.`

// GatewayConfig configures a Gateway. It is fixed once the gateway is built.
type GatewayConfig struct {
	Backend Backend
	// Endpoint is the base URL of the local server. Required for BackendLocal.
	Endpoint string
	// APIKey authenticates with the cloud service. Required for BackendCloud.
	APIKey        string
	Model         string
	SystemPrompt  string
	Temperature   float64
	Timeout       time.Duration
	HistoryWindow int
}

// Validate checks the configuration for the selected backend.
func (c GatewayConfig) Validate() error {
	switch c.Backend {
	case BackendCloud:
		if c.APIKey == "" {
			return fmt.Errorf("cloud backend requires an API key: %w", ErrValidation)
		}
	case BackendLocal:
		if strings.TrimSpace(c.Endpoint) == "" {
			return fmt.Errorf("local backend requires an endpoint: %w", ErrValidation)
		}
	default:
		return fmt.Errorf("backend %q: %w: %w", c.Backend, ErrUnknownBackend, ErrValidation)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1], got %g: %w", c.Temperature, ErrValidation)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s: %w", c.Timeout, ErrValidation)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("history window must be non-negative, got %d: %w", c.HistoryWindow, ErrValidation)
	}
	return nil
}

// WithDefaults returns a copy of c with an unset timeout and history window
// replaced by DefaultTimeout and DefaultHistoryWindow.
func (c GatewayConfig) WithDefaults() GatewayConfig {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HistoryWindow == 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	return c
}
