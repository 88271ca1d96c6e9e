package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/folio"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ folio.Gateway = (*Client)(nil)

// sender is the part of *genai.Chat the Client uses.
type sender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client implements [folio.Gateway] over one Gemini chat.
type Client struct {
	chat    sender
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

type options struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// Option configures a [Client].
type Option func(*options)

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithBaseURL overrides the Gemini API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithLogger sets the logger for failed and completed calls.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a [Client] with a fresh chat. cfg.Model defaults to
// gemini-2.0-flash.
func New(ctx context.Context, cfg folio.GatewayConfig, opts ...Option) (*Client, error) {
	if cfg.Backend == "" {
		cfg.Backend = folio.BackendCloud
	}
	if cfg.Backend != folio.BackendCloud {
		return nil, fmt.Errorf("gemini: backend %q: %w", cfg.Backend, folio.ErrValidation)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  o.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: o.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	chat, err := gc.Chats.Create(ctx, model, buildConfig(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	return &Client{
		chat:    chat,
		model:   model,
		timeout: cfg.Timeout,
		logger:  o.logger.With().Str("backend", string(folio.BackendCloud)).Str("model", model).Logger(),
	}, nil
}

func buildConfig(cfg folio.GatewayConfig) *genai.GenerateContentConfig {
	temp := float32(cfg.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if cfg.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemPrompt}},
		}
	}
	return config
}

// Model returns the model ID the chat was created with.
func (c *Client) Model() string { return c.model }

// GenerateResponse sends userText as the next chat message. The chat only
// records the exchange when the call succeeds.
func (c *Client) GenerateResponse(ctx context.Context, userText string) folio.Reply {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: userText})
	if err != nil {
		be := classify(err)
		c.logger.Warn().Err(err).
			Int("status", be.StatusCode).
			Stringer("kind", be.Kind).
			Dur("latency", time.Since(start)).
			Msg("gemini request failed")
		return folio.ErrorReply(be)
	}
	c.logger.Debug().Dur("latency", time.Since(start)).Msg("gemini response")
	return folio.Reply{Text: resp.Text(), Kind: folio.ReplyOK}
}

// classify maps an SDK error to a [folio.BackendError]. Errors without an
// API status that still name a 404 are treated as not found.
func classify(err error) *folio.BackendError {
	be := &folio.BackendError{Kind: folio.ErrorKindTransport, Err: fmt.Errorf("gemini: %w", err)}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		be.Kind, be.StatusCode = folio.ErrorKindRejected, apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		be.Kind, be.StatusCode = folio.ErrorKindRejected, apiErrPtr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return be
	}
	if be.StatusCode == 0 {
		msg := err.Error()
		if strings.Contains(msg, "404") || strings.Contains(msg, "NOT_FOUND") {
			be.Kind, be.StatusCode = folio.ErrorKindRejected, http.StatusNotFound
		}
	}
	return be
}
