package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/folio"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Interface compliance check.
var _ folio.Gateway = (*Client)(nil)

// Client implements [folio.Gateway] against an OpenAI-compatible
// chat completions endpoint. It is not safe for concurrent GenerateResponse
// calls; a folio.Session serializes them.
type Client struct {
	url          string
	model        string
	systemPrompt string
	temperature  float64
	window       int
	timeout      time.Duration
	httpClient   *http.Client
	logger       zerolog.Logger
	history      *folio.Store
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for failed and completed calls.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a [Client] with an empty history. cfg.Model defaults to llama3.
func New(cfg folio.GatewayConfig, opts ...Option) (*Client, error) {
	if cfg.Backend == "" {
		cfg.Backend = folio.BackendLocal
	}
	if cfg.Backend != folio.BackendLocal {
		return nil, fmt.Errorf("local: backend %q: %w", cfg.Backend, folio.ErrValidation)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("local: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	c := &Client{
		url:          CompletionsURL(cfg.Endpoint),
		model:        model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		window:       cfg.HistoryWindow,
		timeout:      cfg.Timeout,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		logger:       zerolog.Nop(),
		history:      folio.NewStore(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With().Str("backend", string(folio.BackendLocal)).Str("model", model).Logger()
	return c, nil
}

// CompletionsURL returns the chat completions URL for endpoint. A bare
// host:port gets an http scheme, and a trailing slash, /v1 or full
// completions path is normalized.
func CompletionsURL(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	if !strings.Contains(e, "://") {
		e = "http://" + e
	}
	e = strings.TrimRight(e, "/")
	e = strings.TrimSuffix(e, completionsPath)
	e = strings.TrimSuffix(e, "/v1")
	return e + completionsPath
}

// URL returns the completions URL requests are sent to.
func (c *Client) URL() string { return c.url }

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// History returns a copy of the turns the client has recorded.
func (c *Client) History() []folio.Turn { return c.history.Turns() }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// GenerateResponse records userText, sends the recent history to the server
// and records the completion. On any failure the user turn stays in the
// history and no assistant turn is added.
func (c *Client) GenerateResponse(ctx context.Context, userText string) folio.Reply {
	c.history.Append(folio.RoleUser, userText)

	start := time.Now()
	text, ok, err := c.complete(ctx)
	latency := time.Since(start)
	switch {
	case err != nil:
		reply := folio.ErrorReply(err)
		c.logger.Warn().Err(err).
			Int("status", statusOf(err)).
			Stringer("kind", reply.Kind).
			Dur("latency", latency).
			Msg("local request failed")
		return reply
	case !ok:
		c.logger.Warn().Dur("latency", latency).Msg("local response had no completion")
		return folio.FallbackReply()
	}

	c.logger.Debug().Dur("latency", latency).Msg("local response")
	c.history.Append(folio.RoleAssistant, text)
	return folio.Reply{Text: text, Kind: folio.ReplyOK}
}

func (c *Client) buildRequest() chatRequest {
	req := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
	}
	if c.systemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: c.systemPrompt})
	}
	for t := range c.history.Recent(c.window) {
		req.Messages = append(req.Messages, chatMessage{Role: t.Role.String(), Content: t.Text})
	}
	return req
}

// complete performs one completion request. ok is false when the server
// answered successfully without a usable completion.
func (c *Client) complete(ctx context.Context) (text string, ok bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(c.buildRequest())
	if err != nil {
		return "", false, fmt.Errorf("local: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("local: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, &folio.BackendError{Kind: folio.ErrorKindTransport, Err: fmt.Errorf("local: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", false, &folio.BackendError{Kind: folio.ErrorKindTransport, Err: fmt.Errorf("local: read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, &folio.BackendError{
			Kind:       folio.ErrorKindRejected,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("local: status %d: %s", resp.StatusCode, snippet(respBody)),
		}
	}

	if !gjson.ValidBytes(respBody) {
		return "", false, nil
	}
	content := gjson.GetBytes(respBody, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", false, nil
	}
	text = strings.TrimSpace(content.Str)
	return text, text != "", nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxSnippetBytes {
		return s
	}
	s = s[:maxSnippetBytes]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func statusOf(err error) int {
	var be *folio.BackendError
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}
