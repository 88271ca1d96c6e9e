package gemini

import (
	"time"

	"github.com/rs/zerolog"
)

// Sender exposes the chat dependency for tests.
type Sender = sender

// NewWithSender returns a Client that sends through s.
func NewWithSender(s Sender, timeout time.Duration) *Client {
	return &Client{chat: s, model: defaultModel, timeout: timeout, logger: zerolog.Nop()}
}

// Classify exposes classify for tests.
var Classify = classify
