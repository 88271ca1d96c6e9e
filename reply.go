package folio

import "fmt"

const (
	// WarningMarker prefixes every reply that reports a failure.
	WarningMarker = "⚠️"

	// FallbackText is the reply when a backend answers successfully but
	// without a usable completion.
	FallbackText = "I could not generate a response."

	// NotFoundHints follows the diagnostic when a model or endpoint is not found.
	NotFoundHints = "\n\nPlease check:\n1. Model availability\n2. API endpoint configuration\n3. Account permissions"

	// AuthHints follows the diagnostic when the backend rejects credentials.
	AuthHints = "\n\nPlease check that your API key is set and valid."
)

// ReplyKind classifies a Reply.
type ReplyKind int

const (
	ReplyOK ReplyKind = iota
	ReplyFallback
	ReplyTransportError
	ReplyRejected
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyOK:
		return "ok"
	case ReplyFallback:
		return "fallback"
	case ReplyTransportError:
		return "transport_error"
	case ReplyRejected:
		return "rejected"
	}
	return fmt.Sprintf("ReplyKind(%d)", int(k))
}

// Reply is the outcome of one GenerateResponse call. Text is always what
// the user sees, including for failures. Err holds the underlying cause for
// failed replies.
type Reply struct {
	Text string
	Kind ReplyKind
	Err  error
}

// Failed reports whether the reply describes a backend error.
func (r Reply) Failed() bool {
	return r.Kind == ReplyTransportError || r.Kind == ReplyRejected
}

// Turn returns the assistant turn displayed for r.
func (r Reply) Turn() Turn {
	return AssistantTurn(r.Text)
}

// FallbackReply returns the reply for a successful response with no usable
// completion.
func FallbackReply() Reply {
	return Reply{Text: FallbackText, Kind: ReplyFallback}
}
