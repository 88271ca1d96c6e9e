package folio

import (
	"strings"
	"time"
)

// Turn is one message in a conversation. Turns are values: once appended to
// a Store they are never modified.
type Turn struct {
	Role Role
	Text string
	// Time is stamped by Store.Append. It is informational only; ordering
	// is the order of appends.
	Time time.Time
}

// UserTurn returns an unstamped user Turn.
func UserTurn(text string) Turn { return Turn{Role: RoleUser, Text: text} }

// AssistantTurn returns an unstamped assistant Turn.
func AssistantTurn(text string) Turn { return Turn{Role: RoleAssistant, Text: text} }

// Warning reports whether t is an assistant turn carrying a backend
// diagnostic rather than a model completion.
func (t Turn) Warning() bool {
	return t.Role == RoleAssistant && strings.HasPrefix(t.Text, WarningMarker)
}
