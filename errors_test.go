package folio_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
)

func TestErrorReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantKind  folio.ReplyKind
		wantHints string
	}{
		{
			name:     "plain error is transport",
			err:      errors.New("connection refused"),
			wantKind: folio.ReplyTransportError,
		},
		{
			name:     "deadline is transport",
			err:      fmt.Errorf("local: %w", context.DeadlineExceeded),
			wantKind: folio.ReplyTransportError,
		},
		{
			name:     "server error is rejected",
			err:      &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: 500, Err: errors.New("status 500")},
			wantKind: folio.ReplyRejected,
		},
		{
			name:      "not found gets hints",
			err:       &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: 404, Err: errors.New("status 404")},
			wantKind:  folio.ReplyRejected,
			wantHints: folio.NotFoundHints,
		},
		{
			name:      "unauthorized gets auth hints",
			err:       &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: 401, Err: errors.New("status 401")},
			wantKind:  folio.ReplyRejected,
			wantHints: folio.AuthHints,
		},
		{
			name:      "forbidden gets auth hints",
			err:       fmt.Errorf("wrapped: %w", &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: 403, Err: errors.New("denied")}),
			wantKind:  folio.ReplyRejected,
			wantHints: folio.AuthHints,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reply := folio.ErrorReply(tt.err)
			assert.Equal(t, tt.wantKind, reply.Kind)
			assert.True(t, reply.Failed())
			assert.ErrorIs(t, reply.Err, tt.err)
			assert.True(t, strings.HasPrefix(reply.Text, folio.WarningMarker+" AI Service Error: "))
			assert.Contains(t, reply.Text, tt.err.Error())
			if tt.wantHints != "" {
				assert.True(t, strings.HasSuffix(reply.Text, tt.wantHints))
			} else {
				assert.NotContains(t, reply.Text, "Please check")
			}
			assert.True(t, reply.Turn().Warning())
		})
	}
}

func TestErrorReply_Nil(t *testing.T) {
	t.Parallel()
	reply := folio.ErrorReply(nil)
	assert.Equal(t, folio.ReplyTransportError, reply.Kind)
	assert.Contains(t, reply.Text, folio.WarningMarker)
}

func TestErrorReply_DoesNotMutateCause(t *testing.T) {
	t.Parallel()
	be := &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: 504, Err: context.DeadlineExceeded}
	reply := folio.ErrorReply(be)
	assert.Equal(t, folio.ReplyTransportError, reply.Kind)
	assert.Equal(t, folio.ErrorKindRejected, be.Kind)
}

func TestBackendError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	transport := &folio.BackendError{Kind: folio.ErrorKindTransport, Err: cause}
	assert.ErrorIs(t, transport, cause)
	assert.True(t, transport.Retryable())
	assert.False(t, transport.NotFound())
	assert.Equal(t, "boom", transport.Error())

	tests := []struct {
		status    int
		retryable bool
		notFound  bool
	}{
		{status: 400},
		{status: 404, notFound: true},
		{status: 429, retryable: true},
		{status: 500, retryable: true},
		{status: 503, retryable: true},
	}
	for _, tt := range tests {
		be := &folio.BackendError{Kind: folio.ErrorKindRejected, StatusCode: tt.status, Err: cause}
		assert.Equal(t, tt.retryable, be.Retryable(), "status %d", tt.status)
		assert.Equal(t, tt.notFound, be.NotFound(), "status %d", tt.status)
	}

	assert.Equal(t, "rejected error", (&folio.BackendError{Kind: folio.ErrorKindRejected}).Error())
}

func TestReply(t *testing.T) {
	t.Parallel()

	fb := folio.FallbackReply()
	assert.Equal(t, folio.FallbackText, fb.Text)
	assert.Equal(t, folio.ReplyFallback, fb.Kind)
	assert.False(t, fb.Failed())
	assert.NoError(t, fb.Err)

	ok := folio.Reply{Text: "Hello", Kind: folio.ReplyOK}
	assert.Equal(t, folio.AssistantTurn("Hello"), ok.Turn())
	assert.Equal(t, "ok", ok.Kind.String())
	assert.Equal(t, "transport_error", folio.ReplyTransportError.String())
	assert.Equal(t, "rejected", folio.ReplyRejected.String())
	assert.Equal(t, "fallback", folio.ReplyFallback.String())
}
