// Package local implements [folio.Gateway] for a locally hosted model server
// that speaks the OpenAI chat completions protocol, such as Ollama or
// llama.cpp.
//
// Unlike the cloud backend, the server keeps no conversation state, so the
// client holds a rolling history and sends the most recent turns with every
// request.
package local

const (
	defaultModel    = "llama3"
	DefaultEndpoint = "localhost:11434"

	completionsPath = "/v1/chat/completions"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
	// maxSnippetBytes caps the body excerpt included in error replies.
	maxSnippetBytes = 512
)
