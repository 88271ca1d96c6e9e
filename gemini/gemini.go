// Package gemini implements [folio.Gateway] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK chat API. The SDK chat handle
// holds the conversation, so each call sends only the new user text.
package gemini

const defaultModel = "gemini-2.0-flash"
