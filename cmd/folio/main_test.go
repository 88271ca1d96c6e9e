package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears variables that would leak the developer's environment
// into a test.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "FOLIO_BACKEND", "FOLIO_MODEL", "FOLIO_GEMINI_API_KEY",
		"FOLIO_LOCAL_ENDPOINT", "FOLIO_SERVER_ADDR", "FOLIO_LOG_LEVEL", "FOLIO_LOG_FORMAT",
		"FOLIO_ASSETS_DIR",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "folio version dev\n", out.String())
}

func TestChatCmd_InvalidBackend(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "backend: openai\n")

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"chat", "--config", path})

	err := root.Execute()
	assert.ErrorIs(t, err, folio.ErrUnknownBackend)
}

func TestChatCmd_MissingConfigFile(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"chat", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Error(t, root.Execute())
}

func TestChatCmd_FlagOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "backend: local\nlocal:\n  endpoint: \"\"\n")

	// The file's local backend has no endpoint; the flag switches to a
	// cloud backend without a key, so validation fails on the key instead.
	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"chat", "--config", path, "--backend", "cloud"})

	err := root.Execute()
	require.ErrorIs(t, err, folio.ErrValidation)
	assert.Contains(t, err.Error(), "API key")
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "backend: local\nassets_dir: "+t.TempDir()+"\n")

	root := newRootCmd()
	root.SetErr(io.Discard)
	root.SetArgs([]string{"serve", "--config", path, "--addr", "127.0.0.1:0", "--log-level", "debug"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, root.ExecuteContext(ctx))
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "log:\n  format: xml\n")

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"chat", "--config", path})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be json or console")
}
