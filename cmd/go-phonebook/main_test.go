package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// useTempCache points os.UserCacheDir at a temporary directory.
func useTempCache(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
}

// execute runs the root command against scripted input. Logs land in a
// temporary cache directory.
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	useTempCache(t)

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(out)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, config.Version)
	assert.NotContains(t, out, config.PromptInput, "Version must not start a session")
}

func TestSession_English(t *testing.T) {
	out, err := execute(t, "hello\nadd Bob 1234567890\nphone Bob\nexit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "How can I help you?")
	assert.Contains(t, out, "Contact Bob successfully added")
	assert.Contains(t, out, "1. 1234567890")
	assert.Contains(t, out, "Good bye!")
}

func TestSession_LangFlag(t *testing.T) {
	out, err := execute(t, "hello\n", "--lang", "fr")
	require.NoError(t, err)
	assert.Contains(t, out, "Comment puis-je vous aider ?")
}

func TestCancelWhileWaitingForInput(t *testing.T) {
	useTempCache(t)

	// A pipe nobody writes to blocks like an idle terminal.
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetIn(r)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "Cancellation is a graceful shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("Command did not return after cancellation")
	}
}

func TestRejectsPositionalArguments(t *testing.T) {
	_, err := execute(t, "", "extra")
	assert.Error(t, err)
}

func TestLogFileIsCreated(t *testing.T) {
	useTempCache(t)
	closer := setupLogging(false)
	require.NotNil(t, closer)
	t.Cleanup(func() { _ = closer.Close() })

	cache, err := os.UserCacheDir()
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(cache, config.AppID, config.LogFileName))
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())
}
