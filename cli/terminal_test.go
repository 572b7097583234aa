package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalSpeechReadsLines(t *testing.T) {
	var out bytes.Buffer
	s := newTerminalSpeech(strings.NewReader("Asha\ntwo\n"), &out)
	require.True(t, s.Supported())

	require.NoError(t, s.Speak(context.Background(), "What is your name?", "en"))
	got, err := s.Listen(context.Background(), "en", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got)

	got, err = s.Listen(context.Background(), "en", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = s.Listen(context.Background(), "en", time.Second)
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), "agent> What is your name?")
}

func TestTerminalSpeechTimeoutIsSilence(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := newTerminalSpeech(pr, io.Discard)

	got, err := s.Listen(context.Background(), "en", 20*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Listen(ctx, "en", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
