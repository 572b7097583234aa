package conversation

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrSpeechUnsupported = errors.New("speech is not supported in this environment")

// Speech is the voice capability a conversation runs on. Speak must return
// only after playback has finished so that capture never overlaps it.
// Listen returns an empty transcript when nothing was heard before timeout.
type Speech interface {
	Supported() bool
	Speak(ctx context.Context, text, lang string) error
	Listen(ctx context.Context, lang string, timeout time.Duration) (string, error)
}

// StopToken is a session-scoped stop signal. It is polled between steps and
// never interrupts a capture already in progress.
type StopToken struct {
	stopped atomic.Bool
}

func NewStopToken() *StopToken {
	return &StopToken{}
}

func (t *StopToken) Stop() {
	t.stopped.Store(true)
}

func (t *StopToken) Stopped() bool {
	return t != nil && t.stopped.Load()
}
