package voicesession

import (
	"context"
	"errors"
	"sync"
	"time"

	"dinevoice/models"
	"dinevoice/services/conversation"
)

var (
	errListenTimeout = errors.New("no reply before timeout")
	errHalted        = errors.New("session stopped")
)

// Turn is what an HTTP caller receives: everything spoken since the last
// turn, and whether the conversation now waits for a reply.
type Turn struct {
	SessionID     string                   `json:"sessionId"`
	Prompts       []string                 `json:"prompts"`
	State         models.ConversationState `json:"state"`
	AwaitingReply bool                     `json:"awaitingReply"`
	Done          bool                     `json:"done"`
	Result        *conversation.Result     `json:"result,omitempty"`
}

// Session is a server-hosted conversation. It implements conversation.Speech
// by queueing spoken prompts and waiting for replies posted over HTTP.
type Session struct {
	id            string
	orch          *conversation.Orchestrator
	stop          *conversation.StopToken
	cancel        context.CancelFunc
	halting       chan struct{}
	haltOnce      sync.Once
	replies       chan string
	listenTimeout time.Duration
	now           func() time.Time

	mu       sync.Mutex
	pending  []string
	awaiting bool
	done     bool
	result   *conversation.Result
	seq      uint64
	changed  chan struct{}
	lastSeen time.Time
}

func newSession(id string, listenTimeout time.Duration, now func() time.Time) *Session {
	return &Session{
		id:            id,
		stop:          conversation.NewStopToken(),
		cancel:        func() {},
		halting:       make(chan struct{}),
		replies:       make(chan string, 1),
		listenTimeout: listenTimeout,
		now:           now,
		changed:       make(chan struct{}),
		lastSeen:      now(),
	}
}

func (s *Session) Supported() bool { return true }

func (s *Session) Speak(_ context.Context, text, _ string) error {
	s.mu.Lock()
	s.pending = append(s.pending, text)
	s.mu.Unlock()
	return nil
}

// Listen publishes a turn and blocks until a reply is posted, the remote
// timeout passes, or the session is stopped or cancelled.
func (s *Session) Listen(ctx context.Context, _ string, timeout time.Duration) (string, error) {
	s.publish(func() { s.awaiting = true })

	if s.listenTimeout > 0 {
		timeout = s.listenTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-s.replies:
		return r, nil
	case <-timer.C:
		return s.endListen(errListenTimeout)
	case <-s.halting:
		return s.endListen(errHalted)
	case <-ctx.Done():
		return s.endListen(ctx.Err())
	}
}

// endListen closes the reply window. A reply accepted before the window
// closed still wins over err.
func (s *Session) endListen(err error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting = false
	select {
	case r := <-s.replies:
		return r, nil
	default:
		return "", err
	}
}

// publish applies fn and wakes every caller waiting for a turn.
func (s *Session) publish(fn func()) {
	s.mu.Lock()
	fn()
	s.seq++
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

func (s *Session) finish(res *conversation.Result) {
	s.publish(func() {
		s.done = true
		s.awaiting = false
		s.result = res
	})
}

func (s *Session) reply(ctx context.Context, text string, maxWait time.Duration) (*Turn, error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil, ErrFinished
	}
	if !s.awaiting {
		s.mu.Unlock()
		return nil, ErrNotListening
	}
	select {
	case s.replies <- text:
	default:
		s.mu.Unlock()
		return nil, ErrNotListening
	}
	s.awaiting = false
	s.lastSeen = s.now()
	after := s.seq
	s.mu.Unlock()

	return s.waitTurn(ctx, after, maxWait), nil
}

// waitTurn returns once the conversation has moved past seq after, or when
// ctx or maxWait expire, with whatever has been spoken so far.
func (s *Session) waitTurn(ctx context.Context, after uint64, maxWait time.Duration) *Turn {
	return s.waitUntil(ctx, maxWait, func() bool { return s.seq > after || s.done })
}

func (s *Session) waitDone(ctx context.Context, maxWait time.Duration) *Turn {
	return s.waitUntil(ctx, maxWait, func() bool { return s.done })
}

// waitUntil polls cond under s.mu each time the session publishes.
func (s *Session) waitUntil(ctx context.Context, maxWait time.Duration, cond func() bool) *Turn {
	timer := time.NewTimer(maxWait)
	defer timer.Stop()
	for {
		s.mu.Lock()
		if cond() {
			t := s.takeTurnLocked()
			s.mu.Unlock()
			return t
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return s.takeTurn()
		case <-timer.C:
			return s.takeTurn()
		}
	}
}

func (s *Session) takeTurn() *Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.takeTurnLocked()
}

func (s *Session) takeTurnLocked() *Turn {
	prompts := s.pending
	if prompts == nil {
		prompts = []string{}
	}
	s.pending = nil
	s.lastSeen = s.now()
	return &Turn{
		SessionID:     s.id,
		Prompts:       prompts,
		State:         s.orch.Snapshot().State,
		AwaitingReply: s.awaiting,
		Done:          s.done,
		Result:        s.result,
	}
}

// halt raises the stop signal and wakes a pending Listen. Work already in
// flight, such as a booking write, runs to completion.
func (s *Session) halt() {
	s.stop.Stop()
	s.haltOnce.Do(func() { close(s.halting) })
}

// abort halts and cancels the session context.
func (s *Session) abort() {
	s.halt()
	s.cancel()
}

func (s *Session) idleFor(now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen), s.done
}
