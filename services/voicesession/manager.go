package voicesession

import (
	"context"
	"errors"
	"sync"
	"time"

	"dinevoice/models"
	"dinevoice/services/conversation"
	"dinevoice/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("voice session not found")
	ErrFinished     = errors.New("voice session already finished")
	ErrNotListening = errors.New("voice session is not waiting for a reply")
)

// StartOptions are supplied by the client that opens a session.
type StartOptions struct {
	Locale string `json:"locale"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// Factory builds the orchestrator for a new session around its speech bridge.
type Factory func(speech conversation.Speech, sessionID string, opts StartOptions) *conversation.Orchestrator

// Manager owns the server-hosted voice sessions.
type Manager struct {
	factory       Factory
	listenTimeout time.Duration
	turnWait      time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(factory Factory, listenTimeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factory:       factory,
		listenTimeout: listenTimeout,
		turnWait:      30 * time.Second,
		logger:        logger,
		now:           time.Now,
		sessions:      map[string]*Session{},
	}
}

// Start launches a conversation and returns its first turn.
func (m *Manager) Start(ctx context.Context, opts StartOptions) (*Turn, error) {
	id := uuid.New().String()
	s := newSession(id, m.listenTimeout, m.now)
	s.orch = m.factory(s, id, opts)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.updateGauge()

	go func() {
		defer cancel()
		res, err := s.orch.Run(runCtx, s.stop)
		if err != nil {
			m.logger.Warn("Voice session ended with error", zap.String("sessionId", id), zap.Error(err))
		}
		s.finish(res)
		m.updateGauge()
	}()

	m.logger.Info("Voice session started", zap.String("sessionId", id), zap.String("locale", opts.Locale))
	return s.waitTurn(ctx, 0, m.turnWait), nil
}

// Reply posts the guest's transcript and returns the next turn.
func (m *Manager) Reply(ctx context.Context, id, text string) (*Turn, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.reply(ctx, text, m.turnWait)
}

func (m *Manager) Snapshot(id string) (models.ConversationSnapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return models.ConversationSnapshot{}, err
	}
	return s.orch.Snapshot(), nil
}

// Stop raises the session's stop signal and returns its final turn.
func (m *Manager) Stop(ctx context.Context, id string) (*Turn, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.halt()
	return s.waitDone(ctx, m.turnWait), nil
}

// ReapIdle stops live sessions and forgets finished ones that have been
// idle longer than idle.
func (m *Manager) ReapIdle(idle time.Duration) int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		since, done := s.idleFor(now)
		if since < idle {
			continue
		}
		if done {
			delete(m.sessions, id)
		} else {
			s.halt()
		}
		n++
	}
	return n
}

// Shutdown stops every live session and cancels its in-flight work.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.abort()
	}
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) updateGauge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := 0
	for _, s := range m.sessions {
		if _, done := s.idleFor(m.now()); !done {
			live++
		}
	}
	utils.SetLiveSessions(live)
}
