package voicesession

import (
	"context"
	"sync"
	"testing"
	"time"

	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/models"
	"dinevoice/services/booking"
	"dinevoice/services/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sunnyWeather struct{}

func (sunnyWeather) GetForecast(context.Context, string, float64, float64) (*models.WeatherSuggestion, error) {
	return &models.WeatherSuggestion{Recommendation: models.SeatingOutdoor, ConfidencePresent: true}, nil
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T) (*Manager, *clock) {
	t.Helper()
	store := reservationRepo.NewMemoryReservationRepo()
	neg := booking.NewNegotiator(store, booking.Hours{Open: "12:00", Close: "22:00", DurationMinutes: 30}, "", nil)
	clk := &clock{t: time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)}

	m := NewManager(func(speech conversation.Speech, id string, opts StartOptions) *conversation.Orchestrator {
		return conversation.NewOrchestrator(speech, neg, nil,
			conversation.WithSessionID(id),
			conversation.WithLocale(opts.Locale),
			conversation.WithClock(clk.now),
			conversation.WithWeather(sunnyWeather{}),
			conversation.WithContact(opts.Phone, opts.Email))
	}, 5*time.Second, nil)
	m.now = clk.now
	m.turnWait = 5 * time.Second
	t.Cleanup(m.Shutdown)
	return m, clk
}

func TestSessionFullConversation(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	turn, err := m.Start(ctx, StartOptions{Locale: "en-IN", Phone: "+15550001111"})
	require.NoError(t, err)
	require.True(t, turn.AwaitingReply)
	require.Len(t, turn.Prompts, 2)
	assert.Contains(t, turn.Prompts[1], "your name")

	id := turn.SessionID
	for _, reply := range []string{"Asha", "two", "tomorrow", "yes", "7 pm", "no", "no"} {
		turn, err = m.Reply(ctx, id, reply)
		require.NoError(t, err, reply)
		require.True(t, turn.AwaitingReply, reply)
		require.NotEmpty(t, turn.Prompts, reply)
	}
	assert.Contains(t, turn.Prompts[0], "Shall I book it?")

	turn, err = m.Reply(ctx, id, "yes")
	require.NoError(t, err)
	assert.True(t, turn.Done)
	require.NotNil(t, turn.Result)
	assert.Equal(t, models.StateConfirmed, turn.Result.State)
	assert.Equal(t, "+15550001111", turn.Result.Booking.ContactPhone)
	assert.Equal(t, models.SeatingOutdoor, turn.Result.Booking.SeatingPreference)

	_, err = m.Reply(ctx, id, "hello?")
	assert.ErrorIs(t, err, ErrFinished)

	snap, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, snap.State)
}

func TestSessionStop(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	turn, err := m.Start(ctx, StartOptions{Locale: "en-IN"})
	require.NoError(t, err)

	turn, err = m.Stop(ctx, turn.SessionID)
	require.NoError(t, err)
	assert.True(t, turn.Done)
	assert.Equal(t, models.StateStopped, turn.Result.State)
	assert.Contains(t, turn.Prompts, "Stopping here. Nothing was booked.")
}

// slowRepo holds CreateBooking open until release is closed.
type slowRepo struct {
	reservationRepo.ReservationRepository
	entered chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (r *slowRepo) CreateBooking(ctx context.Context, draft models.BookingDraft) (*models.ConfirmedBooking, error) {
	close(r.entered)
	<-r.release
	r.ctxErr <- ctx.Err()
	return r.ReservationRepository.CreateBooking(ctx, draft)
}

func TestStopDoesNotInterruptBookingWrite(t *testing.T) {
	repo := &slowRepo{
		ReservationRepository: reservationRepo.NewMemoryReservationRepo(),
		entered:               make(chan struct{}),
		release:               make(chan struct{}),
		ctxErr:                make(chan error, 1),
	}
	neg := booking.NewNegotiator(repo, booking.Hours{Open: "12:00", Close: "22:00", DurationMinutes: 30}, "", nil)
	clk := &clock{t: time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)}
	m := NewManager(func(speech conversation.Speech, id string, opts StartOptions) *conversation.Orchestrator {
		return conversation.NewOrchestrator(speech, neg, nil,
			conversation.WithSessionID(id),
			conversation.WithLocale(opts.Locale),
			conversation.WithClock(clk.now),
			conversation.WithWeather(sunnyWeather{}))
	}, 5*time.Second, nil)
	m.now = clk.now
	m.turnWait = 5 * time.Second
	t.Cleanup(m.Shutdown)
	ctx := context.Background()

	turn, err := m.Start(ctx, StartOptions{Locale: "en-IN"})
	require.NoError(t, err)
	id := turn.SessionID
	for _, reply := range []string{"Asha", "two", "tomorrow", "yes", "7 pm", "no", "no"} {
		_, err = m.Reply(ctx, id, reply)
		require.NoError(t, err, reply)
	}

	go func() { _, _ = m.Reply(ctx, id, "yes") }()
	select {
	case <-repo.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("booking write never started")
	}

	stopped := make(chan *Turn, 1)
	go func() {
		turn, _ := m.Stop(ctx, id)
		stopped <- turn
	}()
	require.Eventually(t, func() bool {
		s, err := m.get(id)
		return err == nil && s.stop.Stopped()
	}, 2*time.Second, 5*time.Millisecond)
	close(repo.release)

	assert.NoError(t, <-repo.ctxErr, "in-flight write keeps its context")
	turn = <-stopped
	require.True(t, turn.Done)
	assert.Equal(t, models.StateConfirmed, turn.Result.State)
	require.NotNil(t, turn.Result.Booking)
	assert.Equal(t, "19:00", turn.Result.Booking.BookingTime)
}

func TestListenKeepsReplyRacingTimeout(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := newSession("s", time.Nanosecond, time.Now)
		s.replies <- "two"
		got, err := s.Listen(context.Background(), "en", time.Second)
		require.NoError(t, err)
		assert.Equal(t, "two", got)
	}
}

func TestListenWakesOnStop(t *testing.T) {
	s := newSession("s", 5*time.Second, time.Now)
	s.halt()
	got, err := s.Listen(context.Background(), "en", time.Second)
	assert.ErrorIs(t, err, errHalted)
	assert.Empty(t, got)
	assert.True(t, s.stop.Stopped())
}

func TestSessionUnknownID(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Reply(context.Background(), "missing", "hi")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Snapshot("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReapIdle(t *testing.T) {
	m, clk := newTestManager(t)
	ctx := context.Background()

	turn, err := m.Start(ctx, StartOptions{Locale: "en-IN"})
	require.NoError(t, err)
	assert.Zero(t, m.ReapIdle(10*time.Minute))

	clk.advance(11 * time.Minute)
	assert.Equal(t, 1, m.ReapIdle(10*time.Minute), "live session is stopped")

	require.Eventually(t, func() bool {
		snap, err := m.Snapshot(turn.SessionID)
		return err == nil && snap.State == models.StateStopped
	}, 2*time.Second, 10*time.Millisecond)

	clk.advance(11 * time.Minute)
	assert.Equal(t, 1, m.ReapIdle(10*time.Minute), "finished session is forgotten")
	_, err = m.Snapshot(turn.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}
