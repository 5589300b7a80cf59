package trivia

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/foxseedlab/runebot/internal/ledger"
)

type fakeTimer struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	wasActive := !f.stopped
	f.stopped = true
	return wasActive
}

// fire runs the callback the way time.AfterFunc would, regardless of Stop,
// to model a timer that already started running.
func (f *fakeTimer) fire() {
	f.fn()
}

func (f *fakeTimer) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type timerRecorder struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (r *timerRecorder) afterFunc(_ time.Duration, fn func()) Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &fakeTimer{fn: fn}
	r.timers = append(r.timers, t)
	return t
}

func (r *timerRecorder) last() *fakeTimer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timers[len(r.timers)-1]
}

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager() (*Manager, *ledger.Store, *timerRecorder) {
	store := ledger.NewStore()
	timers := &timerRecorder{}
	m := NewManager(store, time.Minute)
	m.afterFunc = timers.afterFunc
	m.shuffle = func([]string) {}
	m.now = func() time.Time { return t0.Add(time.Minute) }
	return m, store, timers
}

func sampleQuestion() Question {
	return Question{
		Text:             "What is the capital of France?",
		Category:         "Geography",
		Difficulty:       "easy",
		CorrectAnswer:    "Paris",
		IncorrectAnswers: []string{"Lyon", "Marseille", "Nice"},
	}
}

func TestStart_SecondStartFailsWhileActive(t *testing.T) {
	m, _, _ := newTestManager()
	snap, err := m.Start("guild-1", sampleQuestion(), t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Options) != 4 || snap.Options[3] != "Paris" {
		t.Fatalf("unexpected options: %v", snap.Options)
	}
	if !snap.ExpiresAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("unexpected expiry: %v", snap.ExpiresAt)
	}

	_, err = m.Start("guild-1", sampleQuestion(), t0)
	if !errors.Is(err, ErrAlreadyActive) || !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected already active conflict, got %v", err)
	}
	if _, err := m.Start("guild-2", sampleQuestion(), t0); err != nil {
		t.Fatalf("expected other guild to start independently, got %v", err)
	}
}

func TestStart_RejectsQuestionWithoutAnswer(t *testing.T) {
	m, _, _ := newTestManager()
	q := sampleQuestion()
	q.CorrectAnswer = "  "
	if _, err := m.Start("guild-1", q, t0); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected invalid question, got %v", err)
	}
	if _, ok := m.Active("guild-1"); ok {
		t.Fatal("expected no session after rejected start")
	}
}

func TestSubmit_NoActiveSession(t *testing.T) {
	m, _, _ := newTestManager()
	_, err := m.Submit("guild-1", "user-1", "Paris", t0)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected no active session, got %v", err)
	}
}

func TestSubmit_CorrectAnswerResolvesSession(t *testing.T) {
	m, store, timers := newTestManager()
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := m.Submit("guild-1", "user-1", "  pARIS ", t0.Add(3*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Correct {
		t.Fatal("expected answer to be accepted")
	}
	if out.Elapsed != 3*time.Second {
		t.Fatalf("unexpected elapsed: %v", out.Elapsed)
	}
	// 10 base + 5 first blood + 25 quick draw
	if out.Award.Points != 40 || store.GetPoints("user-1") != 40 {
		t.Fatalf("unexpected award: %+v", out.Award)
	}
	if _, ok := m.Active("guild-1"); ok {
		t.Fatal("expected session to be closed")
	}
	if !timers.last().isStopped() {
		t.Fatal("expected timeout to be canceled on resolution")
	}
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("expected new start after resolution, got %v", err)
	}
}

func TestSubmit_SecondSubmissionFromSameUserRefused(t *testing.T) {
	m, store, _ := newTestManager()
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := m.Submit("guild-1", "user-1", "Lyon", t0.Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Correct {
		t.Fatal("expected wrong answer")
	}
	_, err = m.Submit("guild-1", "user-1", "Paris", t0.Add(2*time.Second))
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
	snap, ok := m.Active("guild-1")
	if !ok || snap.Participants != 1 {
		t.Fatalf("expected session to stay open with one participant, got %+v %v", snap, ok)
	}
	if p, _ := store.Profile("user-1"); p.TriviaWrong != 1 || p.TriviaCorrect != 0 {
		t.Fatalf("unexpected profile: %+v", p)
	}

	out, err = m.Submit("guild-1", "user-2", "Paris", t0.Add(4*time.Second))
	if err != nil || !out.Correct {
		t.Fatalf("expected other user to answer, got %+v %v", out, err)
	}
}

func TestSubmit_ConcurrentSubmissionsFromSameUserCountOnce(t *testing.T) {
	m, store, _ := newTestManager()
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Submit("guild-1", "user-1", "Lyon", t0.Add(time.Second)); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted submission, got %d", accepted)
	}
	if p, _ := store.Profile("user-1"); p.TriviaWrong != 1 {
		t.Fatalf("expected one wrong answer recorded, got %d", p.TriviaWrong)
	}
}

func TestExpire_NoEffectAfterResolution(t *testing.T) {
	m, _, timers := newTestManager()
	var expired []Expiry
	m.OnExpire(func(e Expiry) { expired = append(expired, e) })
	snap, err := m.Start("guild-1", sampleQuestion(), t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Submit("guild-1", "user-1", "Paris", t0.Add(time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	timers.last().fire()
	if _, ok := m.Expire("guild-1", snap.ID, t0.Add(time.Minute)); ok {
		t.Fatal("expected expire to be a no-op after resolution")
	}
	if len(expired) != 0 {
		t.Fatalf("expected no expiry callbacks, got %d", len(expired))
	}
}

func TestExpire_TimerClosesSessionAndReportsAnswer(t *testing.T) {
	m, _, timers := newTestManager()
	var expired []Expiry
	m.OnExpire(func(e Expiry) { expired = append(expired, e) })
	snap, err := m.Start("guild-1", sampleQuestion(), t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.AttachMessage("guild-1", snap.ID, MessageRef{ChannelID: "ch-1", MessageID: "msg-1"})

	timers.last().fire()
	if len(expired) != 1 {
		t.Fatalf("expected one expiry, got %d", len(expired))
	}
	if expired[0].CorrectAnswer != "Paris" || expired[0].Session.Message.MessageID != "msg-1" {
		t.Fatalf("unexpected expiry: %+v", expired[0])
	}
	if _, err := m.Submit("guild-1", "user-1", "Paris", t0.Add(30*time.Second)); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected no active session after expiry, got %v", err)
	}
	// a stale timer for the old session must not touch a new one
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Expire("guild-1", snap.ID, t0); ok {
		t.Fatal("expected stale session id to be ignored")
	}
	if _, ok := m.Active("guild-1"); !ok {
		t.Fatal("expected new session to survive stale expire")
	}
}

func TestSubmit_LateAnswerExpiresInsteadOfScoring(t *testing.T) {
	m, store, _ := newTestManager()
	var expired int
	m.OnExpire(func(Expiry) { expired++ })
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := m.Submit("guild-1", "user-1", "Paris", t0.Add(time.Minute))
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected late answer to be refused, got %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected the late answer to trigger expiry once, got %d", expired)
	}
	if store.GetPoints("user-1") != 0 {
		t.Fatal("expected no points for a late answer")
	}
}

func TestSubmit_RaceWithTimeoutYieldsOneOutcome(t *testing.T) {
	for i := 0; i < 50; i++ {
		m, _, timers := newTestManager()
		var mu sync.Mutex
		terminal := 0
		m.OnExpire(func(Expiry) {
			mu.Lock()
			terminal++
			mu.Unlock()
		})
		if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			timers.last().fire()
		}()
		go func() {
			defer wg.Done()
			if out, err := m.Submit("guild-1", "user-1", "Paris", t0.Add(59*time.Second)); err == nil && out.Correct {
				mu.Lock()
				terminal++
				mu.Unlock()
			}
		}()
		wg.Wait()
		if terminal != 1 {
			t.Fatalf("expected exactly one terminal outcome, got %d", terminal)
		}
	}
}

func TestSubmitForSession_IgnoresOtherSession(t *testing.T) {
	m, _, _ := newTestManager()
	if _, err := m.Start("guild-1", sampleQuestion(), t0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := m.SubmitForSession("guild-1", "old-session", "user-1", "Paris", t0.Add(time.Second))
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected stale session to be refused, got %v", err)
	}
}

func TestCancel_RemovesSessionAndStopsTimer(t *testing.T) {
	m, _, timers := newTestManager()
	snap, err := m.Start("guild-1", sampleQuestion(), t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Cancel("guild-1", snap.ID) {
		t.Fatal("expected cancel to succeed")
	}
	if !timers.last().isStopped() {
		t.Fatal("expected timer to be stopped")
	}
	if m.Cancel("guild-1", snap.ID) {
		t.Fatal("expected second cancel to be a no-op")
	}
}
