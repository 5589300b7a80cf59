// Package trivia runs at most one timed trivia question per guild. Each user
// gets exactly one submission per question; the first correct submission or
// the timeout ends it, whichever acquires the lock first.
package trivia

import (
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

type Manager struct {
	ledger    Ledger
	timeout   time.Duration
	afterFunc AfterFunc
	shuffle   func([]string)
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*openSession
	onExpire func(Expiry)
}

type openSession struct {
	id            string
	guildID       string
	question      Question
	options       []string
	correctAnswer string
	participants  map[string]struct{}
	createdAt     time.Time
	expiresAt     time.Time
	message       MessageRef
	timer         Timer
}

func NewManager(l Ledger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		ledger:    l,
		timeout:   timeout,
		afterFunc: realAfterFunc,
		shuffle: func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
		now:      time.Now,
		sessions: make(map[string]*openSession),
	}
}

// OnExpire registers the callback run after a question times out. It runs
// outside the manager lock.
func (m *Manager) OnExpire(fn func(Expiry)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

func (m *Manager) Start(guildID string, q Question, now time.Time) (Snapshot, error) {
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return Snapshot{}, ErrInvalidQuestion
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[guildID]; exists {
		return Snapshot{}, ErrAlreadyActive
	}

	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	options = append(options, q.IncorrectAnswers...)
	options = append(options, q.CorrectAnswer)
	m.shuffle(options)

	s := &openSession{
		id:            uuid.NewString(),
		guildID:       guildID,
		question:      q,
		options:       options,
		correctAnswer: normalizeAnswer(q.CorrectAnswer),
		participants:  make(map[string]struct{}),
		createdAt:     now,
		expiresAt:     now.Add(m.timeout),
	}
	sessionID := s.id
	s.timer = m.afterFunc(m.timeout, func() {
		m.Expire(guildID, sessionID, m.now())
	})
	m.sessions[guildID] = s
	slog.Info("trivia session opened", "guild_id", guildID, "session_id", s.id, "timeout", m.timeout.String())
	return s.snapshot(), nil
}

func (m *Manager) AttachMessage(guildID, sessionID string, ref MessageRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[guildID]
	if !ok || s.id != sessionID {
		return false
	}
	s.message = ref
	return true
}

// Cancel drops an open session without an outcome, e.g. when the question
// could not be posted.
func (m *Manager) Cancel(guildID, sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[guildID]
	if !ok || s.id != sessionID {
		return false
	}
	s.timer.Stop()
	delete(m.sessions, guildID)
	slog.Info("trivia session canceled", "guild_id", guildID, "session_id", sessionID)
	return true
}

func (m *Manager) Active(guildID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[guildID]
	if !ok {
		return Snapshot{}, false
	}
	return s.snapshot(), true
}

// Submit scores an answer against whichever question is open in the guild.
func (m *Manager) Submit(guildID, userID, answer string, now time.Time) (Outcome, error) {
	return m.SubmitForSession(guildID, "", userID, answer, now)
}

// SubmitForSession scores an answer for a specific question. An empty
// sessionID matches the open question.
func (m *Manager) SubmitForSession(guildID, sessionID, userID, answer string, now time.Time) (Outcome, error) {
	m.mu.Lock()
	s, ok := m.sessions[guildID]
	if !ok || (sessionID != "" && s.id != sessionID) {
		m.mu.Unlock()
		return Outcome{}, ErrNoActiveSession
	}
	if !now.Before(s.expiresAt) {
		// The timer goroutine has not run yet; expire here so the late
		// answer cannot produce a second terminal outcome.
		expiry, handler := m.expireLocked(s, now)
		m.mu.Unlock()
		if handler != nil {
			handler(expiry)
		}
		return Outcome{}, ErrNoActiveSession
	}
	if _, answered := s.participants[userID]; answered {
		m.mu.Unlock()
		return Outcome{}, ErrAlreadyAnswered
	}
	s.participants[userID] = struct{}{}

	elapsed := max(now.Sub(s.createdAt), 0)
	if normalizeAnswer(answer) != s.correctAnswer {
		m.ledger.RecordTriviaWrong(userID)
		out := Outcome{Correct: false, Elapsed: elapsed, Session: s.snapshot()}
		m.mu.Unlock()
		slog.Info("trivia answer rejected", "guild_id", guildID, "session_id", s.id, "user_id", userID)
		return out, nil
	}

	s.timer.Stop()
	delete(m.sessions, guildID)
	award := m.ledger.RecordTriviaCorrect(userID, BasePoints, elapsed)
	out := Outcome{Correct: true, Elapsed: elapsed, Award: award, Session: s.snapshot()}
	m.mu.Unlock()
	slog.Info("trivia session resolved", "guild_id", guildID, "session_id", s.id, "user_id", userID, "elapsed", elapsed.String(), "points", award.Points)
	return out, nil
}

// Expire ends the session if it is still the open one. The boolean is false
// when it already resolved, expired or was replaced.
func (m *Manager) Expire(guildID, sessionID string, now time.Time) (Expiry, bool) {
	m.mu.Lock()
	s, ok := m.sessions[guildID]
	if !ok || s.id != sessionID {
		m.mu.Unlock()
		return Expiry{}, false
	}
	expiry, handler := m.expireLocked(s, now)
	m.mu.Unlock()
	if handler != nil {
		handler(expiry)
	}
	return expiry, true
}

func (m *Manager) expireLocked(s *openSession, now time.Time) (Expiry, func(Expiry)) {
	s.timer.Stop()
	delete(m.sessions, s.guildID)
	slog.Info("trivia session expired", "guild_id", s.guildID, "session_id", s.id, "participants", len(s.participants))
	return Expiry{
		Session:       s.snapshot(),
		CorrectAnswer: s.question.CorrectAnswer,
		ExpiredAt:     now,
	}, m.onExpire
}

func (s *openSession) snapshot() Snapshot {
	return Snapshot{
		ID:           s.id,
		GuildID:      s.guildID,
		Question:     s.question,
		Options:      slices.Clone(s.options),
		Participants: len(s.participants),
		CreatedAt:    s.createdAt,
		ExpiresAt:    s.expiresAt,
		Message:      s.message,
	}
}

func normalizeAnswer(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
