package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/google/uuid"
)

const (
	MinMinutes = 1
	MaxMinutes = 1440

	dispatchTimeout = 10 * time.Second
)

var (
	ErrOutOfRange = fmt.Errorf("%w: minutes must be between %d and %d", apperr.ErrValidation, MinMinutes, MaxMinutes)
	ErrEmptyText  = fmt.Errorf("%w: reminder text is empty", apperr.ErrValidation)
)

type Reminder struct {
	ID        string
	OwnerID   string
	ChannelID string
	Text      string
	DueAt     time.Time
	CreatedAt time.Time
}

// Dispatcher delivers a due reminder. It is called once per reminder; an
// error is logged and the reminder is not retried.
type Dispatcher interface {
	DispatchReminder(ctx context.Context, r Reminder) error
}

type Scheduler struct {
	dispatcher Dispatcher
	timeout    time.Duration

	mu      sync.Mutex
	pending map[string]Reminder
}

func NewScheduler(d Dispatcher) *Scheduler {
	return &Scheduler{
		dispatcher: d,
		timeout:    dispatchTimeout,
		pending:    make(map[string]Reminder),
	}
}

func (s *Scheduler) Schedule(ownerID, channelID, text string, minutes int, now time.Time) (Reminder, error) {
	if minutes < MinMinutes || minutes > MaxMinutes {
		return Reminder{}, ErrOutOfRange
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Reminder{}, ErrEmptyText
	}

	r := Reminder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ChannelID: channelID,
		Text:      text,
		DueAt:     now.Add(time.Duration(minutes) * time.Minute),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.pending[r.ID] = r
	s.mu.Unlock()

	slog.Debug("reminder scheduled", "reminder_id", r.ID, "user_id", ownerID, "due_at", r.DueAt)
	return r, nil
}

// Sweep removes every reminder due at now from the pending set and only then
// dispatches them, so a reminder is delivered at most once even when delivery
// fails or sweeps overlap.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) []Reminder {
	due := s.takeDue(now)
	for _, r := range due {
		dctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.dispatcher.DispatchReminder(dctx, r)
		cancel()
		if err != nil {
			level := slog.LevelWarn
			if errors.Is(err, context.Canceled) {
				level = slog.LevelInfo
			}
			slog.Log(ctx, level, "reminder delivery failed", "reminder_id", r.ID, "user_id", r.OwnerID, "channel_id", r.ChannelID, "error", err)
			continue
		}
		slog.Info("reminder delivered", "reminder_id", r.ID, "user_id", r.OwnerID, "channel_id", r.ChannelID)
	}
	return due
}

func (s *Scheduler) takeDue(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for id, r := range s.pending {
		if !r.DueAt.After(now) {
			due = append(due, r)
			delete(s.pending, id)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].DueAt.Equal(due[j].DueAt) {
			return due[i].CreatedAt.Before(due[j].CreatedAt)
		}
		return due[i].DueAt.Before(due[j].DueAt)
	})
	return due
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
