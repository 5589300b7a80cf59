package journal

import (
	"context"
	"time"
)

type EventKind string

const (
	EventAchievementGranted EventKind = "achievement_granted"
	EventTriviaResolved     EventKind = "trivia_resolved"
	EventTriviaExpired      EventKind = "trivia_expired"
	EventDailyClaimed       EventKind = "daily_claimed"
	EventReminderDelivered  EventKind = "reminder_delivered"
)

// Event is one entry of the audit trail. SubjectID names what the event is
// about: a trivia session, reminder or achievement id.
type Event struct {
	Kind       EventKind
	GuildID    string
	UserID     string
	SubjectID  string
	Points     int
	Detail     string
	OccurredAt time.Time
}

// Recorder appends events. The trail is never read back by the bot.
type Recorder interface {
	Record(ctx context.Context, e Event) error
	Close()
}
