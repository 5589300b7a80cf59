package trivia

import (
	"fmt"
	"time"

	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/foxseedlab/runebot/internal/ledger"
)

const (
	BasePoints     = 10
	DefaultTimeout = 60 * time.Second
)

var (
	ErrAlreadyActive   = fmt.Errorf("%w: trivia question already active", apperr.ErrConflict)
	ErrAlreadyAnswered = fmt.Errorf("%w: answer already submitted", apperr.ErrConflict)
	ErrNoActiveSession = fmt.Errorf("%w: no active trivia question", apperr.ErrNotFound)
	ErrInvalidQuestion = fmt.Errorf("%w: question has no correct answer", apperr.ErrValidation)
)

type Question struct {
	Text             string
	Category         string
	Difficulty       string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// MessageRef points at the rendered question so it can be edited later.
type MessageRef struct {
	ChannelID string
	MessageID string
}

func (r MessageRef) IsZero() bool {
	return r.ChannelID == "" || r.MessageID == ""
}

type Snapshot struct {
	ID           string
	GuildID      string
	Question     Question
	Options      []string
	Participants int
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Message      MessageRef
}

type Outcome struct {
	Correct bool
	Elapsed time.Duration
	Award   ledger.Award
	Session Snapshot
}

type Expiry struct {
	Session       Snapshot
	CorrectAnswer string
	ExpiredAt     time.Time
}

// Ledger is the part of the ledger the trivia manager writes to.
type Ledger interface {
	RecordTriviaCorrect(userID string, basePoints int, elapsed time.Duration) ledger.Award
	RecordTriviaWrong(userID string)
}

// Timer is the handle of an armed timeout.
type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
