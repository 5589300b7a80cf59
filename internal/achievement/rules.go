// Package achievement holds the static achievement catalog and the pure
// rules that decide which achievements a counter change unlocks.
package achievement

import "time"

const (
	DedicatedPoints         = 500
	SocialButterflyCommands = 100
	TriviaMasterCorrect     = 10
	QuickDrawWithin         = 5 * time.Second
	PerfectionistRun        = 5
	EarlyBirdStreak         = 7
	ComedianJokes           = 50
)

type TriggerKind int

const (
	PointsChanged TriggerKind = iota
	ActivityRecorded
	TriviaAnsweredCorrectly
	DailyClaimed
	JokeRequested
)

// Trigger names the counter that just changed. Elapsed is only meaningful
// for TriviaAnsweredCorrectly.
type Trigger struct {
	Kind    TriggerKind
	Elapsed time.Duration
}

// Progress is the slice of a user record the rules read.
type Progress struct {
	Points        int
	CommandsUsed  int
	TriviaCorrect int
	CorrectRun    int
	Streak        int
	JokesHeard    int
}

// Evaluate returns the achievements the trigger qualifies for. It does not
// know what the user already owns; granting is idempotent on the ledger side.
func Evaluate(t Trigger, p Progress) []ID {
	var ids []ID
	switch t.Kind {
	case PointsChanged:
		if p.Points >= DedicatedPoints {
			ids = append(ids, Dedicated)
		}
	case ActivityRecorded:
		if p.CommandsUsed >= SocialButterflyCommands {
			ids = append(ids, SocialButterfly)
		}
	case TriviaAnsweredCorrectly:
		if p.TriviaCorrect >= 1 {
			ids = append(ids, FirstBlood)
		}
		if p.TriviaCorrect >= TriviaMasterCorrect {
			ids = append(ids, TriviaMaster)
		}
		if t.Elapsed < QuickDrawWithin {
			ids = append(ids, QuickDraw)
		}
		if p.CorrectRun >= PerfectionistRun {
			ids = append(ids, Perfectionist)
		}
	case DailyClaimed:
		if p.Streak >= EarlyBirdStreak {
			ids = append(ids, EarlyBird)
		}
	case JokeRequested:
		if p.JokesHeard >= ComedianJokes {
			ids = append(ids, Comedian)
		}
	}
	return ids
}
