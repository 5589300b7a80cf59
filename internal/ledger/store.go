// Package ledger keeps points, usage counters, achievements and daily
// streaks for every user the bot has seen. State lives in memory only.
package ledger

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/foxseedlab/runebot/internal/achievement"
	"github.com/foxseedlab/runebot/internal/daily"
)

// Award reports what a single mutation credited: every point added
// (including achievement bonuses), the newly granted achievements and the
// balance afterwards.
type Award struct {
	Points  int
	Granted []achievement.Definition
	Total   int
}

type Profile struct {
	UserID        string
	Points        int
	CommandsUsed  int
	LastSeen      time.Time
	TriviaCorrect int
	TriviaWrong   int
	CorrectRun    int
	JokesHeard    int
	Achievements  []achievement.ID
	Streak        daily.Streak
}

// Accuracy is the share of correct trivia answers in percent.
func (p Profile) Accuracy() (float64, bool) {
	answered := p.TriviaCorrect + p.TriviaWrong
	if answered == 0 {
		return 0, false
	}
	return float64(p.TriviaCorrect) / float64(answered) * 100, true
}

type Standing struct {
	UserID string
	Points int
}

type record struct {
	points        int
	commandsUsed  int
	lastSeen      time.Time
	triviaCorrect int
	triviaWrong   int
	correctRun    int
	jokesHeard    int
	achievements  map[achievement.ID]struct{}
	grantOrder    []achievement.ID
	streak        daily.Streak
	hasPoints     bool
}

type Store struct {
	now func() time.Time

	mu    sync.Mutex
	users map[string]*record
}

func NewStore() *Store {
	return &Store{
		now:   time.Now,
		users: make(map[string]*record),
	}
}

func (s *Store) recordLocked(userID string) *record {
	r, ok := s.users[userID]
	if !ok {
		r = &record{achievements: make(map[achievement.ID]struct{})}
		s.users[userID] = r
	}
	return r
}

func (r *record) progress() achievement.Progress {
	return achievement.Progress{
		Points:        r.points,
		CommandsUsed:  r.commandsUsed,
		TriviaCorrect: r.triviaCorrect,
		CorrectRun:    r.correctRun,
		Streak:        r.streak.Count,
		JokesHeard:    r.jokesHeard,
	}
}

// credit adds points and runs the point-threshold rules. Achievement bonuses
// come back through here, so a bonus can unlock "dedicated".
func (s *Store) credit(r *record, amount int, award *Award) {
	if amount <= 0 {
		return
	}
	r.points += amount
	r.hasPoints = true
	award.Points += amount
	s.evaluate(r, achievement.Trigger{Kind: achievement.PointsChanged}, award)
}

func (s *Store) evaluate(r *record, t achievement.Trigger, award *Award) {
	for _, id := range achievement.Evaluate(t, r.progress()) {
		s.grant(r, id, award)
	}
}

func (s *Store) grant(r *record, id achievement.ID, award *Award) bool {
	if _, owned := r.achievements[id]; owned {
		return false
	}
	def, ok := achievement.Lookup(id)
	if !ok {
		return false
	}
	r.achievements[id] = struct{}{}
	r.grantOrder = append(r.grantOrder, id)
	award.Granted = append(award.Granted, def)
	s.credit(r, def.Points, award)
	return true
}

func (s *Store) AddPoints(userID string, amount int) Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	var award Award
	s.credit(r, amount, &award)
	award.Total = r.points
	return award
}

func (s *Store) GetPoints(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.users[userID]; ok {
		return r.points
	}
	return 0
}

func (s *Store) RecordActivity(userID string) Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	r.commandsUsed++
	r.lastSeen = s.now()
	var award Award
	s.evaluate(r, achievement.Trigger{Kind: achievement.ActivityRecorded}, &award)
	award.Total = r.points
	return award
}

func (s *Store) RecordJokeRequest(userID string) Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	r.jokesHeard++
	var award Award
	s.evaluate(r, achievement.Trigger{Kind: achievement.JokeRequested}, &award)
	award.Total = r.points
	return award
}

// Grant unlocks id for the user and credits its bonus. It returns false when
// the user already owns it or the id is unknown.
func (s *Store) Grant(userID string, id achievement.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var award Award
	return s.grant(s.recordLocked(userID), id, &award)
}

func (s *Store) RecordTriviaCorrect(userID string, basePoints int, elapsed time.Duration) Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	r.triviaCorrect++
	r.correctRun++
	var award Award
	s.credit(r, basePoints, &award)
	s.evaluate(r, achievement.Trigger{Kind: achievement.TriviaAnsweredCorrectly, Elapsed: elapsed}, &award)
	award.Total = r.points
	return award
}

func (s *Store) RecordTriviaWrong(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	r.triviaWrong++
	r.correctRun = 0
}

func (s *Store) Profile(userID string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[userID]
	if !ok {
		return Profile{UserID: userID}, false
	}
	return Profile{
		UserID:        userID,
		Points:        r.points,
		CommandsUsed:  r.commandsUsed,
		LastSeen:      r.lastSeen,
		TriviaCorrect: r.triviaCorrect,
		TriviaWrong:   r.triviaWrong,
		CorrectRun:    r.correctRun,
		JokesHeard:    r.jokesHeard,
		Achievements:  slices.Clone(r.grantOrder),
		Streak:        r.streak,
	}, true
}

// Achievements returns the user's unlocked definitions in grant order.
func (s *Store) Achievements(userID string) []achievement.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[userID]
	if !ok {
		return nil
	}
	defs := make([]achievement.Definition, 0, len(r.grantOrder))
	for _, id := range r.grantOrder {
		if def, ok := achievement.Lookup(id); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// Leaderboard lists users that ever received points, highest first. Ties are
// broken by user id so the order is stable.
func (s *Store) Leaderboard(limit int) []Standing {
	s.mu.Lock()
	standings := make([]Standing, 0, len(s.users))
	for id, r := range s.users {
		if !r.hasPoints {
			continue
		}
		standings = append(standings, Standing{UserID: id, Points: r.points})
	}
	s.mu.Unlock()

	slices.SortFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings
}

// Rank is the 1-based leaderboard position of the user.
func (s *Store) Rank(userID string) (int, bool) {
	for i, st := range s.Leaderboard(0) {
		if st.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}
