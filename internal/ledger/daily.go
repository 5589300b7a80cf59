package ledger

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/foxseedlab/runebot/internal/achievement"
	"github.com/foxseedlab/runebot/internal/apperr"
	"github.com/foxseedlab/runebot/internal/daily"
)

var ErrAlreadyClaimed = fmt.Errorf("%w: daily reward already claimed today", apperr.ErrConflict)

type DailyClaim struct {
	Reward int
	Streak int
	Award  Award
}

func (s *Store) CanClaimDaily(userID string, today civil.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[userID]
	if !ok {
		return true
	}
	return daily.CanClaim(r.streak, today)
}

// ClaimDaily advances the streak, credits the reward and runs the streak
// rule. The streak is updated before the reward is credited so the
// early-bird bonus lands in the same Award.
func (s *Store) ClaimDaily(userID string, today civil.Date) (DailyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.recordLocked(userID)
	if !daily.CanClaim(r.streak, today) {
		return DailyClaim{Streak: r.streak.Count}, ErrAlreadyClaimed
	}
	next, reward := daily.Claim(r.streak, today)
	r.streak = next

	var award Award
	s.evaluate(r, achievement.Trigger{Kind: achievement.DailyClaimed}, &award)
	s.credit(r, reward, &award)
	award.Total = r.points
	return DailyClaim{Reward: reward, Streak: next.Count, Award: award}, nil
}
