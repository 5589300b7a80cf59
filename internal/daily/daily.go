// Package daily computes daily-claim eligibility, streaks and rewards.
// Everything here works on calendar dates so callers decide which timezone
// "today" belongs to.
package daily

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	BaseReward        = 50
	StreakBonusPerDay = 5
	MaxStreakBonus    = 100
)

type Streak struct {
	Count     int
	LastClaim civil.Date
}

// HasClaimed reports whether a claim was ever made. The zero Date is invalid.
func (s Streak) HasClaimed() bool {
	return s.LastClaim.IsValid()
}

func CanClaim(s Streak, today civil.Date) bool {
	if !s.HasClaimed() {
		return true
	}
	return s.LastClaim.Before(today)
}

// Claim returns the streak after claiming on today and the reward for it.
// The caller must gate with CanClaim first.
func Claim(s Streak, today civil.Date) (Streak, int) {
	next := Streak{Count: 1, LastClaim: today}
	if s.HasClaimed() && s.LastClaim.AddDays(1) == today {
		next.Count = s.Count + 1
	}
	return next, Reward(next.Count)
}

func StreakBonus(count int) int {
	return min(count*StreakBonusPerDay, MaxStreakBonus)
}

func Reward(count int) int {
	return BaseReward + StreakBonus(count)
}

// Today is the calendar date of t in loc.
func Today(t time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(t.In(loc))
}
