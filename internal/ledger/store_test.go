package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/foxseedlab/runebot/internal/achievement"
	"github.com/foxseedlab/runebot/internal/apperr"
)

func newTestStore() *Store {
	s := NewStore()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAddPoints_SumsAmounts(t *testing.T) {
	s := newTestStore()
	total := 0
	for _, amount := range []int{1, 7, 30, 12} {
		s.AddPoints("user-1", amount)
		total += amount
	}
	if got := s.GetPoints("user-1"); got != total {
		t.Fatalf("expected %d points, got %d", total, got)
	}
}

func TestAddPoints_IgnoresNonPositiveAmounts(t *testing.T) {
	s := newTestStore()
	s.AddPoints("user-1", 10)
	s.AddPoints("user-1", -5)
	s.AddPoints("user-1", 0)
	if got := s.GetPoints("user-1"); got != 10 {
		t.Fatalf("expected 10 points, got %d", got)
	}
}

func TestAddPoints_ConcurrentCallsAreSerialized(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddPoints("user-1", 2)
		}()
	}
	wg.Wait()
	if got := s.GetPoints("user-1"); got != 100 {
		t.Fatalf("expected 100 points, got %d", got)
	}
}

func TestGetPoints_UnknownUserIsZero(t *testing.T) {
	s := newTestStore()
	if got := s.GetPoints("nobody"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestAddPoints_DedicatedGrantedOnceWithBonus(t *testing.T) {
	s := newTestStore()
	award := s.AddPoints("user-1", 500)
	if len(award.Granted) != 1 || award.Granted[0].ID != achievement.Dedicated {
		t.Fatalf("expected dedicated grant, got %+v", award.Granted)
	}
	if award.Total != 600 {
		t.Fatalf("expected 600 total with bonus, got %d", award.Total)
	}
	award = s.AddPoints("user-1", 1)
	if len(award.Granted) != 0 {
		t.Fatalf("expected no second grant, got %+v", award.Granted)
	}
	if got := s.GetPoints("user-1"); got != 601 {
		t.Fatalf("expected 601 points, got %d", got)
	}
}

func TestGrant_IsIdempotent(t *testing.T) {
	s := newTestStore()
	if !s.Grant("user-1", achievement.QuickDraw) {
		t.Fatal("expected first grant to succeed")
	}
	if s.Grant("user-1", achievement.QuickDraw) {
		t.Fatal("expected second grant to be a no-op")
	}
	if got := s.GetPoints("user-1"); got != 25 {
		t.Fatalf("expected bonus credited once (25), got %d", got)
	}
	if s.Grant("user-1", achievement.ID("unknown")) {
		t.Fatal("expected unknown achievement to be refused")
	}
	if got := len(s.Achievements("user-1")); got != 1 {
		t.Fatalf("expected one achievement, got %d", got)
	}
}

func TestRecordActivity_SocialButterflyOnHundredthCommand(t *testing.T) {
	s := newTestStore()
	for i := 1; i < 100; i++ {
		if award := s.RecordActivity("user-1"); len(award.Granted) != 0 {
			t.Fatalf("unexpected grant at command %d", i)
		}
	}
	award := s.RecordActivity("user-1")
	if len(award.Granted) != 1 || award.Granted[0].ID != achievement.SocialButterfly {
		t.Fatalf("expected social butterfly, got %+v", award.Granted)
	}
	p, _ := s.Profile("user-1")
	if p.CommandsUsed != 100 || p.LastSeen.IsZero() {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestRecordTriviaCorrect_FirstAnswerBonuses(t *testing.T) {
	s := newTestStore()
	award := s.RecordTriviaCorrect("user-1", 10, 3*time.Second)
	// 10 base + 5 first blood + 25 quick draw
	if award.Points != 40 || award.Total != 40 {
		t.Fatalf("unexpected award: %+v", award)
	}
	if len(award.Granted) != 2 {
		t.Fatalf("expected two grants, got %+v", award.Granted)
	}

	award = s.RecordTriviaCorrect("user-1", 10, 3*time.Second)
	if award.Points != 10 || len(award.Granted) != 0 {
		t.Fatalf("expected plain base points on second answer, got %+v", award)
	}
}

func TestRecordTriviaCorrect_TriviaMasterOnTenth(t *testing.T) {
	s := newTestStore()
	for i := 1; i <= 9; i++ {
		s.RecordTriviaCorrect("user-1", 10, time.Minute)
		if i < 9 {
			s.RecordTriviaWrong("user-1")
		}
	}
	award := s.RecordTriviaCorrect("user-1", 10, time.Minute)
	found := false
	for _, def := range award.Granted {
		if def.ID == achievement.TriviaMaster {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected trivia master on tenth answer, got %+v", award.Granted)
	}
}

func TestRecordTriviaWrong_ResetsRun(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 4; i++ {
		s.RecordTriviaCorrect("user-1", 10, time.Minute)
	}
	s.RecordTriviaWrong("user-1")
	award := s.RecordTriviaCorrect("user-1", 10, time.Minute)
	for _, def := range award.Granted {
		if def.ID == achievement.Perfectionist {
			t.Fatal("expected run to restart after a wrong answer")
		}
	}
	p, _ := s.Profile("user-1")
	if p.CorrectRun != 1 || p.TriviaWrong != 1 || p.TriviaCorrect != 5 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if acc, ok := p.Accuracy(); !ok || acc < 83 || acc > 84 {
		t.Fatalf("unexpected accuracy: %v %v", acc, ok)
	}
}

func TestRecordJokeRequest_Comedian(t *testing.T) {
	s := newTestStore()
	var award Award
	for i := 0; i < 50; i++ {
		award = s.RecordJokeRequest("user-1")
	}
	if len(award.Granted) != 1 || award.Granted[0].ID != achievement.Comedian {
		t.Fatalf("expected comedian on fiftieth joke, got %+v", award.Granted)
	}
}

func TestClaimDaily_SameDayRefused(t *testing.T) {
	s := newTestStore()
	today := civil.Date{Year: 2026, Month: time.March, Day: 1}
	if !s.CanClaimDaily("user-1", today) {
		t.Fatal("expected first claim to be allowed")
	}
	claim, err := s.ClaimDaily("user-1", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.Reward != 55 || claim.Streak != 1 || s.GetPoints("user-1") != 55 {
		t.Fatalf("unexpected claim: %+v", claim)
	}
	if s.CanClaimDaily("user-1", today) {
		t.Fatal("expected same-day claim to be refused")
	}
	_, err = s.ClaimDaily("user-1", today)
	if !errors.Is(err, ErrAlreadyClaimed) || !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected already-claimed conflict, got %v", err)
	}
	if !s.CanClaimDaily("user-1", today.AddDays(1)) {
		t.Fatal("expected next-day claim to be allowed")
	}
}

func TestClaimDaily_EarlyBirdOnSeventhDay(t *testing.T) {
	s := newTestStore()
	start := civil.Date{Year: 2026, Month: time.March, Day: 1}
	for i := 0; i < 6; i++ {
		claim, err := s.ClaimDaily("user-1", start.AddDays(i))
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", i, err)
		}
		if len(claim.Award.Granted) != 0 {
			t.Fatalf("day %d: unexpected grant %+v", i, claim.Award.Granted)
		}
	}
	claim, err := s.ClaimDaily("user-1", start.AddDays(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.Streak != 7 {
		t.Fatalf("expected streak 7, got %d", claim.Streak)
	}
	if len(claim.Award.Granted) == 0 || claim.Award.Granted[0].ID != achievement.EarlyBird {
		t.Fatalf("expected early bird, got %+v", claim.Award.Granted)
	}
	// 405 points from the first six days; day seven crosses 500 and also
	// unlocks dedicated.
	if claim.Award.Points != claim.Reward+75+100 {
		t.Fatalf("expected reward plus both bonuses, got %+v", claim)
	}
}

func TestLeaderboardAndRank(t *testing.T) {
	s := newTestStore()
	s.AddPoints("user-b", 30)
	s.AddPoints("user-a", 30)
	s.AddPoints("user-c", 90)
	s.RecordActivity("user-d")

	board := s.Leaderboard(10)
	if len(board) != 3 {
		t.Fatalf("expected users without points to be excluded, got %+v", board)
	}
	if board[0].UserID != "user-c" || board[1].UserID != "user-a" || board[2].UserID != "user-b" {
		t.Fatalf("unexpected order: %+v", board)
	}
	if got := s.Leaderboard(2); len(got) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
	if rank, ok := s.Rank("user-b"); !ok || rank != 3 {
		t.Fatalf("unexpected rank: %d %v", rank, ok)
	}
	if _, ok := s.Rank("user-d"); ok {
		t.Fatal("expected user without points to be unranked")
	}
}
