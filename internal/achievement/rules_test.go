package achievement

import (
	"slices"
	"testing"
	"time"
)

func TestEvaluate_PointsThreshold(t *testing.T) {
	if got := Evaluate(Trigger{Kind: PointsChanged}, Progress{Points: 499}); len(got) != 0 {
		t.Fatalf("expected no grant below threshold, got %v", got)
	}
	got := Evaluate(Trigger{Kind: PointsChanged}, Progress{Points: 500})
	if !slices.Equal(got, []ID{Dedicated}) {
		t.Fatalf("unexpected grants: %v", got)
	}
}

func TestEvaluate_ActivityThreshold(t *testing.T) {
	if got := Evaluate(Trigger{Kind: ActivityRecorded}, Progress{CommandsUsed: 99}); len(got) != 0 {
		t.Fatalf("expected no grant below threshold, got %v", got)
	}
	got := Evaluate(Trigger{Kind: ActivityRecorded}, Progress{CommandsUsed: 100})
	if !slices.Equal(got, []ID{SocialButterfly}) {
		t.Fatalf("unexpected grants: %v", got)
	}
}

func TestEvaluate_TriviaRules(t *testing.T) {
	got := Evaluate(Trigger{Kind: TriviaAnsweredCorrectly, Elapsed: 10 * time.Second}, Progress{TriviaCorrect: 1, CorrectRun: 1})
	if !slices.Equal(got, []ID{FirstBlood}) {
		t.Fatalf("unexpected grants for first answer: %v", got)
	}

	got = Evaluate(Trigger{Kind: TriviaAnsweredCorrectly, Elapsed: 4900 * time.Millisecond}, Progress{TriviaCorrect: 10, CorrectRun: 5})
	for _, want := range []ID{FirstBlood, TriviaMaster, QuickDraw, Perfectionist} {
		if !slices.Contains(got, want) {
			t.Fatalf("expected %s in %v", want, got)
		}
	}
}

func TestEvaluate_QuickDrawBoundary(t *testing.T) {
	got := Evaluate(Trigger{Kind: TriviaAnsweredCorrectly, Elapsed: 5 * time.Second}, Progress{TriviaCorrect: 2})
	if slices.Contains(got, QuickDraw) {
		t.Fatalf("expected no quick draw at exactly 5s, got %v", got)
	}
}

func TestEvaluate_StreakAndJokes(t *testing.T) {
	if got := Evaluate(Trigger{Kind: DailyClaimed}, Progress{Streak: 6}); len(got) != 0 {
		t.Fatalf("expected no grant on day 6, got %v", got)
	}
	if got := Evaluate(Trigger{Kind: DailyClaimed}, Progress{Streak: 7}); !slices.Equal(got, []ID{EarlyBird}) {
		t.Fatalf("unexpected grants on day 7: %v", got)
	}
	if got := Evaluate(Trigger{Kind: JokeRequested}, Progress{JokesHeard: 50}); !slices.Equal(got, []ID{Comedian}) {
		t.Fatalf("unexpected grants for jokes: %v", got)
	}
}

func TestCatalog_LookupCoversEveryRuleOutput(t *testing.T) {
	for _, id := range []ID{FirstBlood, TriviaMaster, QuickDraw, Perfectionist, EarlyBird, Comedian, SocialButterfly, Dedicated} {
		def, ok := Lookup(id)
		if !ok {
			t.Fatalf("missing catalog entry for %s", id)
		}
		if def.Points <= 0 {
			t.Fatalf("expected positive bonus for %s", id)
		}
	}
	if Count() != len(All()) {
		t.Fatalf("count mismatch: %d vs %d", Count(), len(All()))
	}
}
