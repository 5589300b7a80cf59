package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/runebot/internal/apperr"
)

type fakeDispatcher struct {
	mu        sync.Mutex
	delivered []Reminder
	failFor   map[string]bool
	notify    chan Reminder
}

func (f *fakeDispatcher) DispatchReminder(_ context.Context, r Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[r.Text] {
		return errors.New("channel unavailable")
	}
	f.delivered = append(f.delivered, r)
	if f.notify != nil {
		select {
		case f.notify <- r:
		default:
		}
	}
	return nil
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSchedule_RangeBoundaries(t *testing.T) {
	s := NewScheduler(&fakeDispatcher{})

	for _, minutes := range []int{0, -5, 1441} {
		if _, err := s.Schedule("u1", "c1", "stretch", minutes, t0); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("minutes=%d: expected ErrOutOfRange, got %v", minutes, err)
		}
	}
	if s.Pending() != 0 {
		t.Fatalf("rejected reminders must not be stored, pending=%d", s.Pending())
	}

	for _, minutes := range []int{1, 1440} {
		r, err := s.Schedule("u1", "c1", "stretch", minutes, t0)
		if err != nil {
			t.Fatalf("minutes=%d: unexpected error: %v", minutes, err)
		}
		if want := t0.Add(time.Duration(minutes) * time.Minute); !r.DueAt.Equal(want) {
			t.Fatalf("minutes=%d: due at %v, want %v", minutes, r.DueAt, want)
		}
	}
	if s.Pending() != 2 {
		t.Fatalf("expected 2 pending reminders, got %d", s.Pending())
	}
}

func TestSchedule_EmptyText(t *testing.T) {
	s := NewScheduler(&fakeDispatcher{})
	_, err := s.Schedule("u1", "c1", "   ", 5, t0)
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
}

func TestSweep_DeliversDueOnlyOnce(t *testing.T) {
	d := &fakeDispatcher{}
	s := NewScheduler(d)
	if _, err := s.Schedule("u1", "c1", "soon", 1, t0); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := s.Schedule("u2", "c1", "later", 10, t0); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if got := s.Sweep(context.Background(), t0.Add(30*time.Second)); len(got) != 0 {
		t.Fatalf("nothing should be due yet, got %d", len(got))
	}

	due := s.Sweep(context.Background(), t0.Add(time.Minute))
	if len(due) != 1 || due[0].Text != "soon" {
		t.Fatalf("expected the 1-minute reminder, got %+v", due)
	}
	if again := s.Sweep(context.Background(), t0.Add(2*time.Minute)); len(again) != 0 {
		t.Fatalf("reminder must not be delivered twice, got %+v", again)
	}
	if d.count() != 1 {
		t.Fatalf("expected exactly one delivery, got %d", d.count())
	}
	if s.Pending() != 1 {
		t.Fatalf("expected the later reminder to stay pending, got %d", s.Pending())
	}
}

func TestSweep_FailedDeliveryIsDropped(t *testing.T) {
	d := &fakeDispatcher{failFor: map[string]bool{"broken": true}}
	s := NewScheduler(d)
	if _, err := s.Schedule("u1", "gone", "broken", 1, t0); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := s.Schedule("u2", "c1", "fine", 1, t0); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	due := s.Sweep(context.Background(), t0.Add(5*time.Minute))
	if len(due) != 2 {
		t.Fatalf("expected both reminders to be taken, got %d", len(due))
	}
	if d.count() != 1 {
		t.Fatalf("expected the healthy reminder to be delivered, got %d", d.count())
	}
	if s.Pending() != 0 {
		t.Fatalf("failed reminder must not be retried, pending=%d", s.Pending())
	}
}

func TestSweep_ConcurrentSweepsDeliverOnce(t *testing.T) {
	d := &fakeDispatcher{}
	s := NewScheduler(d)
	for i := 0; i < 20; i++ {
		if _, err := s.Schedule("u1", "c1", "ping", 1, t0); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Sweep(context.Background(), t0.Add(time.Hour))
		}()
	}
	wg.Wait()

	if d.count() != 20 {
		t.Fatalf("expected 20 deliveries, got %d", d.count())
	}
}

func TestRunner_SweepsOnInterval(t *testing.T) {
	d := &fakeDispatcher{notify: make(chan Reminder, 1)}
	s := NewScheduler(d)
	if _, err := s.Schedule("u1", "c1", "tick", 1, t0); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	r := NewRunner(s, 20*time.Millisecond)
	r.now = func() time.Time { return t0.Add(time.Hour) }
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		if err := r.Stop(); err != nil {
			t.Fatalf("stop: %v", err)
		}
	}()

	select {
	case got := <-d.notify:
		if got.Text != "tick" {
			t.Fatalf("unexpected reminder delivered: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not sweep within timeout")
	}
}
