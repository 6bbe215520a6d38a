package stream

import (
	"context"
	"testing"
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/audit"
)

func TestSubscribeReceivesPublishedEntries(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	s.Publish(audit.Entry{ID: "01", Action: "Successful login: admin@vitalvida.ng"})

	select {
	case e := <-ch:
		if e.Action != "Successful login: admin@vitalvida.ng" {
			t.Fatalf("unexpected entry: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for entry")
	}
}

func TestCancelUnsubscribes(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	if s.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", s.Subscribers())
	}

	cancel()
	// The channel closes once the context goroutine runs.
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				if s.Subscribers() != 0 {
					t.Fatalf("expected 0 subscribers, got %d", s.Subscribers())
				}
				return
			}
		case <-deadline:
			t.Fatal("subscription was not torn down")
		}
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = s.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		// Publish more than the channel buffer without draining.
		for i := 0; i < 100; i++ {
			s.Publish(audit.Entry{ID: "x", Action: "tick"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
