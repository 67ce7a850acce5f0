package runs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/apify"
)

func TestWaitAlreadyTerminal(t *testing.T) {
	w := Waiter{Interval: time.Millisecond, MaxAttempts: 3}
	run, err := w.Wait(context.Background(),
		apify.Run{ID: "r", Status: apify.StatusSucceeded},
		func(ctx context.Context, id string) (apify.Run, error) {
			t.Fatal("poll should not be called for a terminal run")
			return apify.Run{}, nil
		})
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if run.Status != apify.StatusSucceeded {
		t.Errorf("status = %s", run.Status)
	}
}

func TestWaitPollsUntilSucceeded(t *testing.T) {
	calls := 0
	w := Waiter{Interval: time.Millisecond, MaxAttempts: 10}
	run, err := w.Wait(context.Background(),
		apify.Run{ID: "r", Status: apify.StatusRunning},
		func(ctx context.Context, id string) (apify.Run, error) {
			calls++
			if calls < 3 {
				return apify.Run{ID: id, Status: apify.StatusRunning}, nil
			}
			return apify.Run{ID: id, Status: apify.StatusSucceeded, DefaultDatasetID: "ds"}, nil
		})
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if calls != 3 {
		t.Errorf("polled %d times, want 3", calls)
	}
	if run.DefaultDatasetID != "ds" {
		t.Errorf("run = %+v", run)
	}
}

func TestWaitFailedRun(t *testing.T) {
	w := Waiter{Interval: time.Millisecond, MaxAttempts: 5}
	_, err := w.Wait(context.Background(),
		apify.Run{ID: "r", Status: apify.StatusRunning},
		func(ctx context.Context, id string) (apify.Run, error) {
			return apify.Run{ID: id, Status: apify.StatusFailed}, nil
		})
	if err == nil {
		t.Fatal("expected error for FAILED run")
	}
}

func TestWaitExhaustsAttempts(t *testing.T) {
	calls := 0
	w := Waiter{Interval: time.Millisecond, MaxAttempts: 4}
	_, err := w.Wait(context.Background(),
		apify.Run{ID: "r", Status: apify.StatusRunning},
		func(ctx context.Context, id string) (apify.Run, error) {
			calls++
			return apify.Run{ID: id, Status: apify.StatusRunning}, nil
		})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if calls != 4 {
		t.Errorf("polled %d times, want exactly 4", calls)
	}
}

func TestWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := Waiter{Interval: time.Hour, MaxAttempts: 5}
	_, err := w.Wait(ctx,
		apify.Run{ID: "r", Status: apify.StatusRunning},
		func(ctx context.Context, id string) (apify.Run, error) {
			return apify.Run{ID: id, Status: apify.StatusRunning}, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestWaitPollError(t *testing.T) {
	boom := errors.New("network down")
	w := Waiter{Interval: time.Millisecond, MaxAttempts: 5}
	_, err := w.Wait(context.Background(),
		apify.Run{ID: "r", Status: apify.StatusRunning},
		func(ctx context.Context, id string) (apify.Run, error) {
			return apify.Run{}, boom
		})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped poll error", err)
	}
}
