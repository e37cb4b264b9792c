package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

func TestWait_SameBoard_Paces(t *testing.T) {
	limiter := NewBoardLimiter(10, 1) // one token every 100ms
	ctx := context.Background()

	// First call consumes the burst and returns immediately.
	if err := limiter.Wait(ctx, "linkedin"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "linkedin"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Allow 20ms for timer jitter.
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentBoards_NoCrossBlocking(t *testing.T) {
	limiter := NewBoardLimiter(5, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "linkedin"); err != nil {
		t.Fatalf("linkedin wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "indeed"); err != nil {
		t.Fatalf("indeed wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected indeed wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_Disabled(t *testing.T) {
	limiter := NewBoardLimiter(0, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := limiter.Wait(ctx, "linkedin"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected no pacing when disabled, took %v", elapsed)
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	limiter := NewBoardLimiter(0.1, 1) // one token every 10s
	if err := limiter.Wait(context.Background(), "naukri"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx, "naukri"); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

type stubBoard struct {
	name  string
	calls int
}

func (s *stubBoard) Name() string { return s.name }

func (s *stubBoard) Search(_ context.Context, keyword string) ([]model.Listing, error) {
	s.calls++
	return []model.Listing{{Title: keyword}}, nil
}

func TestRateLimitedBoard_Delegates(t *testing.T) {
	inner := &stubBoard{name: "indeed"}
	b := NewRateLimitedBoard(inner, NewBoardLimiter(0, 1))

	if b.Name() != "indeed" {
		t.Errorf("Name() = %q", b.Name())
	}
	got, err := b.Search(context.Background(), "nlp intern")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 || len(got) != 1 || got[0].Title != "nlp intern" {
		t.Errorf("unexpected delegation: calls=%d got=%v", inner.calls, got)
	}
}

func TestRateLimitedBoard_CancelledSkipsSearch(t *testing.T) {
	inner := &stubBoard{name: "indeed"}
	limiter := NewBoardLimiter(0.1, 1)
	_ = limiter.Wait(context.Background(), "indeed")
	b := NewRateLimitedBoard(inner, limiter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Search(ctx, "x"); err == nil {
		t.Fatal("expected error on cancelled context")
	}
	if inner.calls != 0 {
		t.Errorf("inner called %d times, want 0", inner.calls)
	}
}
