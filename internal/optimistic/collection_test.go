package optimistic

import (
	"context"
	"errors"
	"testing"
)

var errCommitFailed = errors.New("commit failed")

func TestApplyKeepsDesiredOnSuccess(t *testing.T) {
	c := NewCollection[uint, bool]()
	err := c.Apply(context.Background(), 1, true, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got, ok := c.Get(1); !ok || !got {
		t.Fatalf("expected key 1 to be true, got %v ok=%v", got, ok)
	}
	if c.InFlight(1) {
		t.Fatalf("expected in-flight marker to be cleared")
	}
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	c := NewCollection[uint, bool]()
	c.Replace(map[uint]bool{1: false})

	err := c.Apply(context.Background(), 1, true, func(ctx context.Context) error {
		return errCommitFailed
	})
	if !errors.Is(err, errCommitFailed) {
		t.Fatalf("expected commit error to surface, got %v", err)
	}
	if got, ok := c.Get(1); !ok || got {
		t.Fatalf("expected rollback to pre-toggle value, got %v ok=%v", got, ok)
	}
}

func TestApplyRollbackRemovesKeyAbsentBefore(t *testing.T) {
	c := NewCollection[uint, bool]()
	err := c.Apply(context.Background(), 9, true, func(ctx context.Context) error {
		return errCommitFailed
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := c.Get(9); ok {
		t.Fatalf("expected key to be removed on rollback")
	}
}

func TestStaleResolutionIsDiscarded(t *testing.T) {
	c := NewCollection[uint, bool]()
	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	// like：提交被挂起
	go func() {
		firstDone <- c.Apply(context.Background(), 1, true, func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// unlike：后发意图先落盘
	if err := c.Apply(context.Background(), 1, false, func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	// 释放第一次提交，它的迟到成功不得覆盖 unlike
	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("stale resolution must be discarded silently, got %v", err)
	}
	if got, _ := c.Get(1); got {
		t.Fatalf("expected final state to be unlike (false), got true")
	}
}

func TestStaleFailureDoesNotRollBackNewerIntent(t *testing.T) {
	c := NewCollection[uint, bool]()
	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- c.Apply(context.Background(), 1, true, func(ctx context.Context) error {
			close(started)
			<-release
			return errCommitFailed
		})
	}()
	<-started

	if err := c.Apply(context.Background(), 1, false, func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("stale failure must be discarded, got %v", err)
	}
	if got, _ := c.Get(1); got {
		t.Fatalf("newer intent must win, got true")
	}
}

func TestIndependentKeysMutateConcurrently(t *testing.T) {
	c := NewCollection[uint, bool]()
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	done := make(chan error, 2)

	for _, key := range []uint{1, 2} {
		k := key
		go func() {
			done <- c.Apply(context.Background(), k, true, func(ctx context.Context) error {
				started <- struct{}{}
				<-release
				return nil
			})
		}()
	}
	<-started
	<-started
	close(release)
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}
	if got, _ := c.Get(1); !got {
		t.Fatalf("expected key 1 true")
	}
	if got, _ := c.Get(2); !got {
		t.Fatalf("expected key 2 true")
	}
}

func TestValueRollsBackWholeSnapshot(t *testing.T) {
	v := NewValue([]string{"pm_1", "pm_2"})

	err := v.Apply(context.Background(), []string{"pm_1"}, func(ctx context.Context) error {
		return errCommitFailed
	})
	if !errors.Is(err, errCommitFailed) {
		t.Fatalf("expected commit error, got %v", err)
	}
	got := v.Get()
	if len(got) != 2 || got[0] != "pm_1" || got[1] != "pm_2" {
		t.Fatalf("expected prior collection restored, got %v", got)
	}
}
