package service

import (
	"testing"
	"time"
)

func fresh(now time.Time, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = now.Add(-time.Duration(i+1) * time.Minute).UnixMilli()
	}
	return out
}

func TestThrottled_BlocksAtLimit(t *testing.T) {
	now := time.Now()

	if !Throttled(fresh(now, 5), now) {
		t.Fatal("5 submissions within the hour should throttle the 6th")
	}
}

func TestThrottled_AllowsUnderLimit(t *testing.T) {
	now := time.Now()

	if Throttled(fresh(now, 4), now) {
		t.Fatal("4 submissions within the hour should not throttle")
	}
}

func TestThrottled_IgnoresStaleEntries(t *testing.T) {
	now := time.Now()

	stale := make([]int64, 5)
	for i := range stale {
		stale[i] = now.Add(-2 * time.Hour).UnixMilli()
	}

	if Throttled(stale, now) {
		t.Fatal("entries older than an hour must not throttle")
	}
}

func TestThrottled_MixedWindow(t *testing.T) {
	now := time.Now()

	history := fresh(now, 3)
	history = append(history,
		now.Add(-90*time.Minute).UnixMilli(),
		now.Add(-3*time.Hour).UnixMilli(),
	)

	if Throttled(history, now) {
		t.Fatal("only 3 of 5 entries are inside the window")
	}
}

func TestThrottled_EmptyHistory(t *testing.T) {
	now := time.Now()

	if Throttled(nil, now) {
		t.Fatal("no history should never throttle")
	}
}

func TestRecordSubmission_AppendsWithoutPruning(t *testing.T) {
	now := time.Now()

	history := []int64{now.Add(-2 * time.Hour).UnixMilli()}
	got := RecordSubmission(history, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0] != history[0] {
		t.Error("stale entries must survive a write, pruning is read-side only")
	}
	if got[1] != now.UnixMilli() {
		t.Errorf("last entry should be now, got %d", got[1])
	}
}
