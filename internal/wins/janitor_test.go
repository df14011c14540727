// ABOUTME: Tests for the periodic purge loop
// ABOUTME: Validates immediate purge, ticking and cancellation
package wins

import (
	"context"
	"testing"
	"time"
)

func TestRunPurgeLoop(t *testing.T) {
	svc := newTestService(t)

	old := time.Now().Add(-72 * time.Hour).Unix()
	recent := time.Now().Add(-time.Hour).Unix()
	for id, deletedAt := range map[int64]int64{1: old, 2: recent} {
		_, err := svc.DB().Exec(
			"INSERT INTO deleted_wins (id, date, text, tags, created_at, deleted_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, "2025-01-01", "gone", "", 1, deletedAt,
		)
		if err != nil {
			t.Fatalf("seed deleted win: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context still gets the initial purge
	if err := svc.RunPurgeLoop(ctx, time.Minute, 48); err != nil {
		t.Fatalf("RunPurgeLoop returned %v", err)
	}

	deleted, err := svc.Deleted(context.Background())
	if err != nil {
		t.Fatalf("Deleted failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != 2 {
		t.Errorf("unexpected remaining deleted wins: %+v", deleted)
	}
}

func TestRunPurgeLoopTicks(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.RunPurgeLoop(ctx, 10*time.Millisecond, 48)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunPurgeLoop returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunPurgeLoop did not stop after cancel")
	}
}
