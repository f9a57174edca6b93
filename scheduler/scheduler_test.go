package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giygas/medicines-admin/data"
	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/testutil"
)

func TestProbeRecordsSuccess(t *testing.T) {
	api := &testutil.FakeAPI{}
	board := data.NewBoard()
	s := NewScheduler(api, board, time.Minute)

	result := s.Probe(context.Background())

	if !result.OK {
		t.Fatalf("expected probe to succeed, got %+v", result)
	}
	if board.LastProbe() != result {
		t.Errorf("board probe = %+v, want %+v", board.LastProbe(), result)
	}
	if api.Count("report") != 1 {
		t.Errorf("report calls = %d, want 1", api.Count("report"))
	}
}

func TestProbeRecordsFailure(t *testing.T) {
	api := &testutil.FakeAPI{ReportErr: errors.New("connection refused")}
	board := data.NewBoard()
	s := NewScheduler(api, board, time.Minute)

	for range 3 {
		s.Probe(context.Background())
	}

	probe := board.LastProbe()
	if probe.OK {
		t.Fatal("expected failed probe")
	}
	if probe.Error != "connection refused" {
		t.Errorf("error = %q", probe.Error)
	}
	if got := s.failures.Load(); got != 3 {
		t.Errorf("consecutive failures = %d, want 3", got)
	}

	api.ReportErr = nil
	s.Probe(context.Background())
	if got := s.failures.Load(); got != 0 {
		t.Errorf("consecutive failures after recovery = %d, want 0", got)
	}
}

func TestProbeLeavesDisplayedRegionsAlone(t *testing.T) {
	api := &testutil.FakeAPI{ReportErr: errors.New("boom")}
	board := data.NewBoard()

	NewScheduler(api, board, time.Minute).Probe(context.Background())

	snap := board.Snapshot()
	if snap.State != entities.LoadIdle || snap.Status != (entities.Status{}) || snap.Average != (entities.AverageSummary{}) {
		t.Errorf("probe touched displayed regions: %+v", snap)
	}
}

func TestStartRunsFirstProbe(t *testing.T) {
	api := &testutil.FakeAPI{}
	board := data.NewBoard()
	s := NewScheduler(api, board, time.Hour)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for board.LastProbe().At.IsZero() {
		if time.Now().After(deadline) {
			t.Fatal("first probe did not run")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartRejectsNonPositiveInterval(t *testing.T) {
	board := data.NewBoard()
	s := NewScheduler(&testutil.FakeAPI{}, board, 0)

	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected error for zero interval")
	}
}
