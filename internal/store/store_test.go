package store

import (
	"context"
	"errors"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig on empty dir: %v", err)
	}
	if cfg.ServerURL != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}

	cfg.ServerURL = "https://activity.example.com"
	cfg.Token = "tok"
	cfg.DefaultProject = "p1"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.ServerURL != cfg.ServerURL || got.Token != cfg.Token || got.DefaultProject != cfg.DefaultProject {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestTUIStateRoundTrip(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())

	st, err := LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState on empty dir: %v", err)
	}
	if st.Version != 1 {
		t.Fatalf("expected version 1 default, got %d", st.Version)
	}

	show := false
	st.View = "timeline"
	st.Project = "p1"
	st.SelectedGroupKey = "m2"
	st.ShowCompleted = &show
	if err := SaveTUIState(st); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	got, err := LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if got.View != "timeline" || got.Project != "p1" || got.SelectedGroupKey != "m2" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.ShowCompleted == nil || *got.ShowCompleted {
		t.Fatalf("expected ShowCompleted=false preserved, got %+v", got.ShowCompleted)
	}
}

func TestJournalAppendTail(t *testing.T) {
	ctx := context.Background()
	j, err := OpenJournal(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	entries := []JournalEntry{
		{Project: "p1", Op: "status", ItemID: "a1", OK: true},
		{Project: "p1", Op: "reassign", ItemID: "a2", OK: false, Detail: "503 service unavailable"},
	}
	for _, e := range entries {
		if err := j.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := j.Tail(ctx, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	for _, e := range got {
		if e.ID == "" || e.TS.IsZero() {
			t.Fatalf("expected assigned id and timestamp, got %+v", e)
		}
	}
	// Newest first: the failed reassign was appended last.
	if got[0].Op != "reassign" || got[0].OK || got[0].Detail != "503 service unavailable" {
		t.Fatalf("unexpected head entry: %+v", got[0])
	}
}

func TestRecorder_BestEffort(t *testing.T) {
	ctx := context.Background()
	j, err := OpenJournal(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	rec := Recorder{Journal: j, Project: "p1"}
	rec.Record("delete", "a1", errors.New("connection reset"))
	rec.Record("create", "", nil)

	got, err := j.Tail(ctx, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recorded outcomes, got %d", len(got))
	}

	// A nil journal must be a safe no-op.
	Recorder{}.Record("status", "a1", nil)
}
