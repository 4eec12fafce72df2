package history

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"avclapper/internal/analysis"
	"avclapper/internal/input"
	"avclapper/internal/logging"
	"avclapper/internal/records"
	"avclapper/internal/solve"
)

func openStore(t *testing.T, keep int) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history", "history.db"), keep)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func analyze(t *testing.T, doc string) (*analysis.Result, error) {
	t.Helper()
	store := records.NewStore()
	if err := input.ReadLines(strings.NewReader(doc), store, logging.NewNop()); err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	return analysis.New(store, logging.NewNop()).Run(context.Background())
}

const solvable = "AUDIO A\n2.0 100\n4.0 200\nVIDEO B\n5.0 100\n11.0 200\n"

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, 0)

	result, err := analyze(t, solvable)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	run := NewRun("", "session.txt", []byte(solvable), result, nil)
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusSolved || got.Files != 2 || got.Syncs != 2 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.InputDigest != Digest([]byte(solvable)) {
		t.Fatalf("digest mismatch: %s", got.InputDigest)
	}
	if len(got.Solutions) != 2 || got.Solutions[1].Name != "B" {
		t.Fatalf("unexpected solutions: %+v", got.Solutions)
	}
	if diff := got.Solutions[1].Scale - 1.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected scale %v", got.Solutions[1].Scale)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, run.CreatedAt)
	}

	byPrefix, err := store.Get(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("Get by prefix: %v", err)
	}
	if byPrefix.ID != run.ID {
		t.Fatalf("prefix resolved to %s", byPrefix.ID)
	}
}

func TestRecordUnsolvable(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, 0)

	doc := "AUDIO A\n2.0 100\nVIDEO B\n5.0 100\n"
	result, runErr := analyze(t, doc)
	if !errors.Is(runErr, solve.ErrUnsolvable) {
		t.Fatalf("expected unsolvable, got %v", runErr)
	}
	run := NewRun("", "-", []byte(doc), result, runErr)
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusUnsolvable {
		t.Fatalf("expected unsolvable status, got %s", got.Status)
	}
	if !strings.Contains(got.Error, "B") {
		t.Fatalf("expected error naming B, got %q", got.Error)
	}
}

func TestListNewestFirstAndPrune(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, 2)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := range 3 {
		run := NewRun("", "in", []byte{byte(i)}, nil, errors.New("load failed"))
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		ids = append(ids, run.ID)
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 retained runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
	if runs[0].Status != StatusFailed {
		t.Fatalf("expected failed status, got %s", runs[0].Status)
	}
	if _, err := store.Get(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pruned run to be gone, got %v", err)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 run, got %d", len(limited))
	}
}

func TestGetUnknown(t *testing.T) {
	store := openStore(t, 0)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestReopenChecksSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(ctx, path, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, path, 0); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != StatusSolved {
		t.Fatal("nil error should be solved")
	}
	if StatusOf(&solve.UnsolvableError{Files: []string{"x"}}) != StatusUnsolvable {
		t.Fatal("unsolvable error should map to unsolvable")
	}
	if StatusOf(errors.New("boom")) != StatusFailed {
		t.Fatal("other errors should map to failed")
	}
}
