package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/refdeck/refdeck/internal/metadata"
)

// fakeSource is a test double with call-count instrumentation.
type fakeSource struct {
	name  metadata.Source
	rec   *metadata.Record
	err   error
	calls int
}

func (f *fakeSource) Name() metadata.Source { return f.name }

func (f *fakeSource) Search(ctx context.Context, title string) (*metadata.Record, error) {
	f.calls++
	return f.rec, f.err
}

func TestOrchestrator_ShortTitle(t *testing.T) {
	src := &fakeSource{name: metadata.SourceCrossRef}
	o := NewOrchestrator(src)

	if rec := o.Search(context.Background(), "ab"); rec != nil {
		t.Errorf("Search(short title) = %v, want nil", rec)
	}
	if src.calls != 0 {
		t.Errorf("short title made %d source calls, want 0", src.calls)
	}

	// Exactly at the limit after trimming still fails.
	if rec := o.Search(context.Background(), "  123456789  "); rec != nil {
		t.Errorf("Search(9-char title) = %v, want nil", rec)
	}
	if src.calls != 0 {
		t.Errorf("9-char title made %d source calls, want 0", src.calls)
	}
}

func TestOrchestrator_ShortCircuit(t *testing.T) {
	hit := &metadata.Record{Title: "Found", Source: metadata.SourceCrossRef}
	first := &fakeSource{name: metadata.SourceCrossRef, rec: hit}
	second := &fakeSource{name: metadata.SourceOpenAlex}
	third := &fakeSource{name: metadata.SourceSemanticScholar}

	o := NewOrchestrator(first, second, third)
	rec := o.Search(context.Background(), "a sufficiently long title")

	if rec == nil || rec.Title != "Found" {
		t.Fatalf("Search() = %v, want first source's hit", rec)
	}
	if first.calls != 1 {
		t.Errorf("first source called %d times, want 1", first.calls)
	}
	if second.calls != 0 || third.calls != 0 {
		t.Errorf("later sources called (%d, %d), want never", second.calls, third.calls)
	}
}

func TestOrchestrator_FallsThroughFailuresAndMisses(t *testing.T) {
	hit := &metadata.Record{Title: "Found", Source: metadata.SourceSemanticScholar}
	failing := &fakeSource{name: metadata.SourceCrossRef, err: errors.New("boom")}
	missing := &fakeSource{name: metadata.SourceOpenAlex} // nil, nil
	last := &fakeSource{name: metadata.SourceSemanticScholar, rec: hit}

	o := NewOrchestrator(failing, missing, last)
	rec := o.Search(context.Background(), "a sufficiently long title")

	if rec == nil || rec.Source != metadata.SourceSemanticScholar {
		t.Fatalf("Search() = %v, want last source's hit", rec)
	}
	if failing.calls != 1 || missing.calls != 1 || last.calls != 1 {
		t.Errorf("calls = %d, %d, %d; want 1 each", failing.calls, missing.calls, last.calls)
	}
}

func TestOrchestrator_AllMiss(t *testing.T) {
	o := NewOrchestrator(
		&fakeSource{name: metadata.SourceCrossRef},
		&fakeSource{name: metadata.SourceOpenAlex},
	)
	if rec := o.Search(context.Background(), "a sufficiently long title"); rec != nil {
		t.Errorf("Search() = %v, want nil when every source misses", rec)
	}
}
