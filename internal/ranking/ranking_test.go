package ranking

import (
	"context"
	"errors"
	"testing"
)

// fakeStats is a test double for the bibliometric source.
type fakeStats struct {
	stats *SourceStats
	err   error
	calls int
}

func (f *fakeStats) JournalStats(ctx context.Context, name string) (*SourceStats, error) {
	f.calls++
	return f.stats, f.err
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Lancet", "lancet"},
		{"  Nature  Methods ", "nature methods"},
		{"P.L.O.S. ONE", "plos one"},
		{"Journal of Stuff & Things", "journal of stuff things"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_CuratedTable(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name string
		want Tier
	}{
		{"Nature", Q1},
		{"The Lancet", Q1},
		{"New England Journal of Medicine", Q1},
		{"PLOS ONE", Q2},
		{"Heliyon", Q3},
		{"Cureus", Q4},
		// Substring fallback, both directions.
		{"Nature Methods Supplement", Q1},
		{"Molecular Biology", Q1}, // contained in "molecular biology and evolution"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := r.Resolve(context.Background(), tt.name)
			if !ok || tier != tt.want {
				t.Errorf("Resolve(%q) = %q, %v; want %q", tt.name, tier, ok, tt.want)
			}
		})
	}
}

func TestResolve_ShortName(t *testing.T) {
	stats := &fakeStats{}
	r := NewResolver(stats)

	if tier, ok := r.Resolve(context.Background(), "ab"); ok {
		t.Errorf("Resolve(short name) = %q, want absence", tier)
	}
	if stats.calls != 0 {
		t.Errorf("short name triggered %d bibliometric calls, want 0", stats.calls)
	}
}

func TestResolve_BibliometricThresholds(t *testing.T) {
	tests := []struct {
		name   string
		stats  *SourceStats
		want   Tier
		wantOK bool
	}{
		{
			name:   "citedness Q1 with trusted volume",
			stats:  &SourceStats{WorksCount: 150, TwoYearMeanCitedness: floatPtr(3.0)},
			want:   Q1,
			wantOK: true,
		},
		{
			name:   "citedness Q2",
			stats:  &SourceStats{WorksCount: 150, TwoYearMeanCitedness: floatPtr(1.5)},
			want:   Q2,
			wantOK: true,
		},
		{
			name:   "citedness Q3",
			stats:  &SourceStats{WorksCount: 150, TwoYearMeanCitedness: floatPtr(0.5)},
			want:   Q3,
			wantOK: true,
		},
		{
			name:   "citedness Q4",
			stats:  &SourceStats{WorksCount: 150, TwoYearMeanCitedness: floatPtr(0.1)},
			want:   Q4,
			wantOK: true,
		},
		{
			name:   "low volume ignores citedness, uses h-index",
			stats:  &SourceStats{WorksCount: 50, TwoYearMeanCitedness: floatPtr(3.0), HIndex: intPtr(60)},
			want:   Q2,
			wantOK: true,
		},
		{
			name:   "h-index fallback when citedness missing",
			stats:  &SourceStats{WorksCount: 500, HIndex: intPtr(120)},
			want:   Q1,
			wantOK: true,
		},
		{
			name:   "low volume and no h-index falls through",
			stats:  &SourceStats{WorksCount: 50, TwoYearMeanCitedness: floatPtr(3.0)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeStats{stats: tt.stats})
			// Name chosen to miss both the curated table and the pattern lists.
			tier, ok := r.lookupBibliometric(context.Background(), "Obscure Quarterly")
			if ok != tt.wantOK || tier != tt.want {
				t.Errorf("lookupBibliometric() = %q, %v; want %q, %v", tier, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_BibliometricErrorIsSoft(t *testing.T) {
	r := NewResolver(&fakeStats{err: errors.New("network down")})

	// "IEEE Transactions on Widgets" misses the table but matches the Q2
	// pattern list, so the failed lookup falls through to the heuristic.
	tier, ok := r.Resolve(context.Background(), "IEEE Transactions on Widgets")
	if !ok || tier != Q2 {
		t.Errorf("Resolve() = %q, %v; want Q2 via pattern fallback", tier, ok)
	}
}

func TestLookupPattern(t *testing.T) {
	tests := []struct {
		name   string
		want   Tier
		wantOK bool
	}{
		{"Nature-adjacent Weekly", Q1, true},
		{"IEEE Transactions on Robotics", Q2, true},
		{"International Journal of Widgets", Q2, true},
		{"Obscure Quarterly", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := lookupPattern(tt.name)
			if ok != tt.wantOK || tier != tt.want {
				t.Errorf("lookupPattern(%q) = %q, %v; want %q, %v", tt.name, tier, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTag(t *testing.T) {
	r := NewResolver(nil)

	if got := r.Tag(context.Background(), "Nature"); got != "Q1 Journal" {
		t.Errorf("Tag(Nature) = %q, want Q1 Journal", got)
	}
	if got := r.Tag(context.Background(), "x"); got != "" {
		t.Errorf("Tag(short) = %q, want empty", got)
	}
}
