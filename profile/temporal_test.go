package profile

import (
	"testing"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

func TestAnalyzeTemporal_RecencyCounts(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	history := []core.ReadingRecord{
		{Slug: "a", Timestamp: now.Add(-2 * time.Hour).Unix()},
		{Slug: "b", Timestamp: now.Add(-30 * time.Hour).Unix()},
		{Slug: "c", Timestamp: now.Add(-6 * 24 * time.Hour).Unix()},
		{Slug: "d", Timestamp: now.Add(-20 * 24 * time.Hour).Unix()},
	}

	p := AnalyzeTemporal(history, now)
	if p.Last24h != 1 {
		t.Errorf("Last24h = %d, want 1", p.Last24h)
	}
	if p.Last7d != 3 {
		t.Errorf("Last7d = %d, want 3", p.Last7d)
	}
}

func TestAnalyzeTemporal_BingeBehavior(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []core.ReadingRecord
		want    float64
	}{
		{
			name: "rereading one title",
			history: []core.ReadingRecord{
				{Slug: "a", Timestamp: now.Add(-1 * time.Hour).Unix()},
				{Slug: "a", Timestamp: now.Add(-2 * time.Hour).Unix()},
				{Slug: "a", Timestamp: now.Add(-3 * time.Hour).Unix()},
				{Slug: "a", Timestamp: now.Add(-4 * time.Hour).Unix()},
			},
			want: 4, // 4 interactions / 1 distinct title
		},
		{
			name: "spread across titles",
			history: []core.ReadingRecord{
				{Slug: "a", Timestamp: now.Add(-1 * time.Hour).Unix()},
				{Slug: "b", Timestamp: now.Add(-2 * time.Hour).Unix()},
				{Slug: "c", Timestamp: now.Add(-3 * time.Hour).Unix()},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AnalyzeTemporal(tt.history, now)
			if p.BingeBehavior != tt.want {
				t.Errorf("BingeBehavior = %v, want %v", p.BingeBehavior, tt.want)
			}
		})
	}
}

func TestAnalyzeTemporal_BingeWindowOnlyRecentTen(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// 10 recent interactions across 2 titles, then older noise on many titles
	history := make([]core.ReadingRecord, 0, 15)
	for i := 0; i < 10; i++ {
		slug := "a"
		if i%2 == 0 {
			slug = "b"
		}
		history = append(history, core.ReadingRecord{
			Slug: slug, Timestamp: now.Add(-time.Duration(i) * time.Hour).Unix(),
		})
	}
	for i := 0; i < 5; i++ {
		history = append(history, core.ReadingRecord{
			Slug: "old-" + string(rune('a'+i)), Timestamp: now.AddDate(0, -1, -i).Unix(),
		})
	}

	p := AnalyzeTemporal(history, now)
	if p.BingeBehavior != 5 { // 10 interactions / 2 distinct within the window
		t.Errorf("BingeBehavior = %v, want 5", p.BingeBehavior)
	}
}

func TestAnalyzeTemporal_CompletionRate(t *testing.T) {
	now := time.Now()
	history := []core.ReadingRecord{
		{Slug: "a", Progress: 95, Timestamp: now.Unix()},
		{Slug: "b", Progress: 90, Timestamp: now.Unix()},
		{Slug: "c", Progress: 40, Timestamp: now.Unix()},
		{Slug: "d", Progress: 10, Timestamp: now.Unix()},
	}
	p := AnalyzeTemporal(history, now)
	if p.CompletionRate != 0.5 {
		t.Errorf("CompletionRate = %v, want 0.5", p.CompletionRate)
	}
}

func TestAnalyzeTemporal_EmptyHistory(t *testing.T) {
	p := AnalyzeTemporal(nil, time.Now())
	if p.Last24h != 0 || p.Last7d != 0 || p.BingeBehavior != 0 || p.CompletionRate != 0 {
		t.Errorf("empty history must yield zero pattern, got %+v", p)
	}
}
