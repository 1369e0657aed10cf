package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/store"
)

func testCatalog() *store.StaticCatalog {
	return &store.StaticCatalog{Mangas: []*core.Manga{
		{Slug: "shadow-blade", Title: "Shadow Blade", Genre: "Action, Fantasy", Status: "Ongoing", Rating: 4.7, Views: 8000, Year: 2021},
		{Slug: "heart-strings", Title: "Heart Strings", Genre: "Romance, Drama", Status: "Completed", Rating: 4.6, Views: 7000, Year: 2019},
		{Slug: "beast-realm", Title: "Beast Realm", Genre: "Action, Adventure", Status: "Ongoing", Rating: 4.2, Views: 3000, Year: 2022},
		{Slug: "quiet-days", Title: "Quiet Days", Genre: "Slice of Life", Status: "Ongoing", Rating: 4.0, Views: 500, Year: 2023},
		{Slug: "night-walk", Title: "Night Walk", Genre: "Horror, Mystery", Status: "Ongoing", Rating: 4.4, Views: 2000, Year: 2020},
	}}
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
}

func newTestEngine(history []core.ReadingRecord) *Engine {
	return &Engine{
		Catalog: testCatalog(),
		History: &store.StaticHistory{Records: history},
		Now:     fixedNow,
	}
}

func TestEngine_RecommendRespectsLimit(t *testing.T) {
	eng := newTestEngine(nil)

	recs, err := eng.Recommend(context.Background(), "u1", "", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) > 3 {
		t.Errorf("len = %d, want at most 3", len(recs))
	}
	for _, rec := range recs {
		if rec.Manga == nil {
			t.Fatal("recommendation without manga payload")
		}
		if rec.Reason == "" {
			t.Errorf("%s has no reason", rec.Manga.Slug)
		}
		if rec.Confidence < 0 || rec.Confidence > 99 {
			t.Errorf("%s confidence = %d, out of range", rec.Manga.Slug, rec.Confidence)
		}
	}
}

func TestEngine_RecommendExcludesReadAndExcluded(t *testing.T) {
	history := []core.ReadingRecord{
		{Slug: "shadow-blade", Progress: 90, Timestamp: fixedNow().Add(-time.Hour).Unix(),
			Manga: testCatalog().Mangas[0]},
	}
	eng := newTestEngine(history)

	recs, err := eng.Recommend(context.Background(), "u1", "heart-strings", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range recs {
		if rec.Manga.Slug == "shadow-blade" {
			t.Error("already-read title leaked into recommendations")
		}
		if rec.Manga.Slug == "heart-strings" {
			t.Error("explicitly excluded title leaked into recommendations")
		}
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations from remaining catalog")
	}
}

func TestEngine_ColdStartProducesResults(t *testing.T) {
	eng := newTestEngine(nil)

	recs, err := eng.Recommend(context.Background(), "brand-new", "", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("cold start must still produce recommendations")
	}
	// highest-view title should surface on top with no history
	if recs[0].Manga.Slug != "shadow-blade" {
		t.Errorf("top cold pick = %s, want shadow-blade", recs[0].Manga.Slug)
	}
}

func TestEngine_PopularityFallbackWhenPoolDrained(t *testing.T) {
	catalog := testCatalog()
	history := make([]core.ReadingRecord, 0, len(catalog.Mangas))
	for _, m := range catalog.Mangas {
		history = append(history, core.ReadingRecord{
			Slug: m.Slug, Progress: 100, Manga: m,
			Timestamp: fixedNow().Add(-time.Hour).Unix(),
		})
	}
	eng := &Engine{
		Catalog: catalog,
		History: &store.StaticHistory{Records: history},
		Now:     fixedNow,
	}

	recs, err := eng.Recommend(context.Background(), "u1", "", 3)
	if err != nil {
		t.Fatal(err)
	}
	// everything is read: fall back to popularity instead of an empty page
	if len(recs) != 3 {
		t.Fatalf("fallback len = %d, want 3", len(recs))
	}
	if recs[0].Manga.Slug != "shadow-blade" {
		t.Errorf("fallback top = %s, want most viewed", recs[0].Manga.Slug)
	}
	for _, rec := range recs {
		if rec.Reason == "" {
			t.Errorf("%s fallback reason missing", rec.Manga.Slug)
		}
	}
}

func TestEngine_PopularityFallbackHonorsExclude(t *testing.T) {
	catalog := testCatalog()
	history := make([]core.ReadingRecord, 0, len(catalog.Mangas))
	for _, m := range catalog.Mangas {
		history = append(history, core.ReadingRecord{
			Slug: m.Slug, Progress: 100, Manga: m,
			Timestamp: fixedNow().Add(-time.Hour).Unix(),
		})
	}
	eng := &Engine{
		Catalog: catalog,
		History: &store.StaticHistory{Records: history},
		Now:     fixedNow,
	}

	// the page currently being viewed must never come back, even on the
	// drained-pool path
	recs, err := eng.Recommend(context.Background(), "u1", "shadow-blade", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("fallback len = %d, want 3", len(recs))
	}
	for _, rec := range recs {
		if rec.Manga.Slug == "shadow-blade" {
			t.Fatal("excluded slug surfaced in fallback output")
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	history := []core.ReadingRecord{
		{Slug: "shadow-blade", Progress: 90, Timestamp: fixedNow().Add(-time.Hour).Unix(),
			Manga: testCatalog().Mangas[0]},
		{Slug: "night-walk", Progress: 40, Timestamp: fixedNow().Add(-3 * time.Hour).Unix(),
			Manga: testCatalog().Mangas[4]},
	}
	eng := newTestEngine(history)

	run := func() []string {
		recs, err := eng.Recommend(context.Background(), "u1", "", 5)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]string, len(recs))
		for i, rec := range recs {
			out[i] = rec.Manga.Slug
		}
		return out
	}

	first := run()
	for n := 0; n < 5; n++ {
		again := run()
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d diverged: %v vs %v", n, again, first)
			}
		}
	}
}

func TestEngine_DegradesOnHistoryStoreFailure(t *testing.T) {
	eng := &Engine{
		Catalog: testCatalog(),
		History: failingHistory{},
		Now:     fixedNow,
	}

	recs, err := eng.Recommend(context.Background(), "u1", "", 5)
	if err != nil {
		t.Fatalf("history outage must degrade to cold start, got %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected cold-start recommendations during history outage")
	}
}

func TestEngine_RequiresCatalog(t *testing.T) {
	eng := &Engine{}
	if _, err := eng.Recommend(context.Background(), "u1", "", 5); err == nil {
		t.Fatal("missing catalog must be an error")
	}
}

type failingHistory struct{}

func (failingHistory) GetHistory(_ context.Context, _ string) ([]core.ReadingRecord, error) {
	return nil, core.ErrStoreNotFound
}

func TestEngine_Greeting(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{"morning", 8, "Good morning"},
		{"noon boundary", 12, "Good afternoon"},
		{"afternoon", 15, "Good afternoon"},
		{"evening", 19, "Good evening"},
		{"midnight", 0, "Good morning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &Engine{
				Catalog: testCatalog(),
				Now: func() time.Time {
					return time.Date(2026, 8, 15, tt.hour, 0, 0, 0, time.UTC)
				},
			}
			got := eng.Greeting(context.Background(), "u1")
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Greeting = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestEngine_GreetingMentionsLatestTitle(t *testing.T) {
	catalog := testCatalog()
	history := []core.ReadingRecord{
		{Slug: "night-walk", Progress: 30, Manga: catalog.Mangas[4], Timestamp: fixedNow().Add(-48 * time.Hour).Unix()},
		{Slug: "shadow-blade", Progress: 60, Manga: catalog.Mangas[0], Timestamp: fixedNow().Add(-time.Hour).Unix()},
	}
	eng := newTestEngine(history)

	got := eng.Greeting(context.Background(), "u1")
	if !strings.Contains(got, "Shadow Blade") {
		t.Errorf("Greeting = %q, want mention of the most recent title", got)
	}
}
