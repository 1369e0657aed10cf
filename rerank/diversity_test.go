package rerank

import (
	"context"
	"testing"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

func scored(slug, genre string, score float64) *core.Item {
	it := core.NewMangaItem(&core.Manga{Slug: slug, Genre: genre})
	it.Score = score
	return it
}

func slugs(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestGenreDiversity_PromotesFreshGenres(t *testing.T) {
	// five action titles dominate the top, a romance title sits below
	items := []*core.Item{
		scored("a1", "Action", 0.9),
		scored("a2", "Action", 0.8),
		scored("a3", "Action", 0.7),
		scored("a4", "Action", 0.6),
		scored("r1", "Romance", 0.5),
		scored("a5", "Action", 0.4),
	}

	node := &GenreDiversity{Limit: 4}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}

	// a1 brings a fresh genre; a2/a3 ride the floor; a4 brings nothing new
	// and r1 brings romance, so r1 must make the cut ahead of a4
	got := slugs(out)
	want := []string{"a1", "a2", "a3", "r1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestGenreDiversity_BackfillsWhenScarce(t *testing.T) {
	// only one genre in the pool: the floor admits three, backfill tops up
	items := []*core.Item{
		scored("a1", "Action", 0.9),
		scored("a2", "Action", 0.8),
		scored("a3", "Action", 0.7),
		scored("a4", "Action", 0.6),
		scored("a5", "Action", 0.5),
	}

	node := &GenreDiversity{Limit: 5}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	got := slugs(out)
	want := []string{"a1", "a2", "a3", "a4", "a5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if out[3].LabelValue("rerank") != "backfill" {
		t.Errorf("a4 rerank label = %q, want backfill", out[3].LabelValue("rerank"))
	}
}

func TestGenreDiversity_NeverChangesScores(t *testing.T) {
	items := []*core.Item{
		scored("a1", "Action", 0.9),
		scored("r1", "Romance", 0.5),
	}
	node := &GenreDiversity{Limit: 2}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range out {
		switch it.ID {
		case "a1":
			if it.Score != 0.9 {
				t.Errorf("a1 score changed to %v", it.Score)
			}
		case "r1":
			if it.Score != 0.5 {
				t.Errorf("r1 score changed to %v", it.Score)
			}
		}
	}
}

func TestGenreDiversity_LimitFromContext(t *testing.T) {
	items := []*core.Item{
		scored("a1", "Action", 0.9),
		scored("b1", "Romance", 0.8),
		scored("c1", "Horror", 0.7),
	}
	node := &GenreDiversity{}
	out, err := node.Process(context.Background(), &core.RecommendContext{Limit: 2}, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want rctx limit 2", len(out))
	}
}

func TestGenreDiversity_EmptyInput(t *testing.T) {
	node := &GenreDiversity{Limit: 5}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}
