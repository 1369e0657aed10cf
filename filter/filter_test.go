package filter

import (
	"context"
	"testing"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

func candidates(slugs ...string) []*core.Item {
	out := make([]*core.Item, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, core.NewMangaItem(&core.Manga{Slug: s}))
	}
	return out
}

func TestHistoryFilter(t *testing.T) {
	rctx := &core.RecommendContext{
		History: []core.ReadingRecord{{Slug: "read-1"}, {Slug: "read-2"}},
	}
	node := &Node{Filters: []Filter{&HistoryFilter{}}}

	out, err := node.Process(context.Background(), rctx, candidates("read-1", "fresh", "read-2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "fresh" {
		t.Errorf("filtered output = %v, want only fresh", slugsOf(out))
	}
}

func TestExcludeFilter(t *testing.T) {
	rctx := &core.RecommendContext{Exclude: core.NewStringSet("current")}
	node := &Node{Filters: []Filter{&ExcludeFilter{}}}

	out, err := node.Process(context.Background(), rctx, candidates("current", "other"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "other" {
		t.Errorf("filtered output = %v, want only other", slugsOf(out))
	}
}

func TestFiltersStampLabel(t *testing.T) {
	rctx := &core.RecommendContext{History: []core.ReadingRecord{{Slug: "read-1"}}}
	node := &Node{Filters: []Filter{&HistoryFilter{}}}

	items := candidates("read-1", "fresh")
	if _, err := node.Process(context.Background(), rctx, items); err != nil {
		t.Fatal(err)
	}
	// the dropped item keeps a trace of which filter removed it
	if items[0].LabelValue("filtered") != "true" {
		t.Error("dropped item missing filtered label")
	}
	if items[0].Labels["filtered"].Source != "filter.history" {
		t.Errorf("filtered source = %q, want filter.history", items[0].Labels["filtered"].Source)
	}
	if items[1].LabelValue("filtered") != "" {
		t.Error("kept item must not carry a filtered label")
	}
}

func TestRuleFilter(t *testing.T) {
	lowRated := core.NewMangaItem(&core.Manga{Slug: "low"})
	lowRated.Vector = &core.FeatureVector{Rating: 2.1, Genres: core.NewStringSet("action")}
	highRated := core.NewMangaItem(&core.Manga{Slug: "high"})
	highRated.Vector = &core.FeatureVector{Rating: 4.6, Genres: core.NewStringSet("action")}

	node := &Node{Filters: []Filter{&RuleFilter{Expression: "item.rating < 3.0"}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{lowRated, highRated})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "high" {
		t.Errorf("rule output = %v, want only high", slugsOf(out))
	}
}

func TestRuleFilter_EmptyExpressionKeepsAll(t *testing.T) {
	items := candidates("a", "b")
	node := &Node{Filters: []Filter{&RuleFilter{}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, empty rule must keep everything", len(out))
	}
}

func TestRuleFilter_BadExpressionSkipped(t *testing.T) {
	// broken expressions error out; the node skips the filter, keeping the item
	items := candidates("a")
	node := &Node{Filters: []Filter{&RuleFilter{Expression: "this is not CEL ((("}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Errorf("len = %d, erroring filter must not drop items", len(out))
	}
}

func TestNoFiltersPassThrough(t *testing.T) {
	items := candidates("a", "b")
	node := &Node{}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want passthrough", len(out))
	}
}

func slugsOf(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
