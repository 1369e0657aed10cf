package explain

import (
	"context"
	"strings"
	"testing"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
	"github.com/Enmxy/mangexis-vercel-sub000/rank"
)

func warmItem(slug string, score float64) *core.Item {
	it := core.NewMangaItem(&core.Manga{Slug: slug})
	it.Score = score
	it.Vector = &core.FeatureVector{Genres: core.NewStringSet("action")}
	it.PutLabel("rank_path", utils.Label{Value: rank.PathWarm, Source: "rank"})
	return it
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{0.42, 42},
		{0.995, 99},
		{1.5, 99}, // capped
		{-0.1, 0},
	}
	for _, tt := range tests {
		if got := Confidence(tt.score); got != tt.want {
			t.Errorf("Confidence(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestExplain_WarmContentReason(t *testing.T) {
	it := warmItem("x", 0.8)
	it.Features[rank.StrategyContent] = 0.9
	it.Features[rank.StrategyPreference] = 0.3
	it.Features[rank.StrategyCollaborative] = 0.2
	it.PutLabel("top_genre", utils.Label{Value: "action", Source: "rank"})

	node := &Node{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}

	reason := out[0].LabelValue("reason")
	if !strings.HasPrefix(reason, "because you like action") {
		t.Errorf("reason = %q, want content-led reason", reason)
	}
	if out[0].Meta["confidence"] != 80 {
		t.Errorf("confidence = %v, want 80", out[0].Meta["confidence"])
	}
}

func TestExplain_WarmPreferenceReason(t *testing.T) {
	it := warmItem("x", 0.6)
	it.Features[rank.StrategyContent] = 0.2
	it.Features[rank.StrategyPreference] = 0.7
	it.Features[rank.StrategyCollaborative] = 0.1

	node := &Node{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}
	if reason := out[0].LabelValue("reason"); !strings.HasPrefix(reason, "similar to titles you enjoyed") {
		t.Errorf("reason = %q, want preference-led reason", reason)
	}
}

func TestExplain_WarmCollaborativeReason(t *testing.T) {
	it := warmItem("x", 0.6)
	it.Features[rank.StrategyContent] = 0.1
	it.Features[rank.StrategyPreference] = 0.2
	it.Features[rank.StrategyCollaborative] = 0.8

	node := &Node{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}
	if reason := out[0].LabelValue("reason"); !strings.HasPrefix(reason, "readers with similar taste") {
		t.Errorf("reason = %q, want collaborative-led reason", reason)
	}
}

func TestExplain_SecondaryReasonAppended(t *testing.T) {
	it := warmItem("x", 0.7)
	it.Features[rank.StrategyContent] = 0.9
	it.PutLabel("top_genre", utils.Label{Value: "action", Source: "rank"})
	it.Vector.Rating = 4.8

	node := &Node{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}
	want := "because you like action · highly rated"
	if reason := out[0].LabelValue("reason"); reason != want {
		t.Errorf("reason = %q, want %q", reason, want)
	}
}

func TestExplain_WarmFallback(t *testing.T) {
	// zero sub-scores and no item-side highlights
	it := warmItem("x", 0)

	node := &Node{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}
	if reason := out[0].LabelValue("reason"); reason != "picked for you" {
		t.Errorf("reason = %q, want fallback", reason)
	}
}

func TestExplain_ColdReasons(t *testing.T) {
	tests := []struct {
		name string
		fv   *core.FeatureVector
		want string
	}{
		{
			name: "trending and top rated",
			fv:   &core.FeatureVector{Popularity: 9000, Rating: 4.8},
			want: "trending now · top rated",
		},
		{
			name: "frequent updates",
			fv:   &core.FeatureVector{Popularity: 100, Rating: 4.0, UpdateFrequency: 0.9},
			want: "fresh chapters every week",
		},
		{
			name: "long series",
			fv:   &core.FeatureVector{Popularity: 100, Rating: 4.0, ChapterCount: 120},
			want: "plenty of chapters to read",
		},
		{
			name: "nothing stands out",
			fv:   &core.FeatureVector{Popularity: 100, Rating: 4.0},
			want: "popular pick for new readers",
		},
	}

	node := &Node{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := core.NewMangaItem(&core.Manga{Slug: "x"})
			it.Vector = tt.fv
			out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{it})
			if err != nil {
				t.Fatal(err)
			}
			if reason := out[0].LabelValue("reason"); reason != tt.want {
				t.Errorf("reason = %q, want %q", reason, tt.want)
			}
		})
	}
}

func TestExplain_BingeSecondaryReason(t *testing.T) {
	it := warmItem("x", 0.5)
	it.Features[rank.StrategyPreference] = 0.6
	it.Vector.Rating = 4.0
	it.Vector.ChapterCount = 80

	rctx := &core.RecommendContext{}
	rctx.PutParam("binge_behavior", 3.5)

	node := &Node{}
	out, err := node.Process(context.Background(), rctx, []*core.Item{it})
	if err != nil {
		t.Fatal(err)
	}
	want := "similar to titles you enjoyed · a long series to binge"
	if reason := out[0].LabelValue("reason"); reason != want {
		t.Errorf("reason = %q, want %q", reason, want)
	}
}
