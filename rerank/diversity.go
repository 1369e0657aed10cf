package rerank

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
)

// GenreDiversity 是题材多样性重排节点，避免结果页被单一题材刷屏。
//
// 输入要求已按分数降序。两趟扫描：
//  1. 顺序走一遍，候选带来未出现过的题材、或已录取数还不足 MinPick
//     （保底）时立即录取，并记录已录取题材的并集；
//  2. 未满 Limit 时，按原分数顺序用落选的高分候选补齐。
//
// 只调整排序与取舍，从不改动任何候选的分数。
type GenreDiversity struct {
	// Limit 结果上限；<= 0 时取 rctx.Limit，仍无则不截断
	Limit int

	// MinPick 首趟保底录取数，<= 0 时取 3
	MinPick int
}

func (n *GenreDiversity) Name() string {
	return "rerank.diversity"
}

func (n *GenreDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *GenreDiversity) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.Limit
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	minPick := n.MinPick
	if minPick <= 0 {
		minPick = 3
	}

	seen := make(core.StringSet, 16)
	picked := make(map[string]bool, limit)
	out := make([]*core.Item, 0, limit)

	// 第一趟：新题材或保底名额直接录取
	for _, it := range items {
		if it == nil || len(out) >= limit {
			continue
		}
		genres := itemGenres(it)

		fresh := false
		for _, g := range genres.Values() {
			if !seen.Has(g) {
				fresh = true
				break
			}
		}

		if fresh || len(out) < minPick {
			for _, g := range genres.Values() {
				seen.Add(g)
			}
			picked[it.ID] = true
			it.PutLabel("rerank", utils.Label{Value: "diversity", Source: "rerank"})
			out = append(out, it)
		}
	}

	// 第二趟：按分数顺序补齐剩余名额
	for _, it := range items {
		if len(out) >= limit {
			break
		}
		if it == nil || picked[it.ID] {
			continue
		}
		picked[it.ID] = true
		it.PutLabel("rerank", utils.Label{Value: "backfill", Source: "rerank"})
		out = append(out, it)
	}

	return out, nil
}

func itemGenres(it *core.Item) core.StringSet {
	if it.Vector != nil {
		return it.Vector.Genres
	}
	if it.Manga != nil {
		return core.ParseGenres(it.Manga.Genre)
	}
	return core.NewStringSet()
}
