package rerank

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
)

// TopN 是截断节点，保留排序后的前 N 个候选。
// 通常放在 rank 之后、diversity 之前，先把重排的工作集压到可控规模。
type TopN struct {
	// N 要保留的候选数量；<= 0 时不截断
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
