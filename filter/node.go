package filter

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
)

// Node 是过滤节点，组合多个过滤器。
// 任何一个过滤器命中即剔除该候选；单个过滤器出错时不中断链路，
// 跳过继续检查下一个。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.node"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		dropped := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				// 过滤原因留痕，方便排查"为什么没推这部"
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}

		out = append(out, item)
	}

	return out, nil
}
