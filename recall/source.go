package recall

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// Source 是召回源的抽象：给定请求上下文产出一批候选。
// 召回源同时实现 pipeline.Node，可以单独入链，也可以挂在 Fanout 下并发执行。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
