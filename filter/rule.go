package filter

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/dsl"
)

// RuleFilter 是表达式驱动的过滤器：CEL 表达式对候选求值为 true 即剔除。
// 运营侧的临时排除规则（下架某受众、屏蔽某题材）可以配置化下发。
//
// 示例表达式：
//   - `item.demographic == "josei"`
//   - `"horror" in item.genres && rctx.cold_start`
type RuleFilter struct {
	// Expression CEL 表达式，空串表示不过滤
	Expression string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || f.Expression == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expression)
}
