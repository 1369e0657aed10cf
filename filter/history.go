package filter

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// HistoryFilter 剔除用户已经读过的作品。
// 已读集合直接来自 rctx.History，推荐结果里出现历史条目视为缺陷。
type HistoryFilter struct{}

func (f *HistoryFilter) Name() string {
	return "filter.history"
}

func (f *HistoryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || len(rctx.History) == 0 {
		return false, nil
	}
	return rctx.HasRead(item.ID), nil
}

// ExcludeFilter 剔除调用方显式排除的 slug，典型场景是详情页
// "相关推荐"里不出现当前正在浏览的作品。
type ExcludeFilter struct{}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.Exclude.Len() == 0 {
		return false, nil
	}
	return rctx.Exclude.Has(item.ID), nil
}
