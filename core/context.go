package core

import (
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
)

// RecommendContext 承载单个用户的历史/评分/请求参数，贯穿整个 Pipeline 透传。
// 所有输入在调用前物化完成，链路内只读，不回写。
type RecommendContext struct {
	UserID string

	// History 是用户的阅读历史（含作品快照）。
	// 为空即触发冷启动打分路径。
	History []ReadingRecord

	// Ratings 是用户的显式打分，key 为作品 slug。
	Ratings map[string]Rating

	// Exclude 是调用方显式排除的 slug（例如当前正在浏览的作品）。
	Exclude StringSet

	// Limit 是最终返回的结果上限。
	Limit int

	// Now 是本次请求的时间基准，时序分析以它为锚点。
	// 零值时取 time.Now()；测试注入固定时间可保证输出可复现。
	Now time.Time

	// Labels 是用户级标签，可驱动 Pipeline 行为（新用户、重度用户等）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数，节点间传递派生信号也走这里
	// （例如 rank 写入 binge_behavior 供 explain 读取）。
	Params map[string]any
}

// Timestamp 返回请求时间基准。
func (rctx *RecommendContext) Timestamp() time.Time {
	if rctx.Now.IsZero() {
		return time.Now()
	}
	return rctx.Now
}

// ColdStart 判断是否走冷启动路径：当且仅当历史为空。
func (rctx *RecommendContext) ColdStart() bool {
	return len(rctx.History) == 0
}

// HistorySlugs 返回历史中出现过的 slug 集合。
func (rctx *RecommendContext) HistorySlugs() StringSet {
	s := make(StringSet, len(rctx.History))
	for _, r := range rctx.History {
		if r.Slug != "" {
			s[r.Slug] = struct{}{}
		}
	}
	return s
}

// HasRead 判断某 slug 是否在阅读历史中。
func (rctx *RecommendContext) HasRead(slug string) bool {
	for _, r := range rctx.History {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

// PutParam 写入请求级参数。
func (rctx *RecommendContext) PutParam(key string, v any) {
	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[key] = v
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
