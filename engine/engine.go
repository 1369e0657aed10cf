// Package engine 是推荐引擎的门面：组装 Pipeline、拉取协作方数据、
// 装配最终的推荐结果。
package engine

import (
	"context"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/explain"
	"github.com/Enmxy/mangexis-vercel-sub000/feature"
	"github.com/Enmxy/mangexis-vercel-sub000/filter"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/rank"
	"github.com/Enmxy/mangexis-vercel-sub000/recall"
	"github.com/Enmxy/mangexis-vercel-sub000/rerank"
)

// defaultLimit 是未指定 limit 时的结果上限。
const defaultLimit = 10

// Engine 把目录/历史/评分三个协作方存储接到推荐 Pipeline 上。
//
// 引擎自身无状态：每次 Recommend 重新拉取输入、重新派生画像，
// 不在调用之间缓存任何东西，相同输入必得相同输出（问候语除外，
// 它读墙钟）。并发调用天然安全。
type Engine struct {
	// Catalog 内容目录，必填
	Catalog core.CatalogProvider

	// History 阅读历史存储，nil 视为全部用户空历史（冷启动）
	History core.HistoryStore

	// Ratings 评分存储，nil 视为无评分
	Ratings core.RatingStore

	// Config 策略权重配置，nil 时取线上默认
	Config *core.ScoringConfig

	// Extractor 特征抽取器，nil 时按 Config 新建
	Extractor *feature.Extractor

	// ExtraFilters 追加在内置过滤器之后（例如运营规则 RuleFilter）
	ExtraFilters []filter.Filter

	// Now 时间源，测试注入固定时间；nil 时取 time.Now
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) config() *core.ScoringConfig {
	if e.Config != nil {
		return e.Config
	}
	return core.DefaultScoringConfig()
}

func (e *Engine) extractor() *feature.Extractor {
	if e.Extractor != nil {
		return e.Extractor
	}
	return feature.NewExtractor(e.config())
}

// Recommend 为一个用户产出至多 limit 条已排序、带解释的推荐。
//
// excludeSlug 非空时该作品一定不出现在结果里（详情页场景）。
// 已读作品始终被剔除。过滤后候选为空时降级为热度兜底：
// 按浏览量取 TopN，不走打分链路，结果数为 min(limit, 目录大小)。
func (e *Engine) Recommend(
	ctx context.Context,
	userID, excludeSlug string,
	limit int,
) ([]core.Recommendation, error) {
	if e.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: catalog provider is required")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rctx := e.buildContext(ctx, userID, excludeSlug, limit)

	// 召回 + 过滤先跑，空候选时走热度兜底而不是空结果
	catalogNode := &recall.Catalog{Provider: e.Catalog}
	candidates, err := catalogNode.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	filters := []filter.Filter{&filter.HistoryFilter{}, &filter.ExcludeFilter{}}
	filters = append(filters, e.ExtraFilters...)
	filterNode := &filter.Node{Filters: filters}
	candidates, err = filterNode.Process(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return e.popularityFallback(ctx, rctx, limit)
	}

	pipe := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&rank.PersonalizedRank{Config: e.config(), Extractor: e.extractor()},
			&rerank.GenreDiversity{Limit: limit},
			&explain.Node{},
		},
	}
	ranked, err := pipe.Run(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}

	return assemble(ranked), nil
}

// buildContext 拉取协作方数据并物化请求上下文。
// 历史/评分存储出错按空数据降级：推荐宁可退到冷启动也不中断页面。
func (e *Engine) buildContext(
	ctx context.Context,
	userID, excludeSlug string,
	limit int,
) *core.RecommendContext {
	rctx := &core.RecommendContext{
		UserID: userID,
		Limit:  limit,
		Now:    e.now(),
	}

	if e.History != nil {
		if history, err := e.History.GetHistory(ctx, userID); err == nil {
			rctx.History = history
		}
	}
	if e.Ratings != nil {
		if ratings, err := e.Ratings.GetRatings(ctx, userID); err == nil {
			rctx.Ratings = ratings
		}
	}
	if excludeSlug != "" {
		rctx.Exclude = core.NewStringSet(excludeSlug)
	}

	return rctx
}

// popularityFallback 是空候选兜底：全目录按浏览量降序取 TopN，
// 不经过打分链路，只挂冷启动解释模板。
// 已读条目允许回流（宁可重推也不给空页），但调用方显式排除的 slug
// 在任何路径下都不出现，召回名额相应多取再剔除。
func (e *Engine) popularityFallback(
	ctx context.Context,
	rctx *core.RecommendContext,
	limit int,
) ([]core.Recommendation, error) {
	topK := limit
	if rctx != nil {
		topK += rctx.Exclude.Len()
	}
	popNode := &recall.Popularity{Provider: e.Catalog, TopK: topK}
	items, err := popNode.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	if rctx != nil && rctx.Exclude.Len() > 0 {
		kept := make([]*core.Item, 0, len(items))
		for _, it := range items {
			if !rctx.Exclude.Has(it.ID) {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	if len(items) > limit {
		items = items[:limit]
	}

	ex := e.extractor()
	cfg := e.config()
	for _, it := range items {
		if it.Vector == nil {
			it.Vector = ex.Extract(it.Manga)
		}
		// 展示层还是需要一个置信度，用归一化热度充当分数
		pop := float64(it.Vector.Popularity) / cfg.PopularityScale
		if pop > 1 {
			pop = 1
		}
		it.Score = pop
	}

	explainNode := &explain.Node{}
	items, err = explainNode.Process(ctx, rctx, items)
	if err != nil {
		return nil, err
	}

	return assemble(items), nil
}

// assemble 把链路载体转成展示层结果。
func assemble(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil || it.Manga == nil {
			continue
		}

		rec := core.Recommendation{
			Manga:  it.Manga,
			Score:  it.Score,
			Reason: it.LabelValue("reason"),
		}
		if c, ok := it.Meta["confidence"].(int); ok {
			rec.Confidence = c
		}

		breakdown := make(map[string]float64, len(it.Features))
		for k, v := range it.Features {
			breakdown[k] = v
		}
		if len(breakdown) > 0 {
			rec.Breakdown = breakdown
		}

		out = append(out, rec)
	}
	return out
}
