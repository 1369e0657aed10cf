// Package config 提供从 YAML/JSON 配置装配推荐 Pipeline 的默认节点工厂。
package config

import (
	"fmt"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/explain"
	"github.com/Enmxy/mangexis-vercel-sub000/feature"
	"github.com/Enmxy/mangexis-vercel-sub000/filter"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/conv"
	"github.com/Enmxy/mangexis-vercel-sub000/rank"
	"github.com/Enmxy/mangexis-vercel-sub000/recall"
	"github.com/Enmxy/mangexis-vercel-sub000/rerank"
)

// Deps 是工厂无法从配置文件里拿到的运行时依赖。
type Deps struct {
	// Catalog 目录提供方，recall.catalog / recall.popularity 需要
	Catalog core.CatalogProvider

	// Store 可选的 KV 存储，recall.popularity 优先读其 zset 榜单
	Store core.KeyValueStore
}

// DefaultFactory 注册全部内置节点类型并返回工厂。
//
// 支持的 type 取值：
//
//	recall.catalog recall.popularity recall.fanout
//	filter
//	rank.personalized
//	rerank.diversity rerank.topn
//	postprocess.explain
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.catalog", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Catalog{Provider: deps.Catalog}, nil
	})

	f.Register("recall.popularity", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Popularity{
			Provider: deps.Catalog,
			Store:    deps.Store,
			Key:      conv.ConfigGet(cfg, "key", ""),
			TopK:     int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	})

	f.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		sourceNames := conv.SliceAnyToString(cfg["sources"])
		if len(sourceNames) == 0 {
			return nil, fmt.Errorf("recall.fanout: sources is required")
		}
		fanout := &recall.Fanout{Dedup: true}
		if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
			fanout.Timeout = time.Duration(ms) * time.Millisecond
		}
		fanout.MaxConcurrent = int(conv.ConfigGetInt64(cfg, "max_concurrent", 0))
		for _, name := range sourceNames {
			switch name {
			case "catalog":
				fanout.Sources = append(fanout.Sources, &recall.Catalog{Provider: deps.Catalog})
			case "popularity":
				fanout.Sources = append(fanout.Sources, &recall.Popularity{Provider: deps.Catalog, Store: deps.Store})
			default:
				return nil, fmt.Errorf("recall.fanout: unknown source %q", name)
			}
		}
		return fanout, nil
	})

	f.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		node := &filter.Node{}
		if conv.ConfigGet(cfg, "history", true) {
			node.Filters = append(node.Filters, &filter.HistoryFilter{})
		}
		if conv.ConfigGet(cfg, "exclude", true) {
			node.Filters = append(node.Filters, &filter.ExcludeFilter{})
		}
		if expr := conv.ConfigGet(cfg, "rule", ""); expr != "" {
			node.Filters = append(node.Filters, &filter.RuleFilter{Expression: expr})
		}
		return node, nil
	})

	f.Register("rank.personalized", func(cfg map[string]any) (pipeline.Node, error) {
		sc := scoringConfig(cfg)
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("rank.personalized: %w", err)
		}
		return &rank.PersonalizedRank{
			Config:    sc,
			Extractor: feature.NewExtractor(sc),
		}, nil
	})

	f.Register("rerank.diversity", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.GenreDiversity{
			Limit:   int(conv.ConfigGetInt64(cfg, "limit", 0)),
			MinPick: int(conv.ConfigGetInt64(cfg, "min_pick", 0)),
		}, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopN{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
	})

	f.Register("postprocess.explain", func(cfg map[string]any) (pipeline.Node, error) {
		return &explain.Node{}, nil
	})

	return f
}

// scoringConfig 在线上默认之上套用配置文件 weights 子表里的权重覆盖。
func scoringConfig(cfg map[string]any) *core.ScoringConfig {
	sc := core.DefaultScoringConfig()
	if cfg == nil {
		return sc
	}
	weightsMap, ok := cfg["weights"].(map[string]any)
	if !ok {
		return sc
	}
	weights := conv.MapToFloat64(weightsMap)
	override := func(key string, dst *float64) {
		if v, ok := weights[key]; ok {
			*dst = v
		}
	}
	override("content", &sc.ContentWeight)
	override("preference", &sc.PreferenceWeight)
	override("collaborative", &sc.CollaborativeWeight)
	override("temporal", &sc.TemporalWeight)
	override("quality", &sc.QualityWeight)
	override("cold_popularity", &sc.ColdPopularityWeight)
	override("cold_rating", &sc.ColdRatingWeight)
	override("cold_update_freq", &sc.ColdUpdateFreqWeight)
	override("cold_ongoing_bonus", &sc.ColdOngoingBonus)
	return sc
}
