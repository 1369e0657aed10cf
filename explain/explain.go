// Package explain 为每条推荐生成人类可读的理由与置信度。
package explain

import (
	"context"
	"math"
	"strings"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/conv"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
	"github.com/Enmxy/mangexis-vercel-sub000/rank"
)

// 次要理由的阈值，与打分口径保持一致。
const (
	highRating      = 4.5
	highPopularity  = 5000
	highUpdateFreq  = 0.7
	longSeriesFloor = 20
)

// reasonSeparator 连接主理由与次要理由。
const reasonSeparator = " · "

// fallbackReason 是没有任何理由达标时的兜底文案。
const fallbackReason = "picked for you"

// Node 是解释生成节点（PostProcess 阶段）。
//
// 热启动：取内容/偏好/协同三路子分的最大者定主理由，再从
// 高评分/高热度/高频更新/适合刷量的长篇里至多补一条次要理由。
// 冷启动走独立的简化模板，只看物品侧阈值。
// 结果写入 reason 标签与 Meta["confidence"]，由引擎门面装配成
// aiReason / aiConfidence。
type Node struct{}

func (n *Node) Name() string {
	return "postprocess.explain"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *Node) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil {
			continue
		}

		var reason string
		if it.LabelValue("rank_path") == rank.PathWarm {
			reason = warmReason(it, rctx)
		} else {
			reason = coldReason(it)
		}

		it.PutLabel("reason", utils.Label{Value: reason, Source: "explain"})
		it.Meta["confidence"] = Confidence(it.Score)
	}
	return items, nil
}

// Confidence 把总分换算为置信度百分比，封顶 99。
func Confidence(score float64) int {
	if score < 0 {
		return 0
	}
	return int(math.Min(score*100, 99))
}

func warmReason(it *core.Item, rctx *core.RecommendContext) string {
	primary := primaryReason(it)
	secondary := secondaryReason(it, rctx)

	switch {
	case primary == "" && secondary == "":
		return fallbackReason
	case primary == "":
		return secondary
	case secondary == "":
		return primary
	default:
		return primary + reasonSeparator + secondary
	}
}

// primaryReason 按三路个性化子分的最大者选主理由。
// 子分全为 0 时没有个性化依据，主理由留空。
func primaryReason(it *core.Item) string {
	content := it.Features[rank.StrategyContent]
	preference := it.Features[rank.StrategyPreference]
	collaborative := it.Features[rank.StrategyCollaborative]

	best := math.Max(content, math.Max(preference, collaborative))
	if best <= 0 {
		return ""
	}

	switch best {
	case content:
		if genre := it.LabelValue("top_genre"); genre != "" {
			return "because you like " + genre
		}
		return "matches your favorite genres"
	case preference:
		return "similar to titles you enjoyed"
	default:
		return "readers with similar taste love this"
	}
}

// secondaryReason 至多补一条，按固定顺序取第一条达标的。
func secondaryReason(it *core.Item, rctx *core.RecommendContext) string {
	fv := it.Vector
	if fv == nil {
		return ""
	}

	if fv.Rating >= highRating {
		return "highly rated"
	}
	if fv.Popularity > highPopularity {
		return "popular right now"
	}
	if fv.UpdateFrequency > highUpdateFreq {
		return "updated frequently"
	}

	binge := 0.0
	if rctx != nil {
		binge, _ = conv.ToFloat64(rctx.Params["binge_behavior"])
	}
	if binge > 2 && fv.ChapterCount > longSeriesFloor {
		return "a long series to binge"
	}

	return ""
}

// coldReason 是冷启动/热度兜底的简化模板，只看物品侧阈值。
func coldReason(it *core.Item) string {
	fv := it.Vector
	if fv == nil {
		return fallbackReason
	}

	var parts []string
	if fv.Popularity > highPopularity {
		parts = append(parts, "trending now")
	}
	if fv.Rating >= highRating {
		parts = append(parts, "top rated")
	}
	if len(parts) == 0 && fv.UpdateFrequency > highUpdateFreq {
		parts = append(parts, "fresh chapters every week")
	}
	if len(parts) == 0 && fv.ChapterCount > longSeriesFloor {
		parts = append(parts, "plenty of chapters to read")
	}
	if len(parts) == 0 {
		return "popular pick for new readers"
	}
	return strings.Join(parts, reasonSeparator)
}
