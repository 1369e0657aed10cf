package rank

import (
	"context"
	"math"
	"sort"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/feature"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
	"github.com/Enmxy/mangexis-vercel-sub000/profile"
)

// 各策略子分写入 Item.Features 的 key，供重排/解释/观测读取。
const (
	StrategyContent       = "strategy:content"
	StrategyPreference    = "strategy:preference"
	StrategyCollaborative = "strategy:collaborative"
	StrategyTemporal      = "strategy:temporal"
	StrategyQuality       = "strategy:quality"

	StrategyPopularity = "strategy:popularity"
	StrategyRating     = "strategy:rating"
	StrategyUpdateFreq = "strategy:update_freq"
	StrategyOngoing    = "strategy:ongoing"
)

// rank_path Label 的取值。
const (
	PathWarm = "warm"
	PathCold = "cold"
)

// 时序加分与偏好匹配的阈值，承接线上口径。
const (
	bingeThreshold      = 2    // bingeBehavior 超过该值视为刷量用户
	bingeChapterFloor   = 20   // 刷量加分要求的最少章节数
	completionThreshold = 0.7  // 完读率阈值
	updateFreqThreshold = 0.7  // 高频更新阈值
	preferenceMinRead   = 50   // 参与偏好匹配的历史最低进度
	preferenceTopK      = 5    // 偏好匹配参考的历史条数
)

// PersonalizedRank 是打分引擎节点：一次 Process 调用内二选一地走
// 热启动或冷启动路径（当且仅当历史为空走冷启动），随后按总分稳定降序。
//
// 热启动把五路信号按 ScoringConfig 的权重加和：内容相似、偏好匹配、
// 协同信号、时序行为、质量热度；冷启动只看热度/评分/更新频率/连载状态，
// 不触碰偏好画像、时序分析和协同信号。
//
// 并列分按输入顺序稳定保持（sort.SliceStable，无二级排序键），
// 这是测试可复现性的一部分，不要改成不稳定排序。
type PersonalizedRank struct {
	// Config 策略权重与启发式常数，nil 时使用线上默认配置
	Config *core.ScoringConfig

	// Extractor 特征抽取器，nil 时按 Config 新建
	Extractor *feature.Extractor
}

func (n *PersonalizedRank) Name() string {
	return "rank.personalized"
}

func (n *PersonalizedRank) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *PersonalizedRank) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	cfg := n.Config
	if cfg == nil {
		cfg = core.DefaultScoringConfig()
	}
	ex := n.Extractor
	if ex == nil {
		ex = feature.NewExtractor(cfg)
	}

	// 候选统一补齐特征向量；目录数据不被修改，向量只挂在链路载体上。
	for _, it := range items {
		if it != nil && it.Vector == nil {
			it.Vector = ex.Extract(it.Manga)
		}
	}

	if rctx == nil || rctx.ColdStart() {
		n.scoreCold(rctx, items, cfg)
	} else {
		n.scoreWarm(rctx, items, cfg, ex)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	return items, nil
}

// scoreCold 冷启动路径：只用物品侧信号，简化权重。
func (n *PersonalizedRank) scoreCold(
	_ *core.RecommendContext,
	items []*core.Item,
	cfg *core.ScoringConfig,
) {
	for _, it := range items {
		if it == nil {
			continue
		}
		fv := it.Vector

		popularity := math.Min(float64(fv.Popularity)/cfg.PopularityScale, 1)
		rating := fv.Rating / 5
		ongoing := 0.0
		if !fv.IsCompleted {
			ongoing = 1.0
		}

		it.Features[StrategyPopularity] = popularity
		it.Features[StrategyRating] = rating
		it.Features[StrategyUpdateFreq] = fv.UpdateFrequency
		it.Features[StrategyOngoing] = ongoing

		it.Score = popularity*cfg.ColdPopularityWeight +
			rating*cfg.ColdRatingWeight +
			fv.UpdateFrequency*cfg.ColdUpdateFreqWeight +
			ongoing*cfg.ColdOngoingBonus

		it.PutLabel("rank_path", utils.Label{Value: PathCold, Source: "rank"})
	}
}

// scoreWarm 热启动路径：画像/时序/协同信号各算一次，随后逐候选组合。
func (n *PersonalizedRank) scoreWarm(
	rctx *core.RecommendContext,
	items []*core.Item,
	cfg *core.ScoringConfig,
	ex *feature.Extractor,
) {
	pref := profile.BuildPreference(rctx.History, rctx.Ratings, ex)
	pattern := profile.AnalyzeTemporal(rctx.History, rctx.Timestamp())
	collab := CollaborativeSignal(rctx.History, items, cfg)
	anchors := preferenceAnchors(rctx.History, ex)

	// 派生的用户级信号透传给后续节点（解释层要用）。
	rctx.PutParam("binge_behavior", pattern.BingeBehavior)
	rctx.PutParam("completion_rate", pattern.CompletionRate)

	for _, it := range items {
		if it == nil {
			continue
		}
		fv := it.Vector

		content := n.contentScore(pref, fv, it)
		preference := anchorSimilarity(anchors, fv)
		collaborative := collab[it.ID]
		temporal := temporalScore(pattern, fv)
		quality := fv.Rating/5*0.6 + math.Min(float64(fv.Popularity)/cfg.PopularityScale, 1)*0.4

		it.Features[StrategyContent] = content
		it.Features[StrategyPreference] = preference
		it.Features[StrategyCollaborative] = collaborative
		it.Features[StrategyTemporal] = temporal
		it.Features[StrategyQuality] = quality

		it.Score = content*cfg.ContentWeight +
			preference*cfg.PreferenceWeight +
			collaborative*cfg.CollaborativeWeight +
			temporal*cfg.TemporalWeight +
			quality*cfg.QualityWeight

		it.PutLabel("rank_path", utils.Label{Value: PathWarm, Source: "rank"})
	}
}

// contentScore 计算内容相似子分：题材/标签/受众三类画像权重的加权和，
// 除以 3 后裁剪到 [0,1]。同时把画像权重最高的候选题材留痕到 top_genre
// 标签（并列取字典序最小），解释层直接取用。
func (n *PersonalizedRank) contentScore(
	pref *core.PreferenceProfile,
	fv *core.FeatureVector,
	it *core.Item,
) float64 {
	var genreSum float64
	topGenre := ""
	topWeight := -1.0
	for _, g := range fv.Genres.Values() {
		w := pref.GenreWeights[g]
		genreSum += w
		if w > topWeight {
			topWeight = w
			topGenre = g
		}
	}
	if topGenre != "" {
		it.PutLabel("top_genre", utils.Label{Value: topGenre, Source: "rank"})
	}

	var tagSum float64
	for _, t := range fv.Tags.Values() {
		tagSum += pref.TagWeights[t]
	}

	demoWeight := pref.DemographicWeights[fv.Demographic]

	return clamp01((genreSum*0.4 + tagSum*0.3 + demoWeight*0.3) / 3)
}

// preferenceAnchors 取进度 > 50 的历史按进度稳定降序，前 5 条的特征向量
// 作为偏好匹配的参照。
func preferenceAnchors(history []core.ReadingRecord, ex *feature.Extractor) []*core.FeatureVector {
	read := make([]core.ReadingRecord, 0, len(history))
	for _, rec := range history {
		if rec.Progress > preferenceMinRead && rec.Manga != nil {
			read = append(read, rec)
		}
	}
	sort.SliceStable(read, func(i, j int) bool {
		return read[i].Progress > read[j].Progress
	})
	if len(read) > preferenceTopK {
		read = read[:preferenceTopK]
	}

	anchors := make([]*core.FeatureVector, 0, len(read))
	for _, rec := range read {
		anchors = append(anchors, ex.Extract(rec.Manga))
	}
	return anchors
}

// anchorSimilarity 返回候选与各参照向量相似度的均值，无参照时记 0。
func anchorSimilarity(anchors []*core.FeatureVector, fv *core.FeatureVector) float64 {
	if len(anchors) == 0 {
		return 0
	}
	var sum float64
	for _, a := range anchors {
		sum += Similarity(fv, a)
	}
	return sum / float64(len(anchors))
}

// temporalScore 按行为信号做阶梯加分，合计裁剪到 [0,1]。
func temporalScore(pattern *core.TemporalPattern, fv *core.FeatureVector) float64 {
	var score float64
	if pattern.BingeBehavior > bingeThreshold && fv.ChapterCount > bingeChapterFloor {
		score += 0.5
	}
	if pattern.CompletionRate > completionThreshold && fv.IsCompleted {
		score += 0.3
	}
	if fv.UpdateFrequency > updateFreqThreshold {
		score += 0.2
	}
	return clamp01(score)
}
