// Package profile 从单个用户的历史与评分派生偏好画像和时序行为信号。
// 两者都是输入的纯函数：每次请求重新计算，不持久化、不缓存。
package profile

import (
	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/feature"
)

// BuildPreference 聚合阅读历史与评分为偏好画像。
//
// 每条历史的贡献权重取阅读进度（缺失或非正时记 1）：读完 80% 的作品
// 对画像的影响是只翻了 8% 的十倍。题材/标签/受众权重按条目累加；
// 更新频率与章节数维护加权和，循环后除以总权重（总权重为 0 时保持 0）。
// AvgRating 独立于进度，是评分表的算术平均，空表取默认评分。
func BuildPreference(
	history []core.ReadingRecord,
	ratings map[string]core.Rating,
	ex *feature.Extractor,
) *core.PreferenceProfile {
	if ex == nil {
		ex = feature.NewExtractor(nil)
	}

	p := core.NewPreferenceProfile()

	var (
		totalWeight    float64
		sumUpdateFreq  float64
		sumChapterLen  float64
	)

	for _, rec := range history {
		if rec.Manga == nil {
			// 快照缺失的脏记录直接跳过，不报错
			continue
		}

		weight := rec.Progress
		if weight <= 0 {
			weight = 1
		}

		fv := ex.Extract(rec.Manga)
		for _, g := range fv.Genres.Values() {
			p.GenreWeights[g] += weight
		}
		for _, t := range fv.Tags.Values() {
			p.TagWeights[t] += weight
		}
		p.DemographicWeights[fv.Demographic] += weight

		sumUpdateFreq += fv.UpdateFrequency * weight
		sumChapterLen += float64(fv.ChapterCount) * weight
		totalWeight += weight
	}

	if totalWeight > 0 {
		p.PreferredUpdateFreq = sumUpdateFreq / totalWeight
		p.PreferredChapterLength = sumChapterLen / totalWeight
	}

	p.AvgRating = averageRating(ratings, ex)

	return p
}

func averageRating(ratings map[string]core.Rating, ex *feature.Extractor) float64 {
	if len(ratings) == 0 {
		cfg := ex.Config
		if cfg == nil {
			cfg = core.DefaultScoringConfig()
		}
		return cfg.DefaultRating
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Value
	}
	return sum / float64(len(ratings))
}
