// Package rank 实现打分引擎：五路策略的热启动路径与热度驱动的冷启动路径。
package rank

import (
	"math"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// 相似度各分量权重。全部分量恒参与，权重和为 1.0；
// 属于经验值，调参时整体替换。
const (
	simGenreWeight  = 0.4  // 题材 Jaccard
	simTagWeight    = 0.2  // 标签 Jaccard
	simDemoBonus    = 0.15 // 受众一致加成
	simYearWeight   = 0.1  // 年代邻近
	simStatusBonus  = 0.05 // 连载状态一致加成
	simRatingWeight = 0.1  // 评分邻近
)

// Similarity 计算两个特征向量的加权混合相似度，落在 [0,1]。
//
// 题材/标签用 Jaccard，受众与连载状态是一致性加成，年代与评分按
// 距离线性衰减（10 年 / 5 分走到 0）。所有分量恒参与，总权重恒为 1，
// 除法前仍判零。
func Similarity(a, b *core.FeatureVector) float64 {
	if a == nil || b == nil {
		return 0
	}

	score := a.Genres.Jaccard(b.Genres) * simGenreWeight
	score += a.Tags.Jaccard(b.Tags) * simTagWeight
	if a.Demographic == b.Demographic {
		score += simDemoBonus
	}
	score += math.Max(0, 1-math.Abs(float64(a.Year-b.Year))/10) * simYearWeight
	if a.IsCompleted == b.IsCompleted {
		score += simStatusBonus
	}
	score += math.Max(0, 1-math.Abs(a.Rating-b.Rating)/5) * simRatingWeight

	total := simGenreWeight + simTagWeight + simDemoBonus +
		simYearWeight + simStatusBonus + simRatingWeight
	if total <= 0 {
		return 0
	}
	return score / total
}

// clamp01 把分值裁剪到 [0,1]。
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
