package core

import "fmt"

// ScoringConfig 是打分引擎的不可变配置：策略权重与启发式常数。
// 作为值对象传入 rank 节点，多套配置可以并存对比，不依赖包级可变状态。
//
// 权重与阶梯常数继承自线上版本，属于经验值而非推导结果，调参时整体替换。
type ScoringConfig struct {
	// 热启动五路策略权重，要求总和为 1.0。
	ContentWeight       float64 // 内容相似
	PreferenceWeight    float64 // 偏好匹配
	CollaborativeWeight float64 // 协同信号
	TemporalWeight      float64 // 时序行为
	QualityWeight       float64 // 质量/热度

	// 冷启动权重（历史为空时的简化打分），要求总和为 1.0。
	ColdPopularityWeight float64
	ColdRatingWeight     float64
	ColdUpdateFreqWeight float64
	ColdOngoingBonus     float64 // 连载中加成

	// GenreOverlapWeight 是协同信号中每个题材重合贡献的分值。
	GenreOverlapWeight float64

	// PopularityScale 是浏览量归一化基准：min(views/scale, 1)。
	PopularityScale float64

	// UpdateFreqSteps 是更新频率的阶梯映射：平均更新间隔 ≤ MaxGapDays 天
	// 取第一个命中的 Frequency，全部未命中取 UpdateFreqFloor。
	UpdateFreqSteps []UpdateFreqStep
	UpdateFreqFloor float64

	// 缺失字段的默认值。
	DefaultRating float64
	DefaultYear   int
}

// UpdateFreqStep 是更新频率阶梯的一档。
type UpdateFreqStep struct {
	MaxGapDays float64
	Frequency  float64
}

// DefaultScoringConfig 返回线上默认配置。
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		ContentWeight:       0.35,
		PreferenceWeight:    0.25,
		CollaborativeWeight: 0.20,
		TemporalWeight:      0.10,
		QualityWeight:       0.10,

		ColdPopularityWeight: 0.40,
		ColdRatingWeight:     0.30,
		ColdUpdateFreqWeight: 0.15,
		ColdOngoingBonus:     0.15,

		GenreOverlapWeight: 0.2,
		PopularityScale:    10000,

		UpdateFreqSteps: []UpdateFreqStep{
			{MaxGapDays: 1, Frequency: 1.0},
			{MaxGapDays: 7, Frequency: 0.7},
			{MaxGapDays: 30, Frequency: 0.3},
		},
		UpdateFreqFloor: 0.1,

		DefaultRating: 4.0,
		DefaultYear:   2020,
	}
}

const weightEpsilon = 1e-9

// Validate 校验两组策略权重均归一。
func (c *ScoringConfig) Validate() error {
	warm := c.ContentWeight + c.PreferenceWeight + c.CollaborativeWeight +
		c.TemporalWeight + c.QualityWeight
	if diff := warm - 1.0; diff > weightEpsilon || diff < -weightEpsilon {
		return fmt.Errorf("scoring config: warm-start weights sum to %v, want 1.0", warm)
	}
	cold := c.ColdPopularityWeight + c.ColdRatingWeight +
		c.ColdUpdateFreqWeight + c.ColdOngoingBonus
	if diff := cold - 1.0; diff > weightEpsilon || diff < -weightEpsilon {
		return fmt.Errorf("scoring config: cold-start weights sum to %v, want 1.0", cold)
	}
	return nil
}

// UpdateFrequencyFor 将平均更新间隔（天）映射为 [0,1] 的频率分。
func (c *ScoringConfig) UpdateFrequencyFor(meanGapDays float64) float64 {
	for _, step := range c.UpdateFreqSteps {
		if meanGapDays <= step.MaxGapDays {
			return step.Frequency
		}
	}
	return c.UpdateFreqFloor
}
