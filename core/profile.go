package core

// PreferenceProfile 是由阅读历史 + 评分聚合出的用户偏好画像。
// 每次请求按当时输入重新计算，是输入的纯函数，不落盘、不缓存。
//
// 题材/标签/受众的权重是按阅读进度加权的累计值（读得越多贡献越大），
// 刻意不归一化，保持与线上打分口径一致；标量字段则除以总权重取均值。
type PreferenceProfile struct {
	// GenreWeights 题材 → 累计权重
	GenreWeights map[string]float64

	// TagWeights 语义标签 → 累计权重
	TagWeights map[string]float64

	// DemographicWeights 受众分层 → 累计权重
	DemographicWeights map[string]float64

	// AvgRating 是评分表的算术平均，与阅读进度无关；无评分时取默认值。
	AvgRating float64

	// PreferredUpdateFreq 是进度加权的更新频率均值。
	PreferredUpdateFreq float64

	// PreferredChapterLength 是进度加权的章节数均值。
	PreferredChapterLength float64
}

// NewPreferenceProfile 创建空画像。
func NewPreferenceProfile() *PreferenceProfile {
	return &PreferenceProfile{
		GenreWeights:       make(map[string]float64),
		TagWeights:         make(map[string]float64),
		DemographicWeights: make(map[string]float64),
	}
}

// GenreWeight 读取题材权重，缺省 0。
func (p *PreferenceProfile) GenreWeight(genre string) float64 {
	if p == nil || p.GenreWeights == nil {
		return 0
	}
	return p.GenreWeights[genre]
}

// TemporalPattern 是从历史时间戳派生的行为信号。
type TemporalPattern struct {
	// Last24h / Last7d 是最近 24 小时 / 7 天内的交互次数。
	Last24h int
	Last7d  int

	// BingeBehavior = 最近 10 次交互数 ÷ 其中不同作品数（≥1 防除零）。
	// 大于 ~2 说明用户在少量作品上反复快速消费。
	BingeBehavior float64

	// CompletionRate 是全部历史中进度 ≥ 90 的占比。
	CompletionRate float64
}
