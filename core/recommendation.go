package core

// Recommendation 是最终返回给展示层的一条推荐结果。
type Recommendation struct {
	Manga *Manga `json:"manga"`

	// Score 是五路策略加权后的总分，概念上落在 [0,1]，
	// 展示前不做硬裁剪，只在置信度换算时封顶。
	Score float64 `json:"score"`

	// Breakdown 是各策略子分（strategy:content 等），用于解释与调参。
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	// Reason 是人类可读的推荐理由（UI 的 aiReason）。
	Reason string `json:"aiReason"`

	// Confidence 是置信度百分比 = min(score×100, 99)（UI 的 aiConfidence）。
	Confidence int `json:"aiConfidence"`
}
