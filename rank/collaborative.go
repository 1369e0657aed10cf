package rank

import "github.com/Enmxy/mangexis-vercel-sub000/core"

// CollaborativeSignal 用单用户自身的题材共现近似协同过滤信号。
//
// 真正的协同过滤需要多用户行为矩阵（"喜欢你所喜欢的人还喜欢什么"）；
// 这里没有跨用户数据，用"候选与历史条目的题材重合度"做同一方向的代理：
// 对每个未读候选，累加它与每条历史的题材交集数 × GenreOverlapWeight，
// 总和裁剪到 [0,1]。口径上保留这个限制，不伪装成多用户 CF。
func CollaborativeSignal(
	history []core.ReadingRecord,
	items []*core.Item,
	cfg *core.ScoringConfig,
) map[string]float64 {
	if cfg == nil {
		cfg = core.DefaultScoringConfig()
	}

	historyGenres := make([]core.StringSet, 0, len(history))
	read := make(core.StringSet, len(history))
	for _, rec := range history {
		if rec.Slug != "" {
			read[rec.Slug] = struct{}{}
		}
		if rec.Manga != nil {
			historyGenres = append(historyGenres, core.ParseGenres(rec.Manga.Genre))
		}
	}

	scores := make(map[string]float64, len(items))
	for _, it := range items {
		if it == nil || read.Has(it.ID) {
			continue
		}
		var genres core.StringSet
		if it.Vector != nil {
			genres = it.Vector.Genres
		} else if it.Manga != nil {
			genres = core.ParseGenres(it.Manga.Genre)
		}
		if genres.Len() == 0 {
			scores[it.ID] = 0
			continue
		}

		var affinity float64
		for _, hg := range historyGenres {
			affinity += float64(genres.Overlap(hg)) * cfg.GenreOverlapWeight
		}
		scores[it.ID] = clamp01(affinity)
	}

	return scores
}
