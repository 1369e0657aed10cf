package feature

import (
	"sort"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// Extractor 把目录中的一部作品转换为归一化特征向量。
//
// 脏数据容忍：缺失的评分/年份落默认值，章节/题材缺失按空处理，
// 任何输入都不会报错。输出是输入的纯函数，不修改原始目录数据。
type Extractor struct {
	// Tags 语义标签分类器，nil 时使用默认关键词表
	Tags *TagClassifier

	// Demographics 受众分层分类器，nil 时使用默认规则
	Demographics *DemographicClassifier

	// Config 提供默认值与更新频率阶梯，nil 时使用线上默认配置
	Config *core.ScoringConfig
}

// NewExtractor 创建特征抽取器，opts 均可缺省。
func NewExtractor(cfg *core.ScoringConfig) *Extractor {
	if cfg == nil {
		cfg = core.DefaultScoringConfig()
	}
	return &Extractor{
		Tags:         NewTagClassifier(nil),
		Demographics: NewDemographicClassifier(nil),
		Config:       cfg,
	}
}

func (e *Extractor) config() *core.ScoringConfig {
	if e.Config == nil {
		return core.DefaultScoringConfig()
	}
	return e.Config
}

// Extract 计算一部作品的特征向量。m 为 nil 时返回空向量。
func (e *Extractor) Extract(m *core.Manga) *core.FeatureVector {
	cfg := e.config()
	fv := &core.FeatureVector{
		Genres:      core.NewStringSet(),
		Tags:        core.NewStringSet(),
		Demographic: core.DemographicGeneral,
		Year:        cfg.DefaultYear,
		Rating:      cfg.DefaultRating,
	}
	if m == nil {
		return fv
	}

	fv.Genres = core.ParseGenres(m.Genre)
	if tc := e.Tags; tc != nil {
		fv.Tags = tc.Classify(m.Description)
	}
	if dc := e.Demographics; dc != nil {
		fv.Demographic = dc.Classify(m.Genre, m.Description)
	}

	if m.Year != 0 {
		fv.Year = m.Year
	}
	if m.Rating != 0 {
		fv.Rating = m.Rating
	}
	fv.Popularity = m.Views
	fv.ChapterCount = len(m.Chapters)
	fv.IsCompleted = m.Completed()
	fv.UpdateFrequency = e.updateFrequency(m.Chapters)

	return fv
}

// updateFrequency 由章节发布日期估算更新频率。
// 取有日期的章节按时间降序排列，少于 2 个时记 0；
// 否则求相邻发布间隔的均值（天），再过配置的阶梯映射到 [0,1]。
func (e *Extractor) updateFrequency(chapters []core.Chapter) float64 {
	dates := make([]time.Time, 0, len(chapters))
	for _, ch := range chapters {
		if !ch.PublishedAt.IsZero() {
			dates = append(dates, ch.PublishedAt)
		}
	}
	if len(dates) < 2 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	var totalGap float64
	for i := 0; i < len(dates)-1; i++ {
		totalGap += dates[i].Sub(dates[i+1]).Hours() / 24
	}
	meanGapDays := totalGap / float64(len(dates)-1)

	return e.config().UpdateFrequencyFor(meanGapDays)
}
