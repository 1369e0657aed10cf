package profile

import (
	"sort"
	"time"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// recentWindow 是刷量（binge）判定参与的最近交互条数。
const recentWindow = 10

// completionThreshold 是视为"读完"的进度下限。
const completionThreshold = 90

// AnalyzeTemporal 从历史时间戳派生行为信号。
// now 由调用方显式传入（引擎取请求时间基准），计算本身不读墙钟，
// 相同输入必得相同输出。
func AnalyzeTemporal(history []core.ReadingRecord, now time.Time) *core.TemporalPattern {
	p := &core.TemporalPattern{}
	if len(history) == 0 {
		return p
	}

	day := now.Add(-24 * time.Hour).Unix()
	week := now.Add(-7 * 24 * time.Hour).Unix()
	for _, rec := range history {
		if rec.Timestamp >= day {
			p.Last24h++
		}
		if rec.Timestamp >= week {
			p.Last7d++
		}
	}

	// 最近 10 次交互：次数 ÷ 不同作品数（≥1 防除零）。
	// 比值明显大于 1 表示在少量作品上反复消费。
	recent := make([]core.ReadingRecord, len(history))
	copy(recent, history)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp > recent[j].Timestamp
	})
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}
	distinct := make(core.StringSet, len(recent))
	for _, rec := range recent {
		if rec.Slug != "" {
			distinct[rec.Slug] = struct{}{}
		}
	}
	divisor := distinct.Len()
	if divisor < 1 {
		divisor = 1
	}
	p.BingeBehavior = float64(len(recent)) / float64(divisor)

	completed := 0
	for _, rec := range history {
		if rec.Progress >= completionThreshold {
			completed++
		}
	}
	denom := len(history)
	if denom < 1 {
		denom = 1
	}
	p.CompletionRate = float64(completed) / float64(denom)

	return p
}
