package engine

import (
	"context"
	"fmt"
)

// Greeting 产出一条按时间段问候、可选带上最近在读作品的文案。
// 历史存储出错按无历史降级，永远返回非空字符串。
func (e *Engine) Greeting(ctx context.Context, userID string) string {
	base := greetingForHour(e.now().Hour())

	if e.History == nil {
		return base + "!"
	}
	history, err := e.History.GetHistory(ctx, userID)
	if err != nil || len(history) == 0 {
		return base + "!"
	}

	// 时间戳最大的一条即最近在读
	latest := history[0]
	for _, rec := range history[1:] {
		if rec.Timestamp > latest.Timestamp {
			latest = rec
		}
	}
	if latest.Manga == nil || latest.Manga.Title == "" {
		return base + "!"
	}

	return fmt.Sprintf("%s! Ready to continue %s?", base, latest.Manga.Title)
}

func greetingForHour(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
