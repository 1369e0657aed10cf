package store

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// StaticCatalog 是内存切片实现的 CatalogProvider，用于测试与原型。
type StaticCatalog struct {
	Mangas []*core.Manga
}

var _ core.CatalogProvider = (*StaticCatalog)(nil)

func (c *StaticCatalog) ListManga(_ context.Context) ([]*core.Manga, error) {
	return c.Mangas, nil
}

// StaticHistory 是内存实现的 HistoryStore，所有用户共享同一份历史。
type StaticHistory struct {
	Records []core.ReadingRecord
}

var _ core.HistoryStore = (*StaticHistory)(nil)

func (h *StaticHistory) GetHistory(_ context.Context, _ string) ([]core.ReadingRecord, error) {
	return h.Records, nil
}

// StaticRatings 是内存实现的 RatingStore。
type StaticRatings struct {
	Ratings map[string]core.Rating
}

var _ core.RatingStore = (*StaticRatings)(nil)

func (r *StaticRatings) GetRatings(_ context.Context, _ string) (map[string]core.Rating, error) {
	return r.Ratings, nil
}
