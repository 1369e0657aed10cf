package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// 本文件把通用 KeyValueStore 适配成领域存储接口。
// key 结构：
//   目录：      {prefix}:catalog            Hash，field 为 slug，value 为 Manga JSON
//   阅读历史：  {prefix}:history:{userID}   JSON 数组
//   用户评分：  {prefix}:ratings:{userID}   Hash，field 为 slug，value 为 Rating JSON
// 反序列化失败的脏条目跳过，不让单条坏数据拖垮整个请求。

const defaultKeyPrefix = "manga"

// CatalogAdapter 把 KeyValueStore 适配为 core.CatalogProvider。
type CatalogAdapter struct {
	Store core.KeyValueStore

	// KeyPrefix 为空时取 "manga"
	KeyPrefix string
}

func NewCatalogAdapter(s core.KeyValueStore, keyPrefix string) *CatalogAdapter {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &CatalogAdapter{Store: s, KeyPrefix: keyPrefix}
}

var _ core.CatalogProvider = (*CatalogAdapter)(nil)

func (a *CatalogAdapter) key() string { return a.prefix() + ":catalog" }

func (a *CatalogAdapter) prefix() string {
	if a.KeyPrefix == "" {
		return defaultKeyPrefix
	}
	return a.KeyPrefix
}

// ListManga 读取全量目录，按 slug 排序返回（Hash 遍历无序，排序保证可复现）。
func (a *CatalogAdapter) ListManga(ctx context.Context) ([]*core.Manga, error) {
	fields, err := a.Store.HGetAll(ctx, a.key())
	if err != nil {
		return nil, err
	}

	out := make([]*core.Manga, 0, len(fields))
	for _, raw := range fields {
		var m core.Manga
		if json.Unmarshal(raw, &m) != nil || m.Slug == "" {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// SaveManga 写入/覆盖一部作品。
func (a *CatalogAdapter) SaveManga(ctx context.Context, m *core.Manga) error {
	if m == nil || m.Slug == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: manga without slug")
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return a.Store.HSet(ctx, a.key(), m.Slug, raw)
}

// HistoryAdapter 把 KeyValueStore 适配为 core.HistoryStore。
type HistoryAdapter struct {
	Store     core.KeyValueStore
	KeyPrefix string
}

func NewHistoryAdapter(s core.KeyValueStore, keyPrefix string) *HistoryAdapter {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &HistoryAdapter{Store: s, KeyPrefix: keyPrefix}
}

var _ core.HistoryStore = (*HistoryAdapter)(nil)

func (a *HistoryAdapter) key(userID string) string {
	prefix := a.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return prefix + ":history:" + userID
}

// GetHistory 读取用户阅读历史；key 不存在即空历史（冷启动），不是错误。
func (a *HistoryAdapter) GetHistory(ctx context.Context, userID string) ([]core.ReadingRecord, error) {
	raw, err := a.Store.Get(ctx, a.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []core.ReadingRecord
	if json.Unmarshal(raw, &records) != nil {
		return nil, nil
	}
	return records, nil
}

// SaveHistory 整体覆盖用户阅读历史。
func (a *HistoryAdapter) SaveHistory(ctx context.Context, userID string, records []core.ReadingRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return a.Store.Set(ctx, a.key(userID), raw)
}

// RatingAdapter 把 KeyValueStore 适配为 core.RatingStore。
type RatingAdapter struct {
	Store     core.KeyValueStore
	KeyPrefix string
}

func NewRatingAdapter(s core.KeyValueStore, keyPrefix string) *RatingAdapter {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RatingAdapter{Store: s, KeyPrefix: keyPrefix}
}

var _ core.RatingStore = (*RatingAdapter)(nil)

func (a *RatingAdapter) key(userID string) string {
	prefix := a.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return prefix + ":ratings:" + userID
}

// GetRatings 读取用户评分表；不存在即空表。
func (a *RatingAdapter) GetRatings(ctx context.Context, userID string) (map[string]core.Rating, error) {
	fields, err := a.Store.HGetAll(ctx, a.key(userID))
	if err != nil {
		return nil, err
	}

	out := make(map[string]core.Rating, len(fields))
	for slug, raw := range fields {
		var r core.Rating
		if json.Unmarshal(raw, &r) != nil {
			continue
		}
		out[slug] = r
	}
	return out, nil
}

// SetRating 写入用户对单部作品的评分。
func (a *RatingAdapter) SetRating(ctx context.Context, userID, slug string, r core.Rating) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return a.Store.HSet(ctx, a.key(userID), slug, raw)
}
