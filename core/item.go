package core

import "github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"

// Item 是推荐链路中的统一承载结构：作品、特征、分数、标签。
// Manga/Vector 是强类型领域载荷；Features 承载各策略子分；
// Labels 用于解释与观测（recall_source / rank_path / reason 等）。
type Item struct {
	ID       string // 作品 slug
	Score    float64
	Manga    *Manga
	Vector   *FeatureVector
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// NewMangaItem 由目录作品构建候选 Item。
func NewMangaItem(m *Manga) *Item {
	it := NewItem(m.Slug)
	it.Manga = m
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// LabelValue 读取 Label 的 Value，不存在时返回空串。
func (it *Item) LabelValue(key string) string {
	if it.Labels == nil {
		return ""
	}
	return it.Labels[key].Value
}
