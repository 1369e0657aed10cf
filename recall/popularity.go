package recall

import (
	"context"
	"sort"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
)

// Popularity 是热度召回源：按浏览量降序产出 TopK 候选。
// 空候选兜底和冷启动场景都用它。
//
// 榜单顺序来源优先级：
//   - Store 中的有序集合（离线任务维护的热度榜，member 为 slug）
//   - 目录按 Views 稳定降序（并列保持目录顺序）
type Popularity struct {
	// Provider 目录提供方（作品载荷始终从目录取）
	Provider core.CatalogProvider

	// Mangas 内存 fallback
	Mangas []*core.Manga

	// Store 可选的热度榜存储
	Store core.KeyValueStore

	// Key 热度榜的有序集合 key，例如 "hot:manga"
	Key string

	// TopK 返回的候选数量，<= 0 时取 20
	TopK int
}

func (r *Popularity) Name() string        { return "recall.popularity" }
func (r *Popularity) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Popularity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Popularity) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	mangas := r.Mangas
	if r.Provider != nil {
		listed, err := r.Provider.ListManga(ctx)
		if err == nil && len(listed) > 0 {
			mangas = listed
		}
	}
	bySlug := make(map[string]*core.Manga, len(mangas))
	for _, m := range mangas {
		if m != nil && m.Slug != "" {
			bySlug[m.Slug] = m
		}
	}

	// 优先用离线热度榜的顺序
	if r.Store != nil && r.Key != "" {
		members, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
		if err == nil && len(members) > 0 {
			out := make([]*core.Item, 0, len(members))
			for _, slug := range members {
				m, ok := bySlug[slug]
				if !ok {
					continue
				}
				it := core.NewMangaItem(m)
				it.PutLabel("recall_source", utils.Label{Value: "popularity", Source: "recall"})
				out = append(out, it)
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}

	// 目录按浏览量稳定降序
	ranked := make([]*core.Manga, 0, len(mangas))
	for _, m := range mangas {
		if m != nil && m.Slug != "" {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]*core.Item, 0, len(ranked))
	for _, m := range ranked {
		it := core.NewMangaItem(m)
		it.PutLabel("recall_source", utils.Label{Value: "popularity", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
