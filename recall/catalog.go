package recall

import (
	"context"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
	"github.com/Enmxy/mangexis-vercel-sub000/pkg/utils"
)

// Catalog 是全量目录召回源：把内容目录整体作为候选集输出，
// 已读/排除的剔除交给下游 filter 阶段。
// 个性化引擎的候选池就是整个目录（调用方负责控制目录规模）。
type Catalog struct {
	// Provider 目录提供方
	Provider core.CatalogProvider

	// Mangas 内存 fallback，Provider 为空或出错时使用
	Mangas []*core.Manga
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	mangas := r.Mangas
	if r.Provider != nil {
		listed, err := r.Provider.ListManga(ctx)
		if err == nil && len(listed) > 0 {
			mangas = listed
		}
	}

	seen := make(core.StringSet, len(mangas))
	out := make([]*core.Item, 0, len(mangas))
	for _, m := range mangas {
		if m == nil || m.Slug == "" || seen.Has(m.Slug) {
			continue
		}
		seen.Add(m.Slug)
		it := core.NewMangaItem(m)
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
