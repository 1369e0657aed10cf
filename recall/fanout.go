package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
	"github.com/Enmxy/mangexis-vercel-sub000/pipeline"
)

// Fanout 是召回编排节点：并发执行多个召回源并合并结果。
// 结果按 Sources 顺序拼接（与并发完成顺序无关），Dedup 开启时
// 同一 slug 保留先出现的那份，因此 Sources 顺序即优先级。
// 输出顺序与输入确定对应，重复调用结果可复现。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间，0 表示不限制
	MaxConcurrent int           // 最大并发数，0 表示不限制
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	results := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			runCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(runCtx, rctx)
			if err != nil {
				// 单路召回失败不拖垮整个请求，该路记空
				return nil
			}
			results[idx] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]*core.Item, 0, total)
	seen := make(core.StringSet, total)
	for _, r := range results {
		for _, it := range r {
			if it == nil {
				continue
			}
			if n.Dedup {
				if seen.Has(it.ID) {
					continue
				}
				seen.Add(it.ID)
			}
			out = append(out, it)
		}
	}
	return out, nil
}
