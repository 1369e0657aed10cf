package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是 Label DSL 解释器，使用 CEL (Common Expression Language) 实现。
// 运营规则（例如按受众/题材排除候选）可以用表达式下发，不用改代码。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source.value == "catalog" / label.rank_path.value == "cold"
//   - 数值：item.score > 0.7 / item.popularity >= 5000.0
//   - 逻辑：item.demographic == "josei" && item.score > 0.5
//   - 包含："romance" in item.genres
//
// 示例：
//   - `item.demographic == "seinen"` → 受众为 seinen 的候选
//   - `label.rank_path.value == "cold" && item.score < 0.2` → 冷启动低分候选
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 注意：不存在的 key 直接访问会报错，存在性检查请用 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	for k, v := range e.item.Labels {
		labels[k] = map[string]any{
			"value":  v.Value,
			"source": v.Source,
		}
	}

	item := map[string]any{
		"id":       e.item.ID,
		"score":    e.item.Score,
		"features": e.item.Features,
		"meta":     e.item.Meta,
		"labels":   labels,
	}
	// 特征向量优先；链路早期（rank 之前）向量还没算出来时退回目录原始字段，
	// 所以 filter 阶段的规则同样能引用 rating/genres 等。
	if fv := e.item.Vector; fv != nil {
		item["genres"] = fv.Genres.Values()
		item["tags"] = fv.Tags.Values()
		item["demographic"] = fv.Demographic
		item["popularity"] = float64(fv.Popularity)
		item["rating"] = fv.Rating
		item["completed"] = fv.IsCompleted
	} else if m := e.item.Manga; m != nil {
		item["genres"] = core.ParseGenres(m.Genre).Values()
		item["popularity"] = float64(m.Views)
		item["rating"] = m.Rating
		item["completed"] = m.Completed()
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx["user_id"] = e.rctx.UserID
		rctx["limit"] = e.rctx.Limit
		rctx["history_size"] = len(e.rctx.History)
		rctx["cold_start"] = e.rctx.ColdStart()
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"rctx":  rctx,
	}
}
