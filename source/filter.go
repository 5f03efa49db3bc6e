package source

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/trainkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("row", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel env not initialized")
	}
	return celEnv, err
}

// Filter 是样本过滤器，使用 CEL (Common Expression Language) 表达式筛选标注样本。
//
// 表达式以 row 为根变量（CEL 标准语法）：
//   - 数值：row.reward > 0.0 / row.features.ctr >= 0.1
//   - 逻辑：row.reward > 0.0 && row.feed_request_id != ""
//   - 存在性：row.candidate_rank != null
//
// 示例：
//   - `row.reward >= 0.0` → 剔除负奖励样本
//   - `row.features.exposure_count > 3.0` → 只保留曝光充分的样本
//
// 空表达式的过滤器保留所有样本（默认关闭）。
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter 创建样本过滤器。表达式编译一次，之后可并发调用 Keep/Apply。
func NewFilter(expr string) (*Filter, error) {
	if expr == "" {
		return &Filter{}, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Keep 判断样本是否保留；表达式求值失败或返回非布尔值时返回错误。
func (f *Filter) Keep(row core.LabeledRow) (bool, error) {
	if f == nil || f.prg == nil {
		return true, nil
	}
	out, _, err := f.prg.Eval(buildRowInput(row))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；应使用 row.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Apply 过滤样本序列，保留表达式为真的样本，维持原有相对顺序。
func (f *Filter) Apply(rows []core.LabeledRow) ([]core.LabeledRow, error) {
	if f == nil || f.prg == nil {
		return rows, nil
	}
	out := make([]core.LabeledRow, 0, len(rows))
	for _, row := range rows {
		keep, err := f.Keep(row)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}

// buildRowInput 构建 CEL 表达式的输入数据
func buildRowInput(row core.LabeledRow) map[string]interface{} {
	features := make(map[string]interface{}, len(row.Features))
	for k, v := range row.Features {
		features[k] = v
	}

	// candidate_rank 缺省时暴露为 null，供 row.candidate_rank != null 判断
	var rank interface{}
	if row.CandidateRank != nil {
		rank = *row.CandidateRank
	}

	return map[string]interface{}{
		"row": map[string]interface{}{
			"feed_request_id": row.FeedRequestID,
			"features":        features,
			"reward":          row.Reward,
			"candidate_rank":  rank,
		},
	}
}
