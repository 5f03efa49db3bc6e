// Package transcode 把训练协作方导出的树集成转换为运行时决策树格式。
// 转换是纯结构性的 1:1 转码：不重排、不剪枝、不做数值变换，
// 只做类型收窄，保证决策语义与训练库导出完全一致。
package transcode

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/pkg/conv"
)

// fallbackObjective 是导出中缺少目标函数名时的替代值。
// 目标函数名的兜底只发生在协作方边界（这里），下游不再替换。
const fallbackObjective = "rank:pairwise"

// exportTreeJSON 对应 XGBoost save_model 导出中单棵树的平行数组。
// default_left 在不同版本里可能是 bool 数组或 0/1 整数数组，统一按 any 收。
type exportTreeJSON struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []any     `json:"default_left"`
	BaseWeights     []float64 `json:"base_weights"`
}

// exportJSON 对应 XGBoost save_model 的原生 JSON 结构（只取需要的字段）。
type exportJSON struct {
	Learner struct {
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
		LearnerModelParam struct {
			// base_score 在导出中是字符串（如 "5E-1"）
			BaseScore any `json:"base_score"`
		} `json:"learner_model_param"`
		GradientBooster struct {
			Model struct {
				Trees []exportTreeJSON `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

// ParseExport 解析 XGBoost save_model 原生导出，返回归一化的树集成导出。
func ParseExport(data []byte) (*core.EnsembleExport, error) {
	var raw exportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse model export: %w", err)
	}

	objective := raw.Learner.Objective.Name
	if objective == "" {
		objective = fallbackObjective
	}

	export := &core.EnsembleExport{
		Objective: objective,
		BaseScore: coerceBaseScore(raw.Learner.LearnerModelParam.BaseScore),
	}
	for _, tree := range raw.Learner.GradientBooster.Model.Trees {
		export.Trees = append(export.Trees, core.TreeExport{
			LeftChildren:    tree.LeftChildren,
			RightChildren:   tree.RightChildren,
			SplitIndices:    tree.SplitIndices,
			SplitConditions: tree.SplitConditions,
			DefaultLeft:     coerceBools(tree.DefaultLeft),
			BaseWeights:     tree.BaseWeights,
		})
	}
	return export, nil
}

// ParseExportFile 从中转文件解析原生导出。
func ParseExportFile(path string) (*core.EnsembleExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model export: %w", err)
	}
	return ParseExport(data)
}

// coerceBaseScore 把导出中的 base_score 收窄为 float64。
// 字符串无法解析或类型未知时回落为 0.0，与协作方的宽松约定一致。
func coerceBaseScore(v any) float64 {
	switch val := v.(type) {
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		if f, ok := conv.ToFloat64(v); ok {
			return f
		}
		return 0.0
	}
}

// coerceBools 把 bool 或 0/1 数字混合的数组统一为 bool 数组。
func coerceBools(vals []any) []bool {
	if vals == nil {
		return nil
	}
	out := make([]bool, len(vals))
	for i, v := range vals {
		if b, ok := v.(bool); ok {
			out[i] = b
			continue
		}
		if f, ok := conv.ToFloat64(v); ok {
			out[i] = f != 0
			continue
		}
		// 未知类型按缺失处理：缺失值默认走左子树
		out[i] = true
	}
	return out
}
