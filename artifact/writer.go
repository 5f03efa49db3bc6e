// Package artifact 负责运行时模型产物：组装、落盘与读取。
// 产物是稳定的 JSON 契约，在线打分器独立解析，不依赖训练库。
package artifact

import (
	"fmt"
	"time"

	"github.com/rushteam/trainkit/core"
)

// Build 组装运行时模型：版本戳取当前 UTC 时间。
// 只做结构组装，不校验语义（目标函数名是否为空等由协作方边界兜底）。
func Build(objective string, featureOrder []string, baseScore float64, trees []core.Tree) *core.RuntimeModel {
	return BuildAt(time.Now().UTC(), objective, featureOrder, baseScore, trees)
}

// BuildAt 以给定时间构建版本戳，便于测试与重放。
// 树数与特征数由输入直接导出，构建后不再修改。
func BuildAt(ts time.Time, objective string, featureOrder []string, baseScore float64, trees []core.Tree) *core.RuntimeModel {
	return &core.RuntimeModel{
		Version:      fmt.Sprintf("xgb-%sZ", ts.UTC().Format("2006-01-02T15:04:05")),
		ModelType:    core.ModelTypeXGBoostTree,
		Objective:    objective,
		FeatureOrder: featureOrder,
		BaseScore:    baseScore,
		Trees:        trees,
		Metadata: core.ModelMetadata{
			TreeCount:    len(trees),
			FeatureCount: len(featureOrder),
		},
	}
}
