// Package dataset 负责把标注样本整理成成对排序训练所需的数据集：
// 特征词表构建、按请求分组、确定性的训练/验证切分与组大小记账。
package dataset

import (
	"sort"

	"github.com/rushteam/trainkit/core"
)

// BuildFeatureOrder 扫描全部样本，返回特征名并集的字典序排列。
// 顺序与样本输入顺序无关：同一批样本以任意顺序输入，结果完全一致。
// 下游矩阵的列与在线打分的特征下标都依赖这份顺序对齐。
//
// 并集为空时返回 EMPTY_VOCABULARY 领域错误：没有任何特征无法构建矩阵，
// 调用方必须按致命错误处理。
func BuildFeatureOrder(rows []core.LabeledRow) ([]string, error) {
	keys := make(map[string]struct{})
	for _, row := range rows {
		for name := range row.Features {
			keys[name] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeEmptyVocabulary,
			"no feature vectors found in dataset; export rows with a non-empty features map first")
	}

	order := make([]string, 0, len(keys))
	for name := range keys {
		order = append(order, name)
	}
	sort.Strings(order)
	return order, nil
}
