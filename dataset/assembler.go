package dataset

import (
	"sort"

	"github.com/rushteam/trainkit/core"
)

// trainRatio 是按组切分时训练集所占比例。
const trainRatio = 0.8

// Assemble 把标注样本整理为训练/验证两个 RankingDataset。
//
// 算法：
//  1. 丢弃缺少 feed_request_id 的样本
//  2. 按 feed_request_id 分组（组内保持样本出现顺序）
//  3. 组标识字典序排序后在 max(1, floor(0.8*组数)) 处切分：
//     前段为训练组，剩余为验证组；剩余为空时取最后一个训练组兜底，
//     保证只要存在分组验证集就非空
//  4. 每组：少于 2 个成员的组无成对信号，直接丢弃；其余按组内排名
//     稳定升序排列（未排名排最后），逐行展开为特征顺序对齐的矩阵行
//
// 训练集无效（零行或零组）时返回 NO_VALID_GROUPS 致命错误。
// 验证集无效时退回复用训练集：这是对小数据集的兼容行为，代价是
// 验证指标失去独立评估意义，属于已知的评估口径缺陷而非正确性问题。
func Assemble(rows []core.LabeledRow, featureOrder []string) (train, validation *core.RankingDataset, err error) {
	grouped := make(map[string][]core.LabeledRow)
	var order []string
	for _, row := range rows {
		if !row.HasGroup() {
			continue
		}
		if _, ok := grouped[row.FeedRequestID]; !ok {
			order = append(order, row.FeedRequestID)
		}
		grouped[row.FeedRequestID] = append(grouped[row.FeedRequestID], row)
	}

	sort.Strings(order)
	splitIdx := int(float64(len(order)) * trainRatio)
	if splitIdx < 1 {
		splitIdx = 1
	}
	if splitIdx > len(order) {
		splitIdx = len(order)
	}
	trainKeys := order[:splitIdx]
	valKeys := order[splitIdx:]
	if len(valKeys) == 0 && len(order) > 0 {
		valKeys = order[len(order)-1:]
	}

	train = buildSubset(trainKeys, grouped, featureOrder)
	validation = buildSubset(valKeys, grouped, featureOrder)

	if !train.Valid() {
		return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeNoValidGroups,
			"not enough grouped training data; collect more ranking events first")
	}
	if !validation.Valid() {
		validation = train
	}
	return train, validation, nil
}

// buildSubset 把选中的组展开为一个 RankingDataset。
// 矩阵行按组顺序拼接，组边界只体现在 GroupSizes 上。
func buildSubset(keys []string, grouped map[string][]core.LabeledRow, featureOrder []string) *core.RankingDataset {
	ds := &core.RankingDataset{}
	for _, key := range keys {
		groupRows := grouped[key]
		if len(groupRows) < 2 {
			continue
		}

		sorted := make([]core.LabeledRow, len(groupRows))
		copy(sorted, groupRows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RankOrSentinel() < sorted[j].RankOrSentinel()
		})

		ds.GroupSizes = append(ds.GroupSizes, len(sorted))
		for i := range sorted {
			ds.Matrix = append(ds.Matrix, sorted[i].FeatureVector(featureOrder))
			ds.Labels = append(ds.Labels, sorted[i].Reward)
		}
	}
	return ds
}
