package core

// RankingDataset 是成对排序训练所需的三元组：
// 按组顺序展平的特征矩阵、与之平行的标签向量、以及各组大小序列。
//
// 不变式：sum(GroupSizes) == len(Matrix) == len(Labels)；
// 组边界由 GroupSizes 隐式确定（位置信息），矩阵中不出现组标识。
type RankingDataset struct {
	Matrix     [][]float64
	Labels     []float64
	GroupSizes []int
}

// Rows 返回样本行数。
func (d *RankingDataset) Rows() int {
	if d == nil {
		return 0
	}
	return len(d.Matrix)
}

// Groups 返回组数。
func (d *RankingDataset) Groups() int {
	if d == nil {
		return 0
	}
	return len(d.GroupSizes)
}

// Valid 判断数据集是否可用于训练：至少一行样本且至少一个组。
func (d *RankingDataset) Valid() bool {
	return d.Rows() > 0 && d.Groups() > 0
}
