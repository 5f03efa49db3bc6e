package transcode

import "github.com/rushteam/trainkit/core"

// LeafSpec 是叶子节点的归一化形态。
type LeafSpec struct {
	Value float64
}

// SplitSpec 是分裂节点的归一化形态。
type SplitSpec struct {
	Feature     int
	Threshold   float64
	Left        int
	Right       int
	DefaultLeft bool
}

// NodeSpec 是平行数组中单个下标的标记联合：叶子或分裂二选一。
// 平行数组是协作方的松散外部契约，进入本系统即按哨兵规则判型，
// 不让五个裸数组继续向下游扩散。
type NodeSpec struct {
	Leaf  *LeafSpec
	Split *SplitSpec
}

// ClassifyNode 按哨兵规则对平行数组的第 i 个下标判型：
// 左右子节点同时为 -1 即叶子，叶值取 BaseWeights[i]（数组不足长补 0.0）；
// 否则为分裂节点，分裂字段按下标读取，不足长时取默认值
// （feature=0、threshold=0.0、缺失默认走左）。
// 数组长度不一致按下标逐个容错，不视为错误：叶子下标在部分导出
// 约定中本就不携带分裂字段。
func ClassifyNode(tree core.TreeExport, i int) NodeSpec {
	left := intAt(tree.LeftChildren, i, core.LeafChild)
	right := intAt(tree.RightChildren, i, core.LeafChild)

	if left == core.LeafChild && right == core.LeafChild {
		return NodeSpec{Leaf: &LeafSpec{
			Value: floatAt(tree.BaseWeights, i, 0.0),
		}}
	}
	return NodeSpec{Split: &SplitSpec{
		Feature:     intAt(tree.SplitIndices, i, 0),
		Threshold:   floatAt(tree.SplitConditions, i, 0.0),
		Left:        left,
		Right:       right,
		DefaultLeft: boolAt(tree.DefaultLeft, i, true),
	}}
}

// TranscodeTree 把一棵树的平行数组转码为运行时决策树。
// 数组下标即节点下标，顺序保持不变；空数组得到空树（是否接受零节点树
// 由整条流水线的调用方决定，这里不报错）。
func TranscodeTree(tree core.TreeExport) core.Tree {
	out := core.Tree{}
	for i := range tree.LeftChildren {
		spec := ClassifyNode(tree, i)
		if spec.Leaf != nil {
			out.Nodes = append(out.Nodes, core.TreeNode{
				Left:    core.LeafChild,
				Right:   core.LeafChild,
				Feature: -1,
				Leaf:    spec.Leaf.Value,
			})
			continue
		}
		out.Nodes = append(out.Nodes, core.TreeNode{
			Left:        spec.Split.Left,
			Right:       spec.Split.Right,
			Feature:     spec.Split.Feature,
			Threshold:   spec.Split.Threshold,
			DefaultLeft: spec.Split.DefaultLeft,
		})
	}
	return out
}

// TranscodeEnsemble 逐棵转码整个树集成，保持树的顺序。
func TranscodeEnsemble(export *core.EnsembleExport) []core.Tree {
	trees := make([]core.Tree, 0, len(export.Trees))
	for _, tree := range export.Trees {
		trees = append(trees, TranscodeTree(tree))
	}
	return trees
}

func intAt(vals []int, i, def int) int {
	if i < len(vals) {
		return vals[i]
	}
	return def
}

func floatAt(vals []float64, i int, def float64) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return def
}

func boolAt(vals []bool, i int, def bool) bool {
	if i < len(vals) {
		return vals[i]
	}
	return def
}
