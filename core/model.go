package core

import "encoding/json"

// LeafChild 是叶子节点的子节点哨兵值：左右子节点同时为 -1 即为叶子。
const LeafChild = -1

// ModelTypeXGBoostTree 是运行时模型产物的固定类型标识。
const ModelTypeXGBoostTree = "xgboost_tree"

// TreeNode 是运行时决策树的最小节点表示。
// 分裂节点与叶子节点共用一个结构，按哨兵规则区分：
// Left == Right == LeafChild 时为叶子，读 Leaf；否则为分裂节点，
// 读 Feature/Threshold/DefaultLeft 并按下标跳转子节点。
type TreeNode struct {
	Left        int
	Right       int
	Feature     int
	Threshold   float64
	DefaultLeft bool    // 特征缺失时走左子树
	Leaf        float64 // 叶子输出值
}

// IsLeaf 判断节点是否为叶子。
func (n *TreeNode) IsLeaf() bool {
	return n.Left == LeafChild && n.Right == LeafChild
}

// leafNodeJSON / splitNodeJSON 是序列化形态：叶子与分裂节点字段集不同，
// 运行时打分器按 left/right 哨兵区分，无需依赖训练库。
type leafNodeJSON struct {
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Leaf      float64 `json:"leaf"`
}

type splitNodeJSON struct {
	Left        int     `json:"left"`
	Right       int     `json:"right"`
	Feature     int     `json:"feature"`
	Threshold   float64 `json:"threshold"`
	DefaultLeft bool    `json:"defaultLeft"`
}

// MarshalJSON 按节点类型输出对应的字段集。
// 叶子节点固定输出 feature=-1、threshold=0，避免产物中残留无意义的分裂字段。
func (n TreeNode) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(leafNodeJSON{
			Left:      LeafChild,
			Right:     LeafChild,
			Feature:   -1,
			Threshold: 0.0,
			Leaf:      n.Leaf,
		})
	}
	return json.Marshal(splitNodeJSON{
		Left:        n.Left,
		Right:       n.Right,
		Feature:     n.Feature,
		Threshold:   n.Threshold,
		DefaultLeft: n.DefaultLeft,
	})
}

// UnmarshalJSON 按 left/right 哨兵规则还原节点。
func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var raw struct {
		Left        int     `json:"left"`
		Right       int     `json:"right"`
		Feature     int     `json:"feature"`
		Threshold   float64 `json:"threshold"`
		DefaultLeft bool    `json:"defaultLeft"`
		Leaf        float64 `json:"leaf"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Left == LeafChild && raw.Right == LeafChild {
		*n = TreeNode{Left: LeafChild, Right: LeafChild, Feature: -1, Leaf: raw.Leaf}
		return nil
	}
	*n = TreeNode{
		Left:        raw.Left,
		Right:       raw.Right,
		Feature:     raw.Feature,
		Threshold:   raw.Threshold,
		DefaultLeft: raw.DefaultLeft,
	}
	return nil
}

// Tree 是一棵运行时决策树：节点序列，下标 0 为根，
// 子节点引用均为同一棵树内的下标，构建后不可变。
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// ModelMetadata 是产物的描述性元信息。
type ModelMetadata struct {
	TreeCount    int `json:"treeCount"`
	FeatureCount int `json:"featureCount"`
}

// RuntimeModel 是一次训练的最终产物：目标函数、特征顺序、基准分、
// 转码后的树序列与描述性元信息。每次训练构建一次、落盘一次，之后不再修改。
//
// 该格式是稳定的对外契约：在线打分器只依赖此结构，不依赖训练库。
type RuntimeModel struct {
	Version      string        `json:"version"`
	ModelType    string        `json:"modelType"`
	Objective    string        `json:"objective"`
	FeatureOrder []string      `json:"featureOrder"`
	BaseScore    float64       `json:"baseScore"`
	Trees        []Tree        `json:"trees"`
	Metadata     ModelMetadata `json:"metadata"`
}
