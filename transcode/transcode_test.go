package transcode

import (
	"testing"

	"github.com/rushteam/trainkit/core"
)

func TestTranscodeTree_SingleLeaf(t *testing.T) {
	tree := TranscodeTree(core.TreeExport{
		LeftChildren:  []int{-1},
		RightChildren: []int{-1},
		BaseWeights:   []float64{3.5},
	})

	if len(tree.Nodes) != 1 {
		t.Fatalf("node count = %d, want 1", len(tree.Nodes))
	}
	node := tree.Nodes[0]
	if !node.IsLeaf() {
		t.Fatal("node should be a leaf")
	}
	if node.Leaf != 3.5 {
		t.Errorf("leaf value = %v, want 3.5", node.Leaf)
	}
}

func TestTranscodeTree_SingleSplit(t *testing.T) {
	tree := TranscodeTree(core.TreeExport{
		LeftChildren:    []int{1, -1, -1},
		RightChildren:   []int{2, -1, -1},
		SplitIndices:    []int{4},
		SplitConditions: []float64{0.5},
		DefaultLeft:     []bool{true},
		BaseWeights:     []float64{0, 1.5, -1.5},
	})

	if len(tree.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(tree.Nodes))
	}

	root := tree.Nodes[0]
	if root.IsLeaf() {
		t.Fatal("root should be a split node")
	}
	if root.Feature != 4 || root.Threshold != 0.5 || !root.DefaultLeft {
		t.Errorf("root = %+v, want feature 4 / threshold 0.5 / default left", root)
	}
	if root.Left != 1 || root.Right != 2 {
		t.Errorf("root children = %d/%d, want 1/2", root.Left, root.Right)
	}

	for _, idx := range []int{1, 2} {
		if !tree.Nodes[idx].IsLeaf() {
			t.Errorf("node %d should be a leaf", idx)
		}
	}
	if tree.Nodes[1].Leaf != 1.5 || tree.Nodes[2].Leaf != -1.5 {
		t.Errorf("leaf values = %v/%v, want 1.5/-1.5", tree.Nodes[1].Leaf, tree.Nodes[2].Leaf)
	}
}

func TestTranscodeTree_Empty(t *testing.T) {
	tree := TranscodeTree(core.TreeExport{})
	if len(tree.Nodes) != 0 {
		t.Errorf("node count = %d, want 0", len(tree.Nodes))
	}
}

func TestTranscodeTree_ShortArrays(t *testing.T) {
	// 分裂字段数组全部缺失：按默认值容错，不报错
	tree := TranscodeTree(core.TreeExport{
		LeftChildren:  []int{1, -1, -1},
		RightChildren: []int{2, -1, -1},
	})

	if len(tree.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(tree.Nodes))
	}
	root := tree.Nodes[0]
	if root.Feature != 0 || root.Threshold != 0.0 || !root.DefaultLeft {
		t.Errorf("root defaults = %+v, want feature 0 / threshold 0 / default left", root)
	}
	// 叶值数组缺失：叶子补 0.0
	if tree.Nodes[1].Leaf != 0.0 || tree.Nodes[2].Leaf != 0.0 {
		t.Errorf("leaf defaults = %v/%v, want 0/0", tree.Nodes[1].Leaf, tree.Nodes[2].Leaf)
	}
}

func TestClassifyNode(t *testing.T) {
	export := core.TreeExport{
		LeftChildren:    []int{1, -1, -1},
		RightChildren:   []int{2, -1, -1},
		SplitIndices:    []int{7},
		SplitConditions: []float64{2.5},
		DefaultLeft:     []bool{false},
		BaseWeights:     []float64{0.1, 0.2, 0.3},
	}

	spec := ClassifyNode(export, 0)
	if spec.Split == nil || spec.Leaf != nil {
		t.Fatal("index 0 should classify as split")
	}
	if spec.Split.Feature != 7 || spec.Split.Threshold != 2.5 || spec.Split.DefaultLeft {
		t.Errorf("split spec = %+v", spec.Split)
	}

	spec = ClassifyNode(export, 1)
	if spec.Leaf == nil || spec.Split != nil {
		t.Fatal("index 1 should classify as leaf")
	}
	if spec.Leaf.Value != 0.2 {
		t.Errorf("leaf value = %v, want 0.2", spec.Leaf.Value)
	}
}

func TestTranscodeEnsemble(t *testing.T) {
	export := &core.EnsembleExport{
		Objective: "rank:pairwise",
		BaseScore: 0.5,
		Trees: []core.TreeExport{
			{LeftChildren: []int{-1}, RightChildren: []int{-1}, BaseWeights: []float64{1.0}},
			{LeftChildren: []int{-1}, RightChildren: []int{-1}, BaseWeights: []float64{2.0}},
		},
	}

	trees := TranscodeEnsemble(export)
	if len(trees) != 2 {
		t.Fatalf("tree count = %d, want 2", len(trees))
	}
	if trees[0].Nodes[0].Leaf != 1.0 || trees[1].Nodes[0].Leaf != 2.0 {
		t.Errorf("tree order not preserved: %v/%v", trees[0].Nodes[0].Leaf, trees[1].Nodes[0].Leaf)
	}
}
