package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTreeNodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		node     TreeNode
		contains []string
		excludes []string
	}{
		{
			name:     "leaf node",
			node:     TreeNode{Left: -1, Right: -1, Feature: -1, Leaf: 3.5},
			contains: []string{`"left":-1`, `"right":-1`, `"feature":-1`, `"leaf":3.5`},
			excludes: []string{"defaultLeft"},
		},
		{
			name:     "split node",
			node:     TreeNode{Left: 1, Right: 2, Feature: 4, Threshold: 0.5, DefaultLeft: true},
			contains: []string{`"left":1`, `"right":2`, `"feature":4`, `"threshold":0.5`, `"defaultLeft":true`},
			excludes: []string{"leaf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.node)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(string(data), s) {
					t.Errorf("json %s missing %s", data, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(string(data), s) {
					t.Errorf("json %s should not contain %s", data, s)
				}
			}

			var back TreeNode
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if back != tt.node {
				t.Errorf("round trip = %+v, want %+v", back, tt.node)
			}
		})
	}
}

func TestRankOrSentinel(t *testing.T) {
	rank := 3
	ranked := LabeledRow{CandidateRank: &rank}
	if got := ranked.RankOrSentinel(); got != 3 {
		t.Errorf("RankOrSentinel() = %d, want 3", got)
	}

	unranked := LabeledRow{}
	if got := unranked.RankOrSentinel(); got != RankSentinel {
		t.Errorf("RankOrSentinel() = %d, want sentinel %d", got, RankSentinel)
	}
}

func TestFeatureVector(t *testing.T) {
	row := LabeledRow{Features: map[string]float64{"ctr": 0.1, "price": 99}}
	vec := row.FeatureVector([]string{"ctr", "cvr", "price"})

	want := []float64{0.1, 0, 99}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestRankingDatasetValid(t *testing.T) {
	empty := &RankingDataset{}
	if empty.Valid() {
		t.Error("empty dataset should be invalid")
	}

	var nilDS *RankingDataset
	if nilDS.Valid() {
		t.Error("nil dataset should be invalid")
	}

	ok := &RankingDataset{
		Matrix:     [][]float64{{1}, {2}},
		Labels:     []float64{1, 0},
		GroupSizes: []int{2},
	}
	if !ok.Valid() {
		t.Error("populated dataset should be valid")
	}
}
