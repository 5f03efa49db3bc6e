package train

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/source"
	"github.com/rushteam/trainkit/trainer"
)

// stubSource 返回静态样本。
type stubSource struct {
	rows []core.LabeledRow
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) ([]core.LabeledRow, error) {
	return s.rows, nil
}

// stubTrainer 不训练，按配置的棵数返回单叶子树集成，并记录收到的请求。
type stubTrainer struct {
	trees   int
	lastReq *core.TrainRequest
}

func (s *stubTrainer) Train(ctx context.Context, req *core.TrainRequest) (*core.EnsembleExport, error) {
	s.lastReq = req
	export := &core.EnsembleExport{Objective: "rank:pairwise", BaseScore: 0.5}
	for i := 0; i < s.trees; i++ {
		export.Trees = append(export.Trees, core.TreeExport{
			LeftChildren:  []int{-1},
			RightChildren: []int{-1},
			BaseWeights:   []float64{float64(i) * 0.01},
		})
	}
	return export, nil
}

func (s *stubTrainer) Health(ctx context.Context) error { return nil }
func (s *stubTrainer) Close(ctx context.Context) error  { return nil }

// makeRows 构造 groups 个组、每组 size 行、3 个特征的样本。
func makeRows(groups, size int) []core.LabeledRow {
	var rows []core.LabeledRow
	for g := 0; g < groups; g++ {
		for i := 0; i < size; i++ {
			rank := i
			rows = append(rows, core.LabeledRow{
				FeedRequestID: fmt.Sprintf("req-%03d", g),
				Features: map[string]float64{
					"ctr":   float64(i) * 0.1,
					"cvr":   float64(g) * 0.01,
					"price": 100,
				},
				Reward:        float64(size - i),
				CandidateRank: &rank,
			})
		}
	}
	return rows
}

func TestJob_Run(t *testing.T) {
	// 120 行 / 10 组 / 3 特征的端到端场景
	stub := &stubTrainer{trees: 120}
	job := &Job{
		Source:  &stubSource{rows: makeRows(10, 12)},
		Trainer: stub,
		Config:  trainer.DefaultConfig(),
	}

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	model := result.Model
	if model.Metadata.FeatureCount != 3 {
		t.Errorf("feature count = %d, want 3", model.Metadata.FeatureCount)
	}
	if model.Metadata.TreeCount != 120 {
		t.Errorf("tree count = %d, want 120", model.Metadata.TreeCount)
	}
	if model.Objective != "rank:pairwise" || model.BaseScore != 0.5 {
		t.Errorf("objective/baseScore = %q/%v", model.Objective, model.BaseScore)
	}
	if result.RowCount != 120 {
		t.Errorf("row count = %d, want 120", result.RowCount)
	}

	// 训练请求应携带固定默认超参数
	if stub.lastReq.Params["n_estimators"] != 120 {
		t.Errorf("params = %v", stub.lastReq.Params)
	}
	// 10 组按 0.8 切分：8 训练组 / 2 验证组
	if result.TrainGroups != 8 || result.ValidationGroup != 2 {
		t.Errorf("groups = %d/%d, want 8/2", result.TrainGroups, result.ValidationGroup)
	}
}

func TestJob_MinRowsGate(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		wantFail bool
	}{
		{name: "99 rows fails", rows: 99, wantFail: true},
		{name: "100 rows passes", rows: 100, wantFail: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 每组 2 行凑出目标行数；奇数行时补一个单行组（会被组装阶段丢弃但计入行数门槛）
			rows := makeRows(tt.rows/2, 2)
			if tt.rows%2 == 1 {
				rows = append(rows, core.LabeledRow{
					FeedRequestID: "odd",
					Features:      map[string]float64{"ctr": 0.1},
				})
			}

			job := &Job{
				Source:  &stubSource{rows: rows},
				Trainer: &stubTrainer{trees: 1},
				Config:  trainer.DefaultConfig(),
			}
			_, err := job.Run(context.Background())

			if tt.wantFail {
				if err == nil {
					t.Fatal("expected insufficient data error")
				}
				if !core.IsInsufficientData(err) {
					t.Errorf("error = %v, want INSUFFICIENT_DATA", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
		})
	}
}

func TestJob_FilterBeforeGate(t *testing.T) {
	// 110 行输入，过滤后只剩 55 行：门槛按过滤后的行数判断
	rows := makeRows(55, 2)
	for i := range rows {
		if i%2 == 0 {
			rows[i].Reward = -1
		}
	}
	filter, err := source.NewFilter("row.reward >= 0.0")
	if err != nil {
		t.Fatal(err)
	}

	job := &Job{
		Source:  &stubSource{rows: rows},
		Filter:  filter,
		Trainer: &stubTrainer{trees: 1},
		Config:  trainer.DefaultConfig(),
	}
	_, err = job.Run(context.Background())
	if !core.IsInsufficientData(err) {
		t.Errorf("error = %v, want INSUFFICIENT_DATA after filtering", err)
	}
}

func TestJob_RunAndWrite(t *testing.T) {
	job := &Job{
		Source:  &stubSource{rows: makeRows(10, 12)},
		Trainer: &stubTrainer{trees: 3},
		Config:  trainer.DefaultConfig(),
	}

	path := t.TempDir() + "/models/reranker.json"
	result, err := job.RunAndWrite(context.Background(), path)
	if err != nil {
		t.Fatalf("RunAndWrite() error = %v", err)
	}
	if result.Model.Metadata.TreeCount != 3 {
		t.Errorf("tree count = %d, want 3", result.Model.Metadata.TreeCount)
	}
}
