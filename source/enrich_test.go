package source

import (
	"context"
	"testing"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/feast"
)

// fakeFeastClient 按实体键返回固定特征。
type fakeFeastClient struct {
	values map[string]map[string]interface{} // item_id -> feature ref -> value
	calls  int
}

func (f *fakeFeastClient) GetOnlineFeatures(ctx context.Context, req *feast.GetOnlineFeaturesRequest) (*feast.GetOnlineFeaturesResponse, error) {
	f.calls++
	resp := &feast.GetOnlineFeaturesResponse{}
	for _, entity := range req.EntityRows {
		id, _ := entity["item_id"].(string)
		resp.FeatureVectors = append(resp.FeatureVectors, feast.FeatureVector{
			Values:    f.values[id],
			EntityRow: entity,
		})
	}
	return resp, nil
}

func (f *fakeFeastClient) Close() error { return nil }

func TestEnrichSource_Load(t *testing.T) {
	base := &stubSource{name: "base", rows: []core.LabeledRow{
		{FeedRequestID: "r1", ItemID: "item1", Features: map[string]float64{"ctr": 0.1}},
		{FeedRequestID: "r1", ItemID: "item2", Features: map[string]float64{"ctr": 0.2, "ctr_7d": 0.9}},
		{FeedRequestID: "r2", Features: map[string]float64{"ctr": 0.3}}, // 无实体键
	}}
	client := &fakeFeastClient{values: map[string]map[string]interface{}{
		"item1": {"item_stats:ctr_7d": 0.5, "item_stats:cvr_7d": 0.05},
		"item2": {"item_stats:ctr_7d": 0.6},
	}}

	src := &EnrichSource{
		Base:     base,
		Client:   client,
		Features: []string{"item_stats:ctr_7d", "item_stats:cvr_7d"},
	}

	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 注入时剥掉特征视图前缀
	if rows[0].Features["ctr_7d"] != 0.5 || rows[0].Features["cvr_7d"] != 0.05 {
		t.Errorf("row 0 features = %v", rows[0].Features)
	}
	// 曝光快照已有的 key 不覆盖
	if rows[1].Features["ctr_7d"] != 0.9 {
		t.Errorf("snapshot value clobbered: %v", rows[1].Features["ctr_7d"])
	}
	// 无实体键的样本原样透传
	if _, ok := rows[2].Features["ctr_7d"]; ok {
		t.Errorf("row without item_id should not be enriched: %v", rows[2].Features)
	}
}

func TestEnrichSource_NoClient(t *testing.T) {
	base := &stubSource{name: "base", rows: []core.LabeledRow{{FeedRequestID: "r1"}}}
	src := &EnrichSource{Base: base}

	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("row count = %d, want 1", len(rows))
	}
}
