package source

import (
	"context"
	"strings"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/feast"
	"github.com/rushteam/trainkit/pkg/conv"
)

// enrichBatchSize 是单次特征库批量取数的实体条数。
const enrichBatchSize = 100

// EnrichSource 包装一个样本来源，在样本进入数据集构建之前
// 从 Feast 在线特征库补充特征（如离线统计类特征）。
//
// 关联规则：以样本的 item_id 作为实体键批量取数；没有 item_id 的样本
// 原样透传。曝光时刻的特征快照优先：特征库的值只注入快照中不存在的 key，
// 避免训练特征与 serving 快照口径漂移。
//
// 特征库不可达时整体失败而不是静默跳过：缺列的矩阵会扭曲训练结果。
type EnrichSource struct {
	Base   RowSource
	Client feast.Client

	// Features 要补充的特征引用，例如 ["item_stats:ctr_7d", "item_stats:cvr_7d"]
	Features []string

	// EntityName 实体键名称（默认 "item_id"）
	EntityName string
}

func (s *EnrichSource) Name() string { return "source.enrich" }

func (s *EnrichSource) Load(ctx context.Context) ([]core.LabeledRow, error) {
	rows, err := s.Base.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.Client == nil || len(s.Features) == 0 {
		return rows, nil
	}

	entityName := s.EntityName
	if entityName == "" {
		entityName = "item_id"
	}

	// 只对携带实体键的样本取数，按批切分减少往返
	indexed := make([]int, 0, len(rows))
	for i := range rows {
		if rows[i].ItemID != "" {
			indexed = append(indexed, i)
		}
	}

	for start := 0; start < len(indexed); start += enrichBatchSize {
		end := start + enrichBatchSize
		if end > len(indexed) {
			end = len(indexed)
		}
		batch := indexed[start:end]

		entityRows := make([]map[string]interface{}, len(batch))
		for j, idx := range batch {
			entityRows[j] = map[string]interface{}{entityName: rows[idx].ItemID}
		}

		resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
			Features:   s.Features,
			EntityRows: entityRows,
		})
		if err != nil {
			return nil, err
		}

		for j, idx := range batch {
			injectFeatures(&rows[idx], resp.FeatureVectors[j].Values)
		}
	}
	return rows, nil
}

// injectFeatures 把特征库取数结果注入样本。特征引用 "view:name" 注入为 "name"，
// 与 serving 侧的特征命名对齐；快照中已有的 key 不覆盖。
func injectFeatures(row *core.LabeledRow, values map[string]interface{}) {
	if len(values) == 0 {
		return
	}
	if row.Features == nil {
		row.Features = make(map[string]float64, len(values))
	}
	for ref, v := range values {
		name := ref
		if i := strings.LastIndex(ref, ":"); i >= 0 {
			name = ref[i+1:]
		}
		if _, exists := row.Features[name]; exists {
			continue
		}
		if f, ok := conv.ToFloat64(v); ok {
			row.Features[name] = f
		}
	}
}
