package core

// RankSentinel 是未标注排名的占位值：未排名的样本在组内排序时始终排在最后。
const RankSentinel = 9999

// LabeledRow 是一条候选观测样本：同一次请求（feed_request_id）下的一个候选，
// 携带特征快照、奖励标签与可选的组内展示排名。
// 缺少 feed_request_id 的行无法参与成对排序，会在数据集构建阶段被丢弃。
type LabeledRow struct {
	FeedRequestID string             `json:"feed_request_id"`
	Features      map[string]float64 `json:"features"`
	Reward        float64            `json:"reward"`
	CandidateRank *int               `json:"candidate_rank,omitempty"`

	// ItemID 是候选物品标识，仅用于特征库补充（source.EnrichSource 的
	// 实体关联键），不参与数据集构建。
	ItemID string `json:"item_id,omitempty"`
}

// HasGroup 判断样本是否携带组标识。
func (r *LabeledRow) HasGroup() bool {
	return r.FeedRequestID != ""
}

// RankOrSentinel 返回组内排序使用的排名值；未排名返回 RankSentinel。
func (r *LabeledRow) RankOrSentinel() int {
	if r.CandidateRank == nil {
		return RankSentinel
	}
	return *r.CandidateRank
}

// FeatureVector 按给定特征顺序展开特征向量，缺失特征填 0.0。
// 训练与在线打分依赖同一份特征顺序对齐特征下标。
func (r *LabeledRow) FeatureVector(featureOrder []string) []float64 {
	vec := make([]float64, len(featureOrder))
	for i, name := range featureOrder {
		vec[i] = r.Features[name]
	}
	return vec
}
