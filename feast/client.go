// Package feast 是 Feast Feature Store 的在线特征客户端，
// 用于训练前补充曝光快照中缺失的特征（如离线统计类特征）。
package feast

import "context"

// Client 是 Feast 在线特征获取的领域接口。
//
// 训练场景只需要在线特征读取：按实体批量取数、注入样本特征快照。
// 历史特征回填、物化等管理操作不属于训练任务的职责。
//
// 实现：
//   - GrpcClient 基于官方 SDK (github.com/feast-dev/feast/sdk/go)
//   - 测试中可用内存假实现替换
type Client interface {
	// GetOnlineFeatures 按实体批量获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["item_stats:ctr_7d", "item_stats:cvr_7d"]
	Features []string

	// EntityRows 实体行，例如 [{"item_id": "1001"}, {"item_id": "1002"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端默认项目）
	Project string
}

// FeatureVector 是单个实体的特征取数结果，key 为请求中的特征名称。
type FeatureVector struct {
	Values    map[string]interface{}
	EntityRow map[string]interface{}
}

// GetOnlineFeaturesResponse 获取在线特征响应，FeatureVectors 与请求实体行一一对应。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}
