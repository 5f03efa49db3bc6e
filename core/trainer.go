package core

import "context"

// Trainer 是梯度提升树训练协作方的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（trainer）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 训练算法本身是黑盒：本核心只约定 train(ranking_dataset) -> ensemble 的导出形态
//
// 实现：
//   - trainer.RPCTrainer 通过 HTTP 调用外部 XGBoost 训练服务实现此接口
//   - 其他提升树实现（LightGBM 等）只要能导出 EnsembleExport 形态即可替换
type Trainer interface {
	// Train 执行一次完整训练，返回不透明的树集成导出。
	// 单次阻塞调用；长耗时由调用方自行把控（本核心不做进度回调）。
	Train(ctx context.Context, req *TrainRequest) (*EnsembleExport, error)

	// Health 健康检查
	Health(ctx context.Context) error

	// Close 关闭连接
	Close(ctx context.Context) error
}

// TrainRequest 训练请求
type TrainRequest struct {
	// Train 训练集（必填，须满足 Valid()）
	Train *RankingDataset

	// Validation 验证集（必填；小数据场景下可与 Train 相同，见 dataset.Assemble）
	Validation *RankingDataset

	// FeatureOrder 特征顺序，矩阵列与之对齐
	FeatureOrder []string

	// Params 超参数（由 trainer.Config 展开，固定默认值见 trainer 包）
	Params map[string]any
}

// TreeExport 是训练协作方导出的单棵树的平行数组形态。
// 各数组按节点下标对齐；叶子节点约定 LeftChildren[i] == RightChildren[i] == -1，
// 其分裂相关数组允许缺省（长度不足按下标容错，见 transcode 包）。
type TreeExport struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []bool    `json:"default_left"`
	BaseWeights     []float64 `json:"base_weights"`
}

// EnsembleExport 是训练协作方返回的不透明树集成导出：
// 逐棵树的平行数组，加上集成级的目标函数名与基准分。
type EnsembleExport struct {
	Objective string       `json:"objective"`
	BaseScore float64      `json:"base_score"`
	Trees     []TreeExport `json:"trees"`
}
