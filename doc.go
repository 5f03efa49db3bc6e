// Package trainkit 是排序模型的离线训练工具包（Training Kit）。
//
// 设计要点：
// - Job-first: 整条训练链路为单线程同步批处理（Source → Dataset → Trainer → Transcode → Artifact）
// - 确定性优先: 特征顺序与分组切分均为字典序排序，相同输入必得相同数据集
// - 训练黑盒: 提升树训练经 core.Trainer 接口外置，任何提升树实现可替换
// - 产物自描述: 运行时模型为独立 JSON 契约，在线打分不依赖训练库
package trainkit

import "github.com/rushteam/trainkit/train"

// 轻量 facade：便于用户直接 import "trainkit" 使用核心抽象。
type Job = train.Job
type JobConfig = train.JobConfig
type Result = train.Result

// MinTrainingRows 是可靠训练要求的最小有效样本行数。
const MinTrainingRows = train.MinTrainingRows
