package source

import (
	"context"

	"github.com/rushteam/trainkit/core"
)

// RowSource 表示一个可复用的样本来源（JSONL 导出文件 / Redis 反馈队列 / ...）。
// 训练任务在构建数据集之前通过它一次性拉取全部标注样本。
type RowSource interface {
	Name() string
	Load(ctx context.Context) ([]core.LabeledRow, error)
}
