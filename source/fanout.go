package source

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/trainkit/core"
)

// Fanout 并发读取多个样本来源并按来源顺序合并结果。
// 与在线召回不同，训练样本缺失会直接扭曲数据集，
// 因此任一来源失败即整体失败，不做静默降级。
type Fanout struct {
	Sources       []RowSource
	Timeout       time.Duration // 每个来源的超时时间（0 表示不限制）
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (f *Fanout) Name() string { return "source.fanout" }

// Load 并发拉取所有来源。结果按 Sources 的声明顺序拼接，
// 保证相同输入下合并结果的顺序稳定（数据集切分依赖确定性）。
func (f *Fanout) Load(ctx context.Context) ([]core.LabeledRow, error) {
	if len(f.Sources) == 0 {
		return nil, nil
	}

	batches := make([][]core.LabeledRow, len(f.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if f.MaxConcurrent > 0 {
		eg.SetLimit(f.MaxConcurrent)
	}

	for i, src := range f.Sources {
		slot, s := i, src
		eg.Go(func() error {
			loadCtx := egCtx
			if f.Timeout > 0 {
				var cancel context.CancelFunc
				loadCtx, cancel = context.WithTimeout(egCtx, f.Timeout)
				defer cancel()
			}
			rows, err := s.Load(loadCtx)
			if err != nil {
				return err
			}
			batches[slot] = rows
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []core.LabeledRow
	for _, batch := range batches {
		all = append(all, batch...)
	}
	return all, nil
}
