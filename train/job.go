package train

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/trainkit/artifact"
	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/dataset"
	"github.com/rushteam/trainkit/source"
	"github.com/rushteam/trainkit/trainer"
	"github.com/rushteam/trainkit/transcode"
)

// MinTrainingRows 是可靠训练要求的最小有效样本行数。
// 门槛在任何阶段执行之前检查：不足即整体失败，不产出任何文件。
const MinTrainingRows = 100

// Job 是一次离线训练任务。一次性批处理，无重试语义：
// 失败即退出非零，修复输入或环境后重跑。
type Job struct {
	Source  source.RowSource
	Filter  *source.Filter // 可为 nil（不过滤）
	Trainer core.Trainer
	Config  trainer.Config

	// MinRows 覆盖最小样本门槛（0 使用 MinTrainingRows）
	MinRows int
}

// Result 是任务的运行结果与统计信息。
type Result struct {
	Model *core.RuntimeModel

	RowCount        int // 过滤后的有效样本行数
	TrainRows       int
	TrainGroups     int
	ValidationRows  int
	ValidationGroup int
}

// Run 执行整条流水线：拉取 → 过滤 → 门槛检查 → 词表 → 组装 →
// 训练（单次阻塞调用）→ 转码 → 产物组装。只返回内存中的产物，不落盘。
func (j *Job) Run(ctx context.Context) (*Result, error) {
	rows, err := j.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	rows, err = j.Filter.Apply(rows)
	if err != nil {
		return nil, fmt.Errorf("filter rows: %w", err)
	}

	minRows := j.MinRows
	if minRows <= 0 {
		minRows = MinTrainingRows
	}
	if len(rows) < minRows {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInsufficientData,
			fmt.Sprintf("not enough rows to train reliably (%d < %d); collect more training data first", len(rows), minRows))
	}

	featureOrder, err := dataset.BuildFeatureOrder(rows)
	if err != nil {
		return nil, err
	}

	trainSet, valSet, err := dataset.Assemble(rows, featureOrder)
	if err != nil {
		return nil, err
	}

	export, err := j.Trainer.Train(ctx, &core.TrainRequest{
		Train:        trainSet,
		Validation:   valSet,
		FeatureOrder: featureOrder,
		Params:       j.Config.Params(),
	})
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	trees := transcode.TranscodeEnsemble(export)
	model := artifact.Build(export.Objective, featureOrder, export.BaseScore, trees)

	return &Result{
		Model:           model,
		RowCount:        len(rows),
		TrainRows:       trainSet.Rows(),
		TrainGroups:     trainSet.Groups(),
		ValidationRows:  valSet.Rows(),
		ValidationGroup: valSet.Groups(),
	}, nil
}

// RunAndWrite 执行流水线并把产物写入 path。
// 产物只在整条流水线成功后落盘，任何阶段失败都不会留下部分输出。
func (j *Job) RunAndWrite(ctx context.Context, path string) (*Result, error) {
	result, err := j.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := artifact.Write(result.Model, path); err != nil {
		return nil, err
	}
	return result, nil
}

// NewJob 根据任务配置装配 Job：样本来源（文件分片 + 可选 Redis 队列）、
// 过滤器、训练服务客户端与超参数。
func NewJob(cfg *JobConfig) (*Job, error) {
	if cfg == nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "nil job config")
	}

	var sources []source.RowSource
	for _, path := range cfg.Datasets {
		sources = append(sources, source.NewJSONLSource(path))
	}
	if cfg.Redis != nil {
		rs, err := source.NewRedisSource(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Key)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeUnavailable,
				fmt.Sprintf("redis unreachable at %s: %v; check addr/db or drop the redis source", cfg.Redis.Addr, err))
		}
		sources = append(sources, rs)
	}
	if len(sources) == 0 {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeInvalidInput,
			"no row sources configured; set job.datasets or job.redis")
	}

	var src source.RowSource
	if len(sources) == 1 {
		src = sources[0]
	} else {
		src = &source.Fanout{Sources: sources}
	}

	filter, err := source.NewFilter(cfg.Filter)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeInvalidInput,
			fmt.Sprintf("invalid filter expression %q: %v", cfg.Filter, err))
	}

	trainCfg := trainer.DefaultConfig()
	trainCfg.ApplyOverrides(cfg.Params)

	endpoint := cfg.TrainerEndpoint
	if endpoint == "" {
		endpoint = "http://localhost:9090"
	}

	return &Job{
		Source:  src,
		Filter:  filter,
		Trainer: trainer.NewRPCTrainer("xgboost", endpoint, time.Duration(cfg.TrainerTimeoutSec)*time.Second),
		Config:  trainCfg,
		MinRows: cfg.MinRows,
	}, nil
}
