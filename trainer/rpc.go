package trainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/transcode"
)

// RPCTrainer 是通过 HTTP 调用外部 XGBoost 训练服务的 core.Trainer 实现。
//
// 请求格式（JSON，POST {endpoint}/train）：
//
//	{
//	  "train":      {"matrix": [[...]], "labels": [...], "group_sizes": [...]},
//	  "validation": {"matrix": [[...]], "labels": [...], "group_sizes": [...]},
//	  "feature_order": ["ctr", "cvr", ...],
//	  "params": {"objective": "rank:pairwise", "n_estimators": 120, ...}
//	}
//
// 响应格式（JSON）：
//
//	{"model": { ...XGBoost save_model 原生导出... }}
//
// 原生导出先落一个临时中转文件再交给转码器解析，中转文件在所有退出
// 路径（包括解析失败）上都会被删除。
type RPCTrainer struct {
	name     string
	Endpoint string // 例如 "http://localhost:9090"
	Timeout  time.Duration
	Client   *http.Client
}

// NewRPCTrainer 创建训练服务客户端。训练是单次长耗时阻塞调用，
// 默认超时给到 10 分钟；更长的任务由调用方通过 Timeout 调整。
func NewRPCTrainer(name, endpoint string, timeout time.Duration) *RPCTrainer {
	if timeout == 0 {
		timeout = 10 * time.Minute
	}
	return &RPCTrainer{
		name:     name,
		Endpoint: endpoint,
		Timeout:  timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *RPCTrainer) Name() string {
	return t.name
}

type trainDatasetJSON struct {
	Matrix     [][]float64 `json:"matrix"`
	Labels     []float64   `json:"labels"`
	GroupSizes []int       `json:"group_sizes"`
}

type trainRequestJSON struct {
	Train        trainDatasetJSON `json:"train"`
	Validation   trainDatasetJSON `json:"validation"`
	FeatureOrder []string         `json:"feature_order"`
	Params       map[string]any   `json:"params"`
}

// Train 执行一次完整训练并返回树集成导出（实现 core.Trainer 接口）。
func (t *RPCTrainer) Train(ctx context.Context, req *core.TrainRequest) (*core.EnsembleExport, error) {
	if t.Client == nil {
		t.Client = &http.Client{Timeout: t.Timeout}
	}
	if req == nil || !req.Train.Valid() || !req.Validation.Valid() {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInvalidInput,
			"train request requires non-empty train and validation datasets")
	}

	body := trainRequestJSON{
		Train:        datasetJSON(req.Train),
		Validation:   datasetJSON(req.Validation),
		FeatureOrder: req.FeatureOrder,
		Params:       req.Params,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", t.Endpoint+"/train", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(httpReq)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeUnavailable,
			fmt.Sprintf("trainer service unreachable at %s: %v; start it first (see deploy/trainer)", t.Endpoint, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("trainer error: status=%d, read body failed: %w", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("trainer error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Model json.RawMessage `json:"model"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Model) == 0 {
		return nil, fmt.Errorf("trainer response missing model export")
	}

	return stageAndParse(result.Model)
}

// Health 健康检查：GET {endpoint}/health，非 200 视为不可用。
func (t *RPCTrainer) Health(ctx context.Context) error {
	if t.Client == nil {
		t.Client = &http.Client{Timeout: t.Timeout}
	}
	httpReq, err := http.NewRequestWithContext(ctx, "GET", t.Endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := t.Client.Do(httpReq)
	if err != nil {
		return core.NewDomainError(core.ModuleTrainer, core.ErrorCodeUnavailable,
			fmt.Sprintf("trainer service unreachable at %s: %v; start it first (see deploy/trainer)", t.Endpoint, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trainer unhealthy: status=%d", resp.StatusCode)
	}
	return nil
}

// Close 关闭客户端（实现 core.Trainer 接口）。
func (t *RPCTrainer) Close(ctx context.Context) error {
	if t.Client != nil {
		t.Client.CloseIdleConnections()
	}
	return nil
}

// stageAndParse 把原生导出写入中转文件后交给转码器解析。
func stageAndParse(raw json.RawMessage) (*core.EnsembleExport, error) {
	path, cleanup, err := stageExport(raw)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return transcode.ParseExportFile(path)
}

func datasetJSON(d *core.RankingDataset) trainDatasetJSON {
	return trainDatasetJSON{
		Matrix:     d.Matrix,
		Labels:     d.Labels,
		GroupSizes: d.GroupSizes,
	}
}
