// trainkit 是一次性的离线训练任务入口：
// 读取排序反馈样本，组装成对排序数据集，调用外部 XGBoost 训练服务，
// 把训练结果转码为运行时模型产物并落盘。
//
// 用法：
//
//	trainkit [-config job.yaml] [-dataset rows.jsonl] [-output models/xgboost-reranker.json]
//
// 不带 -dataset 时在 ./tmp 下取字典序最新的 training-dataset-*.jsonl。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rushteam/trainkit/train"
)

func main() {
	var (
		configPath = flag.String("config", "", "任务配置文件路径（YAML 或 JSON）")
		dataset    = flag.String("dataset", "", "JSONL 样本文件路径，多个分片用逗号分隔")
		output     = flag.String("output", "", "模型产物输出路径")
		endpoint   = flag.String("trainer", "", "训练服务地址，如 http://localhost:9090")
		filterExpr = flag.String("filter", "", "CEL 样本过滤表达式，如 'row.reward >= 0.0'")
	)
	flag.Parse()

	cfg := &train.JobConfig{}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fail(fmt.Sprintf("load config %s: %v", *configPath, err))
		}
		cfg = &loaded.Job
	}

	// 命令行参数覆盖配置文件
	if *dataset != "" {
		cfg.Datasets = splitPaths(*dataset)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *endpoint != "" {
		cfg.TrainerEndpoint = *endpoint
	}
	if *filterExpr != "" {
		cfg.Filter = *filterExpr
	}

	if len(cfg.Datasets) == 0 && cfg.Redis == nil {
		path, err := resolveDatasetPath()
		if err != nil {
			fail(err.Error())
		}
		cfg.Datasets = []string{path}
	}
	if cfg.Output == "" {
		cfg.Output = "models/xgboost-reranker.json"
	}

	job, err := train.NewJob(cfg)
	if err != nil {
		fail(err.Error())
	}

	result, err := job.RunAndWrite(context.Background(), cfg.Output)
	if err != nil {
		fail(err.Error())
	}

	for _, path := range cfg.Datasets {
		fmt.Printf("Dataset: %s\n", path)
	}
	fmt.Printf("Model written: %s\n", cfg.Output)
	fmt.Printf("Feature count: %d\n", result.Model.Metadata.FeatureCount)
	fmt.Printf("Tree count: %d\n", result.Model.Metadata.TreeCount)
}

func loadConfig(path string) (*train.Config, error) {
	if strings.HasSuffix(path, ".json") {
		return train.LoadFromJSON(path)
	}
	return train.LoadFromYAML(path)
}

// resolveDatasetPath 在 ./tmp 下取字典序最新的 training-dataset-*.jsonl
// （导出文件名带时间戳，字典序即时间序）。
func resolveDatasetPath() (string, error) {
	matches, err := filepath.Glob(filepath.Join("tmp", "training-dataset-*.jsonl"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no dataset path provided and no training dataset files found in ./tmp")
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fail(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	os.Exit(1)
}
