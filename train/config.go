// Package train 编排一次完整的离线训练任务：
// 样本拉取 → 过滤 → 词表 → 数据集组装 → 外部训练 → 转码 → 产物落盘。
// 全程单线程同步批处理，各阶段完全消费前一阶段的输出，阶段间无共享可变状态。
package train

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是训练任务的配置结构（支持 YAML/JSON）。
type Config struct {
	Job JobConfig `yaml:"job" json:"job"`
}

// JobConfig 是单次训练任务的配置。
type JobConfig struct {
	// Datasets 是 JSONL 样本文件路径列表（多个分片并发读取后按声明顺序合并）
	Datasets []string `yaml:"datasets" json:"datasets"`

	// Redis 可选的反馈队列来源，与文件来源合并使用
	Redis *RedisSourceConfig `yaml:"redis" json:"redis"`

	// Filter 可选的 CEL 样本过滤表达式（如 "row.reward >= 0.0"），为空不过滤
	Filter string `yaml:"filter" json:"filter"`

	// Output 模型产物输出路径
	Output string `yaml:"output" json:"output"`

	// TrainerEndpoint 训练服务地址（如 "http://localhost:9090"）
	TrainerEndpoint string `yaml:"trainer_endpoint" json:"trainer_endpoint"`

	// TrainerTimeoutSec 训练调用超时秒数（0 使用默认值）
	TrainerTimeoutSec int `yaml:"trainer_timeout" json:"trainer_timeout"`

	// MinRows 最小有效样本行数门槛（0 使用默认值 100）
	MinRows int `yaml:"min_rows" json:"min_rows"`

	// Params 超参数覆盖项，叠加在 trainer.DefaultConfig 之上
	Params map[string]any `yaml:"params" json:"params"`
}

// LoadFromYAML 从 YAML 文件加载任务配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载任务配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	return &cfg, nil
}

// RedisSourceConfig 是 Redis 反馈队列来源的连接配置。
type RedisSourceConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	DB   int    `yaml:"db" json:"db"`
	Key  string `yaml:"key" json:"key"`
}
