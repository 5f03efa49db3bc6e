package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rushteam/trainkit/core"
)

// Write 把模型产物以缩进 JSON 写入 path。
// 先写同目录临时文件再原子重命名：目标路径上永远不出现半截产物。
// 父目录不存在时自动创建。
func Write(model *core.RuntimeModel, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w (check path and permissions)", dir, err)
	}

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".trainkit-model-*.json")
	if err != nil {
		return fmt.Errorf("create temp model file: %w (check path and permissions)", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close model file: %w", err)
	}
	// CreateTemp 默认 0600，发布前放宽为常规产物权限
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod model file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publish model to %s: %w", path, err)
	}
	return nil
}

// Load 从 path 读取并解析模型产物（与 Write 互逆，用于校验与加载）。
func Load(path string) (*core.RuntimeModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var model core.RuntimeModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return &model, nil
}
