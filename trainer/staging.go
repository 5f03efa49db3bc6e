package trainer

import (
	"fmt"
	"os"
)

// stageExport 把训练服务返回的原生模型导出写入临时中转文件。
// 返回文件路径与清理函数；调用方必须在所有退出路径上执行清理，
// 中转文件是本工程唯一需要显式释放的资源。
func stageExport(raw []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "trainkit-export-*.json")
	if err != nil {
		return "", nil, fmt.Errorf("create staging file: %w", err)
	}
	path := tmp.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close staging file: %w", err)
	}
	return path, cleanup, nil
}
