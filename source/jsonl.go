package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rushteam/trainkit/core"
)

// maxLineBytes 是单行样本的解析上限；特征快照较大的行也远小于此值。
const maxLineBytes = 4 * 1024 * 1024

// JSONLSource 从行分隔 JSON 文件读取标注样本。
// 每行一个对象：feed_request_id / features / reward / candidate_rank。
// 空行、无法解析的行与超过解析上限的行直接跳过，不中断读取
// （导出过程可能被截断）。
type JSONLSource struct {
	Path string
}

func NewJSONLSource(path string) *JSONLSource {
	return &JSONLSource{Path: path}
}

func (s *JSONLSource) Name() string { return "source.jsonl" }

func (s *JSONLSource) Load(ctx context.Context) ([]core.LabeledRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var rows []core.LabeledRow
	reader := bufio.NewReaderSize(f, 64*1024)
	var buf []byte
	oversized := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}

		// 超长行只吞不存：读完该行的剩余片段后整行跳过
		if !oversized {
			buf = append(buf, chunk...)
			if len(buf) > maxLineBytes {
				oversized = true
				buf = buf[:0]
			}
		}
		if isPrefix {
			continue
		}

		if !oversized {
			line := strings.TrimSpace(string(buf))
			if line != "" {
				var row core.LabeledRow
				if err := json.Unmarshal([]byte(line), &row); err == nil {
					rows = append(rows, row)
				}
			}
		}
		buf = buf[:0]
		oversized = false
	}
	return rows, nil
}
