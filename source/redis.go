package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/trainkit/core"
	"github.com/rushteam/trainkit/pkg/conv"
)

// FeedbackEvent 是 serving 侧落入 Redis List 的排序反馈事件。
// Extras 携带曝光时刻的特征快照（JSON 解码后为 map[string]any，
// 注入样本前统一收窄为 map[string]float64）。
type FeedbackEvent struct {
	FeedRequestID string         `json:"feed_request_id"`
	ItemID        string         `json:"item_id"`
	Reward        float64        `json:"reward"`
	Position      *int           `json:"position,omitempty"`
	Extras        map[string]any `json:"extras,omitempty"`
}

// RedisSource 从 Redis List 读取排序反馈事件并转换为标注样本。
// 生产环境常用：serving 侧异步 RPUSH，训练任务离线全量消费。
// 无法解析的事件直接跳过，与 JSONL 来源的容错口径一致。
type RedisSource struct {
	client *redis.Client
	Key    string

	// BatchSize 单次 LRANGE 的条数（0 使用默认值 1000）
	BatchSize int64
}

func NewRedisSource(addr string, db int, key string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisSource{client: client, Key: key}, nil
}

func (s *RedisSource) Name() string { return "source.redis" }

func (s *RedisSource) Load(ctx context.Context) ([]core.LabeledRow, error) {
	batch := s.BatchSize
	if batch <= 0 {
		batch = 1000
	}

	var rows []core.LabeledRow
	for start := int64(0); ; start += batch {
		vals, err := s.client.LRange(ctx, s.Key, start, start+batch-1).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lrange %s: %w", s.Key, err)
		}
		if len(vals) == 0 {
			break
		}
		for _, raw := range vals {
			var event FeedbackEvent
			if err := json.Unmarshal([]byte(raw), &event); err != nil {
				continue
			}
			rows = append(rows, event.ToRow())
		}
		if int64(len(vals)) < batch {
			break
		}
	}
	return rows, nil
}

func (s *RedisSource) Close() error {
	return s.client.Close()
}

// ToRow 将反馈事件转换为标注样本：Position 作为组内排名，Extras 作为特征快照。
func (e *FeedbackEvent) ToRow() core.LabeledRow {
	return core.LabeledRow{
		FeedRequestID: e.FeedRequestID,
		ItemID:        e.ItemID,
		Features:      conv.MapToFloat64(e.Extras),
		Reward:        e.Reward,
		CandidateRank: e.Position,
	}
}
