// Package trainer 封装训练协作方：超参数配置与外部提升树训练服务的 RPC 客户端。
// 训练算法本身（梯度提升、分裂查找、正则化）对本工程是黑盒，
// 这里只约定 train(ranking_dataset) -> ensemble 导出形态的调用边界。
package trainer

import "github.com/rushteam/trainkit/pkg/conv"

// DefaultObjective 是成对排序的默认训练目标。
const DefaultObjective = "rank:pairwise"

// Config 是提升树训练的超参数配置。
// 默认值是经验固定值，本工程不做调参策略。
type Config struct {
	Objective       string  `yaml:"objective" json:"objective"`
	Estimators      int     `yaml:"estimators" json:"n_estimators"`
	LearningRate    float64 `yaml:"learning_rate" json:"learning_rate"`
	MaxDepth        int     `yaml:"max_depth" json:"max_depth"`
	MinChildWeight  int     `yaml:"min_child_weight" json:"min_child_weight"`
	Subsample       float64 `yaml:"subsample" json:"subsample"`
	ColsampleByTree float64 `yaml:"colsample_bytree" json:"colsample_bytree"`
	RegLambda       float64 `yaml:"reg_lambda" json:"reg_lambda"`
	Seed            int     `yaml:"seed" json:"random_state"`
	TreeMethod      string  `yaml:"tree_method" json:"tree_method"`
}

// DefaultConfig 返回固定默认超参数。
func DefaultConfig() Config {
	return Config{
		Objective:       DefaultObjective,
		Estimators:      120,
		LearningRate:    0.08,
		MaxDepth:        5,
		MinChildWeight:  4,
		Subsample:       0.9,
		ColsampleByTree: 0.8,
		RegLambda:       1.0,
		Seed:            42,
		TreeMethod:      "hist",
	}
}

// Params 展开为训练请求携带的参数字典。
func (c Config) Params() map[string]any {
	return map[string]any{
		"objective":        c.Objective,
		"n_estimators":     c.Estimators,
		"learning_rate":    c.LearningRate,
		"max_depth":        c.MaxDepth,
		"min_child_weight": c.MinChildWeight,
		"subsample":        c.Subsample,
		"colsample_bytree": c.ColsampleByTree,
		"reg_lambda":       c.RegLambda,
		"random_state":     c.Seed,
		"tree_method":      c.TreeMethod,
	}
}

// ApplyOverrides 从 map[string]any（YAML/JSON 解析结果）覆盖超参数，
// 未出现或类型不符的 key 保持原值。
func (c *Config) ApplyOverrides(m map[string]any) {
	if m == nil {
		return
	}
	c.Objective = conv.ConfigGet(m, "objective", c.Objective)
	c.Estimators = conv.ConfigGetInt(m, "estimators", c.Estimators)
	c.LearningRate = conv.ConfigGetFloat64(m, "learning_rate", c.LearningRate)
	c.MaxDepth = conv.ConfigGetInt(m, "max_depth", c.MaxDepth)
	c.MinChildWeight = conv.ConfigGetInt(m, "min_child_weight", c.MinChildWeight)
	c.Subsample = conv.ConfigGetFloat64(m, "subsample", c.Subsample)
	c.ColsampleByTree = conv.ConfigGetFloat64(m, "colsample_bytree", c.ColsampleByTree)
	c.RegLambda = conv.ConfigGetFloat64(m, "reg_lambda", c.RegLambda)
	c.Seed = conv.ConfigGetInt(m, "seed", c.Seed)
	c.TreeMethod = conv.ConfigGet(m, "tree_method", c.TreeMethod)
}
