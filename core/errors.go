package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message），消息中附带可操作的修复提示
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 数据不足类错误：INSUFFICIENT_DATA, EMPTY_VOCABULARY, NO_VALID_GROUPS
//   - 环境类错误：UNAVAILABLE（训练服务不可达）、INTERNAL_ERROR
//   - 输入类错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "INSUFFICIENT_DATA", "UNAVAILABLE"）
	Message string // 错误消息（含修复提示）
	Module  string // 模块名称（如 "dataset", "trainer", "artifact"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA" // 有效样本行数不足
	ErrorCodeEmptyVocabulary  = "EMPTY_VOCABULARY"  // 特征词表为空
	ErrorCodeNoValidGroups    = "NO_VALID_GROUPS"   // 无有效分组（成对排序需要 >=2 成员的组）
	ErrorCodeUnavailable      = "UNAVAILABLE"       // 外部服务不可用
	ErrorCodeInvalidInput     = "INVALID_INPUT"     // 输入无效
	ErrorCodeInternalError    = "INTERNAL_ERROR"    // 内部错误
)

// 模块名称常量
const (
	ModuleSource    = "source"    // 样本来源模块
	ModuleDataset   = "dataset"   // 数据集构建模块
	ModuleTrainer   = "trainer"   // 训练协作方模块
	ModuleTranscode = "transcode" // 树结构转码模块
	ModuleArtifact  = "artifact"  // 模型产物模块
)

// 通用错误检查函数

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA
func IsInsufficientData(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInsufficientData
	}
	return false
}

// IsEmptyVocabulary 检查错误是否为 EMPTY_VOCABULARY
func IsEmptyVocabulary(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyVocabulary
	}
	return false
}

// IsNoValidGroups 检查错误是否为 NO_VALID_GROUPS
func IsNoValidGroups(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNoValidGroups
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}
