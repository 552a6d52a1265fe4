package tenant

import (
	"context"
	"errors"
)

// 预定义错误
var (
	ErrFirmMissing    = errors.New("firm id missing")
	ErrFirmNotAllowed = errors.New("firm id not allowed")
)

// MockChecker 基于白名单的租户校验实现
// 生产环境可替换为调用外部鉴权服务的实现
type MockChecker struct {
	allowed map[string]struct{}
}

// NewMockChecker 创建白名单租户校验器
func NewMockChecker(firmIDs []string) *MockChecker {
	allowed := make(map[string]struct{}, len(firmIDs))
	for _, id := range firmIDs {
		allowed[id] = struct{}{}
	}
	return &MockChecker{allowed: allowed}
}

// Check 校验租户标识
func (m *MockChecker) Check(_ context.Context, firmID string) error {
	if firmID == "" {
		return ErrFirmMissing
	}
	if _, ok := m.allowed[firmID]; !ok {
		return ErrFirmNotAllowed
	}
	return nil
}
