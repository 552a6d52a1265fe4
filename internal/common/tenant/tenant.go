// Package tenant 提供多租户标识校验能力
// 请求通过 X-Firm-Id 头携带租户标识，校验逻辑通过 Checker 接口注入
package tenant

import "context"

// Checker 租户校验接口
type Checker interface {
	// Check 校验 firmID 是否为合法租户
	// 返回 nil 表示通过；返回错误表示拒绝（一律按未授权处理）
	Check(ctx context.Context, firmID string) error
}

// CheckerFunc 函数适配器
type CheckerFunc func(ctx context.Context, firmID string) error

// Check 实现 Checker 接口
func (f CheckerFunc) Check(ctx context.Context, firmID string) error {
	return f(ctx, firmID)
}
