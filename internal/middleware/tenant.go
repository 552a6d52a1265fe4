// Package middleware 提供 HTTP 中间件
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/tenant"
)

// 上下文键
const (
	ContextKeyFirmID = "firm_id"
)

// TenantConfig 租户中间件配置
type TenantConfig struct {
	Checker tenant.Checker
	Header  string // 默认 X-Firm-Id
}

// Tenant 租户校验中间件
// 缺失或非法的租户标识一律返回 401
func Tenant(config *TenantConfig) gin.HandlerFunc {
	header := config.Header
	if header == "" {
		header = "X-Firm-Id"
	}

	return func(c *gin.Context) {
		firmID := c.GetHeader(header)
		if err := config.Checker.Check(c.Request.Context(), firmID); err != nil {
			metrics.GetMetrics().RecordTenantReject()
			response.Unauthorized(c, "无效的租户标识")
			c.Abort()
			return
		}

		c.Set(ContextKeyFirmID, firmID)
		c.Next()
	}
}

// GetFirmID 从上下文获取租户标识
func GetFirmID(c *gin.Context) string {
	if firmID, exists := c.Get(ContextKeyFirmID); exists {
		return firmID.(string)
	}
	return ""
}
