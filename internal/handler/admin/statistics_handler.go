// Package admin 提供管理后台统计相关的 HTTP Handler
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	adminService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/admin"
)

// StatisticsHandler 统计处理器
type StatisticsHandler struct {
	statisticsService *adminService.StatisticsService
}

// NewStatisticsHandler 创建统计处理器
func NewStatisticsHandler(statisticsSvc *adminService.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsSvc}
}

// GetDashboard 获取管理后台概览
// @Summary 获取管理后台概览
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=adminService.Dashboard}
// @Router /api/v1/admin/dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.statisticsService.GetDashboard(c.Request.Context())
	handler.MustSucceed(c, err, dashboard)
}

// SpendingByUser 按用户统计消费
// @Summary 按用户统计消费
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param time_range query string false "时间范围" Enums(today, week, month, year, all)
// @Success 200 {object} response.Response{data=[]adminService.UserSpending}
// @Router /api/v1/admin/statistics/users [get]
func (h *StatisticsHandler) SpendingByUser(c *gin.Context) {
	result, err := h.statisticsService.SpendingByUser(c.Request.Context(), c.DefaultQuery("time_range", adminService.TimeRangeAll))
	handler.MustSucceed(c, err, result)
}

// SalesByVendor 按供应商统计销售
// @Summary 按供应商统计销售
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param time_range query string false "时间范围" Enums(today, week, month, year, all)
// @Success 200 {object} response.Response{data=[]adminService.VendorSales}
// @Router /api/v1/admin/statistics/vendors [get]
func (h *StatisticsHandler) SalesByVendor(c *gin.Context) {
	result, err := h.statisticsService.SalesByVendor(c.Request.Context(), c.DefaultQuery("time_range", adminService.TimeRangeAll))
	handler.MustSucceed(c, err, result)
}

// OrderReport 订单明细报表
// @Summary 订单明细报表
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param time_range query string false "时间范围" Enums(today, week, month, year, all)
// @Success 200 {object} response.Response{data=[]adminService.OrderReportRow}
// @Router /api/v1/admin/statistics/orders [get]
func (h *StatisticsHandler) OrderReport(c *gin.Context) {
	result, err := h.statisticsService.OrderReport(c.Request.Context(), c.DefaultQuery("time_range", adminService.TimeRangeAll))
	handler.MustSucceed(c, err, result)
}
