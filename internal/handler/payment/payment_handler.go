// Package payment 提供支付相关的 HTTP Handler
package payment

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/middleware"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	paymentService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/payment"
)

// PaymentHandler 支付处理器
type PaymentHandler struct {
	paymentService *paymentService.PaymentService
}

// NewPaymentHandler 创建支付处理器
func NewPaymentHandler(paymentSvc *paymentService.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentSvc}
}

// Pay 支付订单
// @Summary 支付订单
// @Tags 支付
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body paymentService.PayRequest true "请求参数"
// @Success 200 {object} response.Response{data=paymentService.PayResponse}
// @Router /api/v1/orders/{id}/pay [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	var req paymentService.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.paymentService.Pay(c.Request.Context(), userID, orderID, &req)
	handler.MustSucceed(c, err, result)
}

// ListByOrder 查询订单支付记录
// @Summary 查询订单支付记录
// @Tags 支付
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=[]models.Payment}
// @Router /api/v1/orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	admin := middleware.GetRole(c) == models.RoleAdmin
	payments, err := h.paymentService.ListByOrder(c.Request.Context(), userID, orderID, admin)
	handler.MustSucceed(c, err, payments)
}

// Refund 管理员退款
// @Summary 订单退款
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	err := h.paymentService.Refund(c.Request.Context(), orderID)
	handler.MustSucceedWithMessage(c, err, "退款成功", nil)
}
