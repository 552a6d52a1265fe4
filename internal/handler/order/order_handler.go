// Package order 提供订单相关的 HTTP Handler
package order

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/middleware"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	orderService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/order"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	orderService *orderService.OrderService
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(orderSvc *orderService.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderSvc}
}

func isAdmin(c *gin.Context) bool {
	return middleware.GetRole(c) == models.RoleAdmin
}

// Create 创建订单
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body orderService.CreateOrderRequest true "请求参数"
// @Success 201 {object} response.Response{data=models.Order}
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req orderService.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), userID, &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, order)
}

// ListMine 查询我的订单
// @Summary 查询我的订单
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	orders, total, err := h.orderService.ListByUser(c.Request.Context(), userID, p.GetOffset(), p.GetLimit(), c.Query("status"))
	handler.MustSucceedPage(c, err, orders, total, p.Page, p.PageSize)
}

// GetDetail 查询订单详情
// @Summary 查询订单详情
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=models.Order}
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetDetail(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	order, err := h.orderService.GetDetail(c.Request.Context(), userID, orderID, isAdmin(c))
	handler.MustSucceed(c, err, order)
}

// CancelRequest 取消订单请求
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Cancel 买家取消订单
// @Summary 取消订单
// @Tags 订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body CancelRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "取消原因不能为空")
		return
	}

	err := h.orderService.Cancel(c.Request.Context(), userID, orderID, req.Reason)
	handler.MustSucceedWithMessage(c, err, "订单已取消", nil)
}

// ConfirmReceiptRequest 确认收货请求
type ConfirmReceiptRequest struct {
	Status string `json:"status" binding:"required"`
}

// ConfirmReceipt 买家确认收货
// @Summary 确认收货
// @Tags 订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body ConfirmReceiptRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/orders/{id}/confirm-receipt [post]
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	var req ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.orderService.ConfirmReceipt(c.Request.Context(), userID, orderID, req.Status)
	handler.MustSucceedWithMessage(c, err, "已确认收货", nil)
}

// ListForVendor 供应商查询包含自己商品的订单
// @Summary 查询供应商订单
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/vendor/orders [get]
func (h *OrderHandler) ListForVendor(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	orders, total, err := h.orderService.ListForVendor(c.Request.Context(), userID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, orders, total, p.Page, p.PageSize)
}

// Ship 发货（供应商或管理员）
// @Summary 订单发货
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/vendor/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *gin.Context) {
	userID, orderID, ok := handler.RequireUserAndParseID(c, "订单")
	if !ok {
		return
	}

	err := h.orderService.Ship(c.Request.Context(), userID, orderID, isAdmin(c))
	handler.MustSucceedWithMessage(c, err, "订单已发货", nil)
}

// ListForAdmin 管理员查询订单列表
// @Summary 查询订单列表（管理员）
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Param user_id query int false "用户ID"
// @Param order_no query string false "订单号"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) ListForAdmin(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	userID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}
	if userID != nil {
		filters["user_id"] = *userID
	}
	if orderNo := c.Query("order_no"); orderNo != "" {
		filters["order_no"] = orderNo
	}

	orders, total, err := h.orderService.ListForAdmin(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, orders, total, p.Page, p.PageSize)
}

// AdminCancelRequest 管理员取消订单请求
type AdminCancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdminCancel 管理员取消订单
// @Summary 取消订单（管理员）
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body AdminCancelRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id}/cancel [post]
func (h *OrderHandler) AdminCancel(c *gin.Context) {
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	var req AdminCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.orderService.AdminCancel(c.Request.Context(), orderID, req.Reason)
	handler.MustSucceedWithMessage(c, err, "订单已取消", nil)
}

// MarkDelivered 管理员标记订单已送达
// @Summary 标记订单已送达
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id}/deliver [post]
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	err := h.orderService.MarkDelivered(c.Request.Context(), orderID)
	handler.MustSucceedWithMessage(c, err, "订单已送达", nil)
}

// Complete 管理员完成订单
// @Summary 完成订单
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	err := h.orderService.Complete(c.Request.Context(), orderID)
	handler.MustSucceedWithMessage(c, err, "订单已完成", nil)
}

// Delete 管理员删除订单
// @Summary 删除订单
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	err := h.orderService.AdminDelete(c.Request.Context(), orderID)
	handler.MustSucceedWithMessage(c, err, "订单已删除", nil)
}
