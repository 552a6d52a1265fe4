// Package listing 提供商品相关的 HTTP Handler
package listing

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	listingService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/listing"
)

// ListingHandler 商品处理器
type ListingHandler struct {
	listingService *listingService.ListingService
}

// NewListingHandler 创建商品处理器
func NewListingHandler(listingSvc *listingService.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingSvc}
}

// Search 搜索上架商品
// @Summary 搜索商品
// @Tags 商品
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Param category_id query int false "分类ID"
// @Param min_price query number false "最低价格"
// @Param max_price query number false "最高价格"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if keyword := c.Query("keyword"); keyword != "" {
		filters["keyword"] = keyword
	}
	categoryID, ok := handler.ParseQueryID(c, "category_id", "分类")
	if !ok {
		return
	}
	if categoryID != nil {
		filters["category_id"] = *categoryID
	}
	if minStr := c.Query("min_price"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			response.BadRequest(c, "无效的价格参数")
			return
		}
		filters["min_price"] = min
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			response.BadRequest(c, "无效的价格参数")
			return
		}
		filters["max_price"] = max
	}

	listings, total, err := h.listingService.Search(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, listings, total, p.Page, p.PageSize)
}

// GetDetail 获取商品详情
// @Summary 获取商品详情
// @Tags 商品
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response{data=listingService.ListingInfo}
// @Router /api/v1/listings/{id} [get]
func (h *ListingHandler) GetDetail(c *gin.Context) {
	listingID, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	info, err := h.listingService.GetDetail(c.Request.Context(), listingID)
	handler.MustSucceed(c, err, info)
}

// Create 供应商创建商品（草稿）
// @Summary 创建商品
// @Tags 商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body listingService.CreateListingRequest true "请求参数"
// @Success 201 {object} response.Response{data=models.Listing}
// @Router /api/v1/vendor/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req listingService.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), userID, &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, listing)
}

// Update 供应商更新商品
// @Summary 更新商品
// @Tags 商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body listingService.UpdateListingRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Listing}
// @Router /api/v1/vendor/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	userID, listingID, ok := handler.RequireUserAndParseID(c, "商品")
	if !ok {
		return
	}

	var req listingService.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), userID, listingID, &req)
	handler.MustSucceed(c, err, listing)
}

// Submit 供应商提交商品审核
// @Summary 提交商品审核
// @Tags 商品
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/vendor/listings/{id}/submit [post]
func (h *ListingHandler) Submit(c *gin.Context) {
	userID, listingID, ok := handler.RequireUserAndParseID(c, "商品")
	if !ok {
		return
	}

	err := h.listingService.Submit(c.Request.Context(), userID, listingID)
	handler.MustSucceedWithMessage(c, err, "商品已提交审核", nil)
}

// Deactivate 供应商下架商品
// @Summary 下架商品
// @Tags 商品
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/vendor/listings/{id}/deactivate [post]
func (h *ListingHandler) Deactivate(c *gin.Context) {
	userID, listingID, ok := handler.RequireUserAndParseID(c, "商品")
	if !ok {
		return
	}

	err := h.listingService.Deactivate(c.Request.Context(), userID, listingID)
	handler.MustSucceedWithMessage(c, err, "商品已下架", nil)
}

// ListMine 供应商查询自己的商品
// @Summary 查询我的商品
// @Tags 商品
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/vendor/listings [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	listings, total, err := h.listingService.ListByVendor(c.Request.Context(), userID, p.GetOffset(), p.GetLimit(), c.Query("status"))
	handler.MustSucceedPage(c, err, listings, total, p.Page, p.PageSize)
}

// ListForAdmin 管理员查询商品列表
// @Summary 查询商品列表（管理员）
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Param vendor_id query int false "供应商ID"
// @Param keyword query string false "关键字"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/listings [get]
func (h *ListingHandler) ListForAdmin(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	vendorID, ok := handler.ParseQueryID(c, "vendor_id", "供应商")
	if !ok {
		return
	}
	if vendorID != nil {
		filters["vendor_id"] = *vendorID
	}
	if keyword := c.Query("keyword"); keyword != "" {
		filters["keyword"] = keyword
	}

	listings, total, err := h.listingService.ListForAdmin(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, listings, total, p.Page, p.PageSize)
}

// Approve 管理员审核通过商品
// @Summary 审核通过商品
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/listings/{id}/approve [post]
func (h *ListingHandler) Approve(c *gin.Context) {
	listingID, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	err := h.listingService.Approve(c.Request.Context(), listingID)
	handler.MustSucceedWithMessage(c, err, "商品已上架", nil)
}

// RejectRequest 驳回商品请求
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject 管理员驳回商品
// @Summary 驳回商品
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body RejectRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/listings/{id}/reject [post]
func (h *ListingHandler) Reject(c *gin.Context) {
	listingID, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.listingService.Reject(c.Request.Context(), listingID, req.Reason)
	handler.MustSucceedWithMessage(c, err, "商品已驳回", nil)
}
