// Package comment 提供评论与收藏相关的 HTTP Handler
package comment

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/middleware"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	commentService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/comment"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	commentService *commentService.CommentService
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(commentSvc *commentService.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentSvc}
}

// Create 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body commentService.CreateCommentRequest true "请求参数"
// @Success 201 {object} response.Response{data=models.Comment}
// @Router /api/v1/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req commentService.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, comment)
}

// ListByListing 查询商品评论
// @Summary 查询商品评论
// @Tags 评论
// @Produce json
// @Param id path int true "商品ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/listings/{id}/comments [get]
func (h *CommentHandler) ListByListing(c *gin.Context) {
	listingID, ok := handler.ParseParamID(c, "id", "商品")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	comments, total, err := h.commentService.ListByListing(c.Request.Context(), listingID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, comments, total, p.Page, p.PageSize)
}

// ListMine 查询我的评论
// @Summary 查询我的评论
// @Tags 评论
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/comments/my [get]
func (h *CommentHandler) ListMine(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	comments, total, err := h.commentService.ListByUser(c.Request.Context(), userID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, comments, total, p.Page, p.PageSize)
}

// Delete 删除评论（作者或管理员）
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security Bearer
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, commentID, ok := handler.RequireUserAndParseID(c, "评论")
	if !ok {
		return
	}

	admin := middleware.GetRole(c) == models.RoleAdmin
	err := h.commentService.Delete(c.Request.Context(), userID, commentID, admin)
	handler.MustSucceedWithMessage(c, err, "评论已删除", nil)
}

// ListForAdmin 管理员查询评论列表
// @Summary 查询评论列表（管理员）
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Param listing_id query int false "商品ID"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/comments [get]
func (h *CommentHandler) ListForAdmin(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	listingID, ok := handler.ParseQueryID(c, "listing_id", "商品")
	if !ok {
		return
	}
	if listingID != nil {
		filters["listing_id"] = *listingID
	}

	comments, total, err := h.commentService.ListForAdmin(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, comments, total, p.Page, p.PageSize)
}

// ModerateRequest 评论审核请求
type ModerateRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Moderate 管理员审核评论
// @Summary 审核评论
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "评论ID"
// @Param request body ModerateRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/comments/{id}/moderate [post]
func (h *CommentHandler) Moderate(c *gin.Context) {
	commentID, ok := handler.ParseID(c, "评论")
	if !ok {
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.commentService.Moderate(c.Request.Context(), commentID, *req.Approve)
	handler.MustSucceedWithMessage(c, err, "评论已审核", nil)
}
