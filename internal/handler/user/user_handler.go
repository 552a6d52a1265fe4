// Package user 提供用户相关的 HTTP Handler
package user

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	userService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/user"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *userService.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userSvc *userService.UserService) *UserHandler {
	return &UserHandler{userService: userSvc}
}

// GetProfile 获取当前用户资料
// @Summary 获取当前用户资料
// @Tags 用户
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=userService.ProfileInfo}
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	handler.MustSucceed(c, err, profile)
}

// UpdateProfile 更新当前用户资料
// @Summary 更新当前用户资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body userService.UpdateProfileRequest true "请求参数"
// @Success 200 {object} response.Response{data=userService.ProfileInfo}
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, profile)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body userService.ChangePasswordRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), userID, &req)
	handler.MustSucceedWithMessage(c, err, "密码已修改", nil)
}

// ListUsers 管理员查询用户列表
// @Summary 查询用户列表
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param role query string false "角色"
// @Param status query string false "状态"
// @Param keyword query string false "关键字"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if role := c.Query("role"); role != "" {
		filters["role"] = role
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if keyword := c.Query("keyword"); keyword != "" {
		filters["keyword"] = keyword
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, users, total, p.Page, p.PageSize)
}

// SetStatusRequest 设置用户状态请求
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus 管理员启用/封禁用户
// @Summary 设置用户状态
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body SetStatusRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/users/{id}/status [put]
func (h *UserHandler) SetUserStatus(c *gin.Context) {
	userID, ok := handler.ParseID(c, "用户")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.userService.SetUserStatus(c.Request.Context(), userID, req.Status)
	handler.MustSucceedWithMessage(c, err, "用户状态已更新", nil)
}
