// Package auth 提供认证相关的 HTTP Handler
package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/middleware"
	authService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService    *authService.AuthService
	redisClient    *redis.Client
	accessTokenTTL time.Duration
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authSvc *authService.AuthService, redisClient *redis.Client, accessTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:    authSvc,
		redisClient:    redisClient,
		accessTokenTTL: accessTokenTTL,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.RegisterRequest true "请求参数"
// @Success 201 {object} response.Response{data=authService.LoginResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req authService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, resp)
}

// Login 用户登录
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.LoginRequest true "请求参数"
// @Success 200 {object} response.Response{data=authService.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req authService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	handler.MustSucceed(c, err, resp)
}

// Logout 退出登录，将当前令牌加入黑名单
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := handler.RequireUserID(c); !ok {
		return
	}

	if h.redisClient != nil {
		middleware.BlacklistToken(c, h.redisClient, h.accessTokenTTL)
	}
	response.SuccessWithMessage(c, "已退出登录", nil)
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "请求参数"
// @Success 200 {object} response.Response{data=jwt.TokenPair}
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), strings.TrimSpace(req.RefreshToken))
	handler.MustSucceed(c, err, pair)
}
