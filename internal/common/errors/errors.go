// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
	"net/http"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 返回对应的 HTTP 状态码
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// New 创建新的应用错误
func New(code, status int, message string) *AppError {
	return &AppError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code, status int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Status:  e.Status,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Status:  e.Status,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, http.StatusInternalServerError, "未知错误")
	ErrInvalidParams   = New(1001, http.StatusBadRequest, "参数错误")
	ErrNotFound        = New(1002, http.StatusNotFound, "资源不存在")
	ErrAlreadyExists   = New(1003, http.StatusConflict, "资源已存在")
	ErrDatabaseError   = New(1004, http.StatusInternalServerError, "数据库错误")
	ErrCacheError      = New(1005, http.StatusInternalServerError, "缓存错误")
	ErrInternalError   = New(1006, http.StatusInternalServerError, "内部错误")
	ErrExternalService = New(1007, http.StatusBadGateway, "外部服务错误")
	ErrRateLimitExceed = New(1008, http.StatusTooManyRequests, "请求过于频繁")
	ErrOperationFailed = New(1009, http.StatusBadRequest, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, http.StatusUnauthorized, "未登录")
	ErrTokenExpired     = New(2001, http.StatusUnauthorized, "登录已过期")
	ErrTokenInvalid     = New(2002, http.StatusUnauthorized, "无效的令牌")
	ErrTokenRevoked     = New(2003, http.StatusUnauthorized, "令牌已失效")
	ErrPermissionDenied = New(2004, http.StatusForbidden, "权限不足")
	ErrAccountSuspended = New(2005, http.StatusForbidden, "账号已封禁")
	ErrPasswordError    = New(2006, http.StatusUnauthorized, "邮箱或密码错误")
	ErrTenantRequired   = New(2007, http.StatusUnauthorized, "缺少租户标识")
	ErrTenantInvalid    = New(2008, http.StatusUnauthorized, "无效的租户标识")
)

// 用户错误码 (3000-3999)
var (
	ErrUserNotFound = New(3000, http.StatusNotFound, "用户不存在")
	ErrEmailExists  = New(3001, http.StatusConflict, "邮箱已被注册")
	ErrUserDisabled = New(3002, http.StatusForbidden, "用户已被禁用")
)

// 供应商与商品错误码 (4000-4999)
var (
	ErrVendorNotFound     = New(4000, http.StatusNotFound, "供应商不存在")
	ErrVendorExists       = New(4001, http.StatusConflict, "已提交供应商申请")
	ErrVendorNotApproved  = New(4002, http.StatusForbidden, "供应商未通过审核")
	ErrVendorStatusError  = New(4003, http.StatusBadRequest, "供应商状态不允许该操作")
	ErrListingNotFound    = New(4004, http.StatusNotFound, "商品不存在")
	ErrListingNotActive   = New(4005, http.StatusBadRequest, "商品未上架")
	ErrListingStatusError = New(4006, http.StatusBadRequest, "商品状态不允许该操作")
	ErrCategoryNotFound   = New(4007, http.StatusNotFound, "分类不存在")
	ErrCategorySlugExists = New(4008, http.StatusConflict, "分类标识已存在")
)

// 订单错误码 (5000-5999)
var (
	ErrOrderNotFound     = New(5000, http.StatusNotFound, "订单不存在")
	ErrOrderStatusError  = New(5001, http.StatusBadRequest, "订单状态不允许该操作")
	ErrOrderCannotCancel = New(5002, http.StatusBadRequest, "订单无法取消")
	ErrOrderEmpty        = New(5003, http.StatusBadRequest, "订单不能为空")
	ErrOrderAmountError  = New(5004, http.StatusBadRequest, "订单金额校验失败")
	ErrOrderNotOwned     = New(5005, http.StatusForbidden, "无权访问该订单")
)

// 支付错误码 (6000-6999)
var (
	ErrPaymentNotFound  = New(6000, http.StatusNotFound, "支付记录不存在")
	ErrPaymentFailed    = New(6001, http.StatusBadRequest, "支付失败")
	ErrOrderAlreadyPaid = New(6002, http.StatusConflict, "订单已支付")
	ErrRefundFailed     = New(6003, http.StatusBadRequest, "退款失败")
)

// 评论与收藏错误码 (7000-7999)
var (
	ErrCommentNotFound     = New(7000, http.StatusNotFound, "评论不存在")
	ErrCommentNotEligible  = New(7001, http.StatusForbidden, "暂无评论资格")
	ErrCommentExists       = New(7002, http.StatusConflict, "已评论过该商品")
	ErrCommentStatusError  = New(7003, http.StatusBadRequest, "评论状态不允许该操作")
	ErrFavoriteExists      = New(7004, http.StatusConflict, "已收藏该商品")
	ErrFavoriteNotFound    = New(7005, http.StatusNotFound, "收藏不存在")
	ErrRatingOutOfRange    = New(7006, http.StatusBadRequest, "评分超出范围")
	ErrCommentContentEmpty = New(7007, http.StatusBadRequest, "评论内容不能为空")
)

// 上传错误码 (8000-8999)
var (
	ErrUploadFailed    = New(8000, http.StatusInternalServerError, "上传失败")
	ErrFileTypeInvalid = New(8001, http.StatusBadRequest, "不支持的文件类型")
	ErrFileTooLarge    = New(8002, http.StatusBadRequest, "文件过大")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
