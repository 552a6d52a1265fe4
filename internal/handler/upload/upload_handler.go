// Package upload 提供文件上传相关的 HTTP Handler
package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	uploadService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/upload"
)

// UploadHandler 上传处理器
type UploadHandler struct {
	uploadService *uploadService.UploadService
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(uploadSvc *uploadService.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadSvc}
}

// UploadListingImage 上传商品图片
// @Summary 上传商品图片
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response{data=uploadService.UploadResult}
// @Router /api/v1/upload/listing-image [post]
func (h *UploadHandler) UploadListingImage(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	result, err := h.uploadService.UploadListingImage(c.Request.Context(), userID, file)
	handler.MustSucceed(c, err, result)
}

// UploadArtifact 上传商品交付文件
// @Summary 上传商品交付文件
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "文件"
// @Success 200 {object} response.Response{data=uploadService.UploadResult}
// @Router /api/v1/upload/artifact [post]
func (h *UploadHandler) UploadArtifact(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	result, err := h.uploadService.UploadArtifact(c.Request.Context(), userID, file)
	handler.MustSucceed(c, err, result)
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response{data=uploadService.UploadResult}
// @Router /api/v1/upload/avatar [post]
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	result, err := h.uploadService.UploadAvatar(c.Request.Context(), userID, file)
	handler.MustSucceed(c, err, result)
}
