// Package upload 提供文件上传服务
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/logger"
	"github.com/HanSo1o-a/cimplico-marketplace/pkg/oss"
)

// 上传限制
const (
	MaxImageSize    = 5 << 20  // 5MB
	MaxArtifactSize = 50 << 20 // 50MB
)

// imageExts 允许的图片扩展名
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// artifactExts 允许的数字制品扩展名
var artifactExts = map[string]bool{
	".pdf": true, ".zip": true, ".xlsx": true, ".docx": true, ".csv": true, ".txt": true,
}

// UploadService 上传服务
type UploadService struct {
	uploader oss.Uploader
}

// NewUploadService 创建上传服务
func NewUploadService(uploader oss.Uploader) *UploadService {
	return &UploadService{uploader: uploader}
}

// UploadResult 上传结果
type UploadResult struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	Size      int64  `json:"size"`
}

// UploadListingImage 上传商品图片
func (s *UploadService) UploadListingImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if !imageExts[ext] {
		return nil, errors.ErrFileTypeInvalid.WithMessage(fmt.Sprintf("不支持的图片格式: %s", ext))
	}
	if file.Size > MaxImageSize {
		return nil, errors.ErrFileTooLarge
	}

	return s.upload(ctx, userID, "listings", file)
}

// UploadArtifact 上传数字制品
func (s *UploadService) UploadArtifact(ctx context.Context, userID int64, file *multipart.FileHeader) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if !artifactExts[ext] {
		return nil, errors.ErrFileTypeInvalid.WithMessage(fmt.Sprintf("不支持的制品格式: %s", ext))
	}
	if file.Size > MaxArtifactSize {
		return nil, errors.ErrFileTooLarge
	}

	return s.upload(ctx, userID, "artifacts", file)
}

// UploadAvatar 上传用户头像
func (s *UploadService) UploadAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if !imageExts[ext] {
		return nil, errors.ErrFileTypeInvalid.WithMessage(fmt.Sprintf("不支持的图片格式: %s", ext))
	}
	if file.Size > MaxImageSize {
		return nil, errors.ErrFileTooLarge
	}

	return s.upload(ctx, userID, "avatars", file)
}

func (s *UploadService) upload(ctx context.Context, userID int64, prefix string, file *multipart.FileHeader) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.ErrUploadFailed.WithError(err)
	}
	defer src.Close()

	objectKey := oss.GenerateObjectKey(prefix, file.Filename)
	url, err := s.uploader.Upload(ctx, objectKey, src)
	if err != nil {
		return nil, errors.ErrUploadFailed.WithError(err)
	}

	logger.Info("文件上传成功",
		logger.UserID(userID),
		logger.String("object_key", objectKey),
		logger.Int64("size", file.Size),
	)
	return &UploadResult{
		URL:       url,
		ObjectKey: objectKey,
		Size:      file.Size,
	}, nil
}
