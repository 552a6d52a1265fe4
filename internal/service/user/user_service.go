// Package user 提供用户服务
package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/crypto"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// UserService 用户服务
type UserService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	bcryptCost int
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB, userRepo *repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		db:         db,
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// ProfileInfo 用户资料
type ProfileInfo struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	Avatar    *string `json:"avatar,omitempty"`
	Language  *string `json:"language,omitempty"`

	VendorProfile *VendorInfo `json:"vendor_profile,omitempty"`
}

// VendorInfo 供应商资料
type VendorInfo struct {
	ID              int64   `json:"id"`
	CompanyName     string  `json:"company_name"`
	Description     *string `json:"description,omitempty"`
	ContactEmail    *string `json:"contact_email,omitempty"`
	ContactPhone    *string `json:"contact_phone,omitempty"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// GetProfile 获取当前用户资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ProfileInfo, error) {
	user, err := s.userRepo.GetByIDWithVendorProfile(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return toProfileInfo(user), nil
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Language  *string `json:"language,omitempty"`
}

// UpdateProfile 更新当前用户资料
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*ProfileInfo, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.OldPassword, user.PasswordHash) {
		return errors.ErrPasswordError.WithMessage("原密码错误")
	}

	hash, err := crypto.HashPasswordWithCost(req.NewPassword, s.bcryptCost)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password_hash": hash,
	}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	return nil
}

// ListUsers 管理员查询用户列表
func (s *UserService) ListUsers(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*ProfileInfo, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	infos := make([]*ProfileInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, toProfileInfo(u))
	}
	return infos, total, nil
}

// SetUserStatus 管理员启用/停用/封禁用户
func (s *UserService) SetUserStatus(ctx context.Context, userID int64, status string) error {
	switch status {
	case models.UserStatusActive, models.UserStatusInactive, models.UserStatusSuspended:
	default:
		return errors.ErrInvalidParams.WithMessage("无效的用户状态")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"status": status,
	}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// toProfileInfo 转换为用户资料
func toProfileInfo(user *models.User) *ProfileInfo {
	info := &ProfileInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Status:    user.Status,
		Avatar:    user.Avatar,
		Language:  user.Language,
	}
	if user.VendorProfile != nil {
		info.VendorProfile = &VendorInfo{
			ID:              user.VendorProfile.ID,
			CompanyName:     user.VendorProfile.CompanyName,
			Description:     user.VendorProfile.Description,
			ContactEmail:    user.VendorProfile.ContactEmail,
			ContactPhone:    user.VendorProfile.ContactPhone,
			Status:          user.VendorProfile.Status,
			RejectionReason: user.VendorProfile.RejectionReason,
		}
	}
	return info
}
