package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// VendorRepository 供应商仓储
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建供应商仓储
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create 创建供应商资料
func (r *VendorRepository) Create(ctx context.Context, profile *models.VendorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByID 根据 ID 获取供应商资料
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByIDWithUser 根据 ID 获取供应商资料（包含用户）
func (r *VendorRepository) GetByIDWithUser(ctx context.Context, id int64) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).Preload("User").First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserID 根据用户 ID 获取供应商资料
func (r *VendorRepository) GetByUserID(ctx context.Context, userID int64) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateFields 更新指定字段
func (r *VendorRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.VendorProfile{}).Where("id = ?", id).Updates(fields).Error
}

// List 获取供应商列表（管理端）
func (r *VendorRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.VendorProfile, int64, error) {
	var profiles []*models.VendorProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.VendorProfile{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("company_name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Order("id DESC").Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ListByIDs 批量获取供应商资料
func (r *VendorRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.VendorProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []*models.VendorProfile
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

// CountByStatus 按状态统计供应商数量
func (r *VendorRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VendorProfile{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
