package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// ListingRepository 商品仓储
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository 创建商品仓储
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create 创建商品
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// GetByID 根据 ID 获取商品
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetByIDWithRelations 根据 ID 获取商品（包含供应商和分类）
func (r *ListingRepository) GetByIDWithRelations(ctx context.Context, id int64) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Category").
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update 更新商品
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// UpdateFields 更新指定字段
func (r *ListingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Updates(fields).Error
}

// IncrementViewCount 浏览数 +1
func (r *ListingRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// List 获取商品列表
// filters 支持 status / vendor_id / category_id / keyword / min_price / max_price
func (r *ListingRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Listing, int64, error) {
	var listings []*models.Listing
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Listing{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if vendorID, ok := filters["vendor_id"].(int64); ok && vendorID > 0 {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if categoryID, ok := filters["category_id"].(int64); ok && categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if minPrice, ok := filters["min_price"].(float64); ok && minPrice > 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice, ok := filters["max_price"].(float64); ok && maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Category").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// ListByIDs 批量获取商品
func (r *ListingRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var listings []*models.Listing
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error
	return listings, err
}

// ListIDsByVendor 获取供应商名下的全部商品 ID
func (r *ListingRepository) ListIDsByVendor(ctx context.Context, vendorID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("vendor_id = ?", vendorID).
		Pluck("id", &ids).Error
	return ids, err
}

// CountByStatus 按状态统计商品数量
func (r *ListingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Listing{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
