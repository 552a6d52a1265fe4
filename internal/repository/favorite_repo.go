package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// FavoriteRepository 收藏仓储
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 创建收藏
func (r *FavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// Delete 取消收藏
func (r *FavoriteRepository) Delete(ctx context.Context, userID, listingID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{}).Error
}

// Exists 判断用户是否已收藏商品
func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser 获取用户收藏列表（含商品）
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.Favorite, int64, error) {
	var favorites []*models.Favorite
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Listing").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

// ListListingIDsByUser 获取用户收藏的全部商品 ID
func (r *FavoriteRepository) ListListingIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("listing_id", &ids).Error
	return ids, err
}

// CountByListing 统计商品被收藏次数
func (r *FavoriteRepository) CountByListing(ctx context.Context, listingID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error
	return count, err
}
