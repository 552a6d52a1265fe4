package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// CommentRepository 评论仓储
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateFields 更新指定字段
func (r *CommentRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

// ExistsActive 判断用户对商品是否已有待审核或已通过的评论
func (r *CommentRepository) ExistsActive(ctx context.Context, userID, listingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Where("status IN ?", []string{models.CommentStatusPending, models.CommentStatusApproved}).
		Count(&count).Error
	return count > 0, err
}

// ListByListing 获取商品的已通过评论
func (r *CommentRepository) ListByListing(ctx context.Context, listingID int64, offset, limit int) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("listing_id = ?", listingID).
		Where("status = ?", models.CommentStatusApproved)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListByUser 获取用户自己的评论
func (r *CommentRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Listing").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// List 获取评论列表（管理端）
func (r *CommentRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Comment{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if listingID, ok := filters["listing_id"].(int64); ok && listingID > 0 {
		query = query.Where("listing_id = ?", listingID)
	}
	if userID, ok := filters["user_id"].(int64); ok && userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Preload("Listing").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// RatingSummary 商品评分汇总
type RatingSummary struct {
	ListingID     int64
	AverageRating float64
	Count         int64
}

// GetRatingSummaries 批量统计商品的已通过评论均分与数量
func (r *CommentRepository) GetRatingSummaries(ctx context.Context, listingIDs []int64) (map[int64]RatingSummary, error) {
	if len(listingIDs) == 0 {
		return map[int64]RatingSummary{}, nil
	}

	type row struct {
		ListingID int64
		Average   float64
		Count     int64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("listing_id, AVG(rating) as average, COUNT(*) as count").
		Where("listing_id IN ?", listingIDs).
		Where("status = ?", models.CommentStatusApproved).
		Group("listing_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make(map[int64]RatingSummary, len(rows))
	for _, rw := range rows {
		summaries[rw.ListingID] = RatingSummary{ListingID: rw.ListingID, AverageRating: rw.Average, Count: rw.Count}
	}
	return summaries, nil
}
