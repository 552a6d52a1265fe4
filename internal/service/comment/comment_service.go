// Package comment 提供评论与收藏服务
package comment

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/logger"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// qualifyingOrderStatuses 具备评论资格的订单状态
//
// PROCESSING 为历史遗留状态，视同已支付。
var qualifyingOrderStatuses = []string{
	models.OrderStatusPaid,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCompleted,
}

// CommentService 评论服务
type CommentService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	orderRepo   *repository.OrderRepository
	listingRepo *repository.ListingRepository
}

// NewCommentService 创建评论服务
func NewCommentService(
	db *gorm.DB,
	commentRepo *repository.CommentRepository,
	orderRepo *repository.OrderRepository,
	listingRepo *repository.ListingRepository,
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
	}
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	ListingID int64  `json:"listing_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
}

// Create 发表评论，需要有包含该商品的有效订单且未评论过
func (s *CommentService) Create(ctx context.Context, userID int64, req *CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.ErrCommentContentEmpty
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.ErrRatingOutOfRange
	}

	if _, err := s.listingRepo.GetByID(ctx, req.ListingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	eligible, err := s.orderRepo.HasQualifyingOrder(ctx, userID, req.ListingID, qualifyingOrderStatuses)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !eligible {
		return nil, errors.ErrCommentNotEligible
	}

	exists, err := s.commentRepo.ExistsActive(ctx, userID, req.ListingID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrCommentExists
	}

	comment := &models.Comment{
		ListingID: req.ListingID,
		UserID:    userID,
		Content:   strings.TrimSpace(req.Content),
		Rating:    req.Rating,
		Status:    models.CommentStatusPending,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordComment(comment.Status)
	}
	logger.Info("评论已提交", logger.UserID(userID), logger.ListingID(req.ListingID))
	return comment, nil
}

// ListByListing 查询商品的已通过评论
func (s *CommentService) ListByListing(ctx context.Context, listingID int64, offset, limit int) ([]*models.Comment, int64, error) {
	comments, total, err := s.commentRepo.ListByListing(ctx, listingID, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return comments, total, nil
}

// ListByUser 查询本人评论
func (s *CommentService) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.Comment, int64, error) {
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return comments, total, nil
}

// ListForAdmin 管理员查询评论
func (s *CommentService) ListForAdmin(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Comment, int64, error) {
	comments, total, err := s.commentRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return comments, total, nil
}

// Moderate 管理员审核评论
func (s *CommentService) Moderate(ctx context.Context, commentID int64, approve bool) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Status != models.CommentStatusPending {
		return errors.ErrCommentStatusError
	}

	status := models.CommentStatusApproved
	if !approve {
		status = models.CommentStatusRejected
	}

	if err := s.commentRepo.UpdateFields(ctx, commentID, map[string]interface{}{
		"status": status,
	}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordComment(status)
	}
	return nil
}

// Delete 删除评论，本人或管理员
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64, isAdmin bool) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return errors.ErrPermissionDenied
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

func (s *CommentService) get(ctx context.Context, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCommentNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return comment, nil
}
