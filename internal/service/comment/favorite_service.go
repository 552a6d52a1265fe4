package comment

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// FavoriteService 收藏服务
type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	listingRepo  *repository.ListingRepository
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(
	favoriteRepo *repository.FavoriteRepository,
	listingRepo *repository.ListingRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// Add 收藏商品，重复收藏返回冲突
func (s *FavoriteService) Add(ctx context.Context, userID, listingID int64) error {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrListingNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return errors.ErrFavoriteExists
	}

	if err := s.favoriteRepo.Create(ctx, &models.Favorite{
		UserID:    userID,
		ListingID: listingID,
	}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// Remove 取消收藏
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID int64) error {
	exists, err := s.favoriteRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if !exists {
		return errors.ErrFavoriteNotFound
	}

	if err := s.favoriteRepo.Delete(ctx, userID, listingID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// ListByUser 查询本人收藏
func (s *FavoriteService) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.Favorite, int64, error) {
	favorites, total, err := s.favoriteRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return favorites, total, nil
}

// IsFavorited 查询是否已收藏
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, listingID int64) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}
	return exists, nil
}
