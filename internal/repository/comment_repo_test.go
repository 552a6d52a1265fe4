// Package repository 评论与收藏仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// setupCommentTestDB 创建评论测试数据库
func setupCommentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Comment{},
		&models.Favorite{},
	)
	require.NoError(t, err)

	return db
}

func createTestComment(t *testing.T, db *gorm.DB, userID, listingID int64, rating int, status string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		ListingID: listingID,
		UserID:    userID,
		Content:   "商品质量不错",
		Rating:    rating,
		Status:    status,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestCommentRepository_ExistsActive(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("待审核评论计入", func(t *testing.T) {
		createTestComment(t, db, 1, 10, 5, models.CommentStatusPending)
		exists, err := repo.ExistsActive(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("已通过评论计入", func(t *testing.T) {
		createTestComment(t, db, 2, 10, 4, models.CommentStatusApproved)
		exists, err := repo.ExistsActive(ctx, 2, 10)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("已拒绝评论不计入", func(t *testing.T) {
		createTestComment(t, db, 3, 10, 1, models.CommentStatusRejected)
		exists, err := repo.ExistsActive(ctx, 3, 10)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCommentRepository_ListByListing(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	createTestComment(t, db, 1, 10, 5, models.CommentStatusApproved)
	createTestComment(t, db, 2, 10, 3, models.CommentStatusApproved)
	createTestComment(t, db, 3, 10, 1, models.CommentStatusPending)
	createTestComment(t, db, 4, 20, 4, models.CommentStatusApproved)

	comments, total, err := repo.ListByListing(ctx, 10, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, c := range comments {
		assert.Equal(t, models.CommentStatusApproved, c.Status)
		assert.Equal(t, int64(10), c.ListingID)
	}
}

func TestCommentRepository_GetRatingSummaries(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	createTestComment(t, db, 1, 10, 5, models.CommentStatusApproved)
	createTestComment(t, db, 2, 10, 3, models.CommentStatusApproved)
	createTestComment(t, db, 3, 10, 1, models.CommentStatusRejected)
	createTestComment(t, db, 4, 20, 4, models.CommentStatusApproved)

	summaries, err := repo.GetRatingSummaries(ctx, []int64{10, 20, 30})
	require.NoError(t, err)

	require.Contains(t, summaries, int64(10))
	assert.InDelta(t, 4.0, summaries[10].AverageRating, 0.001)
	assert.Equal(t, int64(2), summaries[10].Count)

	require.Contains(t, summaries, int64(20))
	assert.Equal(t, int64(1), summaries[20].Count)

	assert.NotContains(t, summaries, int64(30))

	t.Run("空ID列表", func(t *testing.T) {
		summaries, err := repo.GetRatingSummaries(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func TestFavoriteRepository_CreateAndExists(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	favorite := &models.Favorite{UserID: 1, ListingID: 10}
	require.NoError(t, repo.Create(ctx, favorite))

	exists, err := repo.Exists(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("重复收藏违反唯一约束", func(t *testing.T) {
		dup := &models.Favorite{UserID: 1, ListingID: 10}
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestFavoriteRepository_Delete(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: 1, ListingID: 10}))
	require.NoError(t, repo.Delete(ctx, 1, 10))

	exists, err := repo.Exists(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	db := setupCommentTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	listing := &models.Listing{
		VendorID: 1,
		Title:    "收藏的商品",
		Price:    50.00,
		Currency: "CNY",
		Status:   models.ListingStatusActive,
	}
	require.NoError(t, db.Create(listing).Error)

	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: 1, ListingID: listing.ID}))
	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: 2, ListingID: listing.ID}))

	favorites, total, err := repo.ListByUser(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, favorites, 1)
	assert.Equal(t, "收藏的商品", favorites[0].Listing.Title)

	count, err := repo.CountByListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
