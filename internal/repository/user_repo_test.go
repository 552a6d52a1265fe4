// Package repository 用户仓储单元测试
package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// setupUserTestDB 创建用户测试数据库
func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.VendorProfile{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "测试",
		LastName:     "用户",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserRepository_Create(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Wang",
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}

	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	t.Run("邮箱唯一约束", func(t *testing.T) {
		dup := &models.User{
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleUser,
			Status:       models.UserStatusActive,
		}
		err := repo.Create(ctx, dup)
		assert.Error(t, err)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "bob@example.com", models.RoleUser)

	t.Run("获取存在的用户", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("获取不存在的用户", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.Error(t, err)
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "carol@example.com", models.RoleUser)

	exists, err := repo.ExistsByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_GetByIDWithVendorProfile(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "vendor@example.com", models.RoleVendor)
	profile := &models.VendorProfile{
		UserID:      user.ID,
		CompanyName: "测试公司",
		Status:      models.VendorStatusApproved,
	}
	require.NoError(t, db.Create(profile).Error)

	found, err := repo.GetByIDWithVendorProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.VendorProfile)
	assert.Equal(t, "测试公司", found.VendorProfile.CompanyName)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "dave@example.com", models.RoleUser)

	err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"status": models.UserStatusSuspended,
		"role":   models.RoleVendor,
	})
	require.NoError(t, err)

	var found models.User
	db.First(&found, user.ID)
	assert.Equal(t, models.UserStatusSuspended, found.Status)
	assert.Equal(t, models.RoleVendor, found.Role)
}

func TestUserRepository_List(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createTestUser(t, db, fmt.Sprintf("user%d@example.com", i), models.RoleUser)
	}
	createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	t.Run("获取所有用户", func(t *testing.T) {
		users, total, err := repo.List(ctx, 0, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, users, 4)
	})

	t.Run("按角色筛选", func(t *testing.T) {
		users, total, err := repo.List(ctx, 0, 10, map[string]interface{}{
			"role": models.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		for _, u := range users {
			assert.Equal(t, models.RoleAdmin, u.Role)
		}
	})

	t.Run("按关键字搜索", func(t *testing.T) {
		users, _, err := repo.List(ctx, 0, 10, map[string]interface{}{
			"keyword": "admin",
		})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "admin@example.com", users[0].Email)
	})

	t.Run("分页", func(t *testing.T) {
		users, total, err := repo.List(ctx, 0, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, users, 2)
	})
}
