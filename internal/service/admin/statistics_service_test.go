package admin

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 使用共享内存模式避免事务隔离问题
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.VendorProfile{},
		&models.Listing{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Comment{},
	)
	require.NoError(t, err)

	return db
}

func newStatsService(db *gorm.DB) *StatisticsService {
	return NewStatisticsService(
		db,
		repository.NewOrderRepository(db),
		repository.NewListingRepository(db),
		repository.NewVendorRepository(db),
		repository.NewUserRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewCommentRepository(db),
	)
}

// seedStatsData 两个买家、两个供应商、各自一个商品，三笔计入统计的订单
func seedStatsData(t *testing.T, db *gorm.DB) {
	t.Helper()

	for i, email := range []string{"alice@example.com", "bob@example.com"} {
		user := &models.User{
			Email:        email,
			PasswordHash: "h",
			FirstName:    fmt.Sprintf("名%d", i+1),
			LastName:     "氏",
			Role:         models.RoleUser,
			Status:       models.UserStatusActive,
		}
		require.NoError(t, db.Create(user).Error)
	}

	for i := 1; i <= 2; i++ {
		vendor := &models.VendorProfile{
			UserID:      int64(100 + i),
			CompanyName: fmt.Sprintf("供应商%d", i),
			Status:      models.VendorStatusApproved,
		}
		require.NoError(t, db.Create(vendor).Error)

		listing := &models.Listing{
			VendorID: vendor.ID,
			Title:    fmt.Sprintf("商品%d", i),
			Price:    float64(i) * 100,
			Currency: "CNY",
			Status:   models.ListingStatusActive,
		}
		require.NoError(t, db.Create(listing).Error)
	}

	makeOrder := func(no string, userID int64, status string, amount float64, listingID int64, qty int) {
		order := &models.Order{
			OrderNo:     no,
			UserID:      userID,
			Status:      status,
			TotalAmount: amount,
			Currency:    "CNY",
			Items: []models.OrderItem{
				{ListingID: listingID, Title: "商品", UnitPrice: amount / float64(qty), Quantity: qty},
			},
		}
		require.NoError(t, db.Create(order).Error)
	}

	// 买家1：COMPLETED 200（商品1×2）、PROCESSING 200（商品2×1）
	makeOrder("S-001", 1, models.OrderStatusCompleted, 200, 1, 2)
	makeOrder("S-002", 1, models.OrderStatusProcessing, 200, 2, 1)
	// 买家2：COMPLETED 100（商品1×1）
	makeOrder("S-003", 2, models.OrderStatusCompleted, 100, 1, 1)
	// 不计入统计口径的订单
	makeOrder("S-004", 2, models.OrderStatusCreated, 999, 1, 1)
	makeOrder("S-005", 2, models.OrderStatusCancelled, 999, 2, 1)
}

func TestStatisticsService_SpendingByUser(t *testing.T) {
	db := setupStatsTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()
	seedStatsData(t, db)

	result, err := svc.SpendingByUser(ctx, TimeRangeAll)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// 按消费额降序
	assert.Equal(t, int64(1), result[0].UserID)
	assert.InDelta(t, 400.0, result[0].TotalSpent, 0.001)
	assert.Equal(t, int64(2), result[0].OrderCount)
	assert.Equal(t, "alice@example.com", result[0].Email)
	assert.NotNil(t, result[0].LastOrderDate)

	assert.Equal(t, int64(2), result[1].UserID)
	assert.InDelta(t, 100.0, result[1].TotalSpent, 0.001)
	assert.Equal(t, int64(1), result[1].OrderCount)

	t.Run("无效时间范围", func(t *testing.T) {
		_, err := svc.SpendingByUser(ctx, "decade")
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidParams.Code, appErr.Code)
	})

	t.Run("窗口外订单不计入", func(t *testing.T) {
		old := time.Now().AddDate(0, 0, -60)
		require.NoError(t, db.Model(&models.Order{}).Where("order_no = ?", "S-003").
			Update("created_at", old).Error)

		result, err := svc.SpendingByUser(ctx, TimeRangeMonth)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, int64(1), result[0].UserID)
	})
}

func TestStatisticsService_SalesByVendor(t *testing.T) {
	db := setupStatsTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()
	seedStatsData(t, db)

	result, err := svc.SalesByVendor(ctx, TimeRangeAll)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// 供应商1：商品1 被订单 S-001（200）与 S-003（100）购买
	var v1, v2 *VendorSales
	for _, v := range result {
		switch v.VendorID {
		case 1:
			v1 = v
		case 2:
			v2 = v
		}
	}
	require.NotNil(t, v1)
	require.NotNil(t, v2)

	assert.InDelta(t, 300.0, v1.TotalSales, 0.001)
	assert.Equal(t, 1, v1.ProductCount)
	assert.Equal(t, 2, v1.OrderCount)
	assert.Equal(t, "供应商1", v1.CompanyName)

	assert.InDelta(t, 200.0, v2.TotalSales, 0.001)
	assert.Equal(t, 1, v2.ProductCount)
	assert.Equal(t, 1, v2.OrderCount)
}

func TestStatisticsService_OrderReport(t *testing.T) {
	db := setupStatsTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()
	seedStatsData(t, db)

	payment := &models.Payment{
		OrderID:       1,
		TransactionID: "txn-report-001",
		Amount:        200,
		Currency:      "CNY",
		Method:        models.PaymentMethodSimulated,
		Status:        models.PaymentStatusCompleted,
	}
	require.NoError(t, db.Create(payment).Error)

	rows, err := svc.OrderReport(ctx, TimeRangeAll)
	require.NoError(t, err)
	// 报表含窗口内全部订单（含 CREATED/CANCELLED）
	require.Len(t, rows, 5)

	var reported *OrderReportRow
	for _, row := range rows {
		if row.OrderNo == "S-001" {
			reported = row
		}
	}
	require.NotNil(t, reported)
	assert.Equal(t, "名1 氏", reported.BuyerName)
	assert.Equal(t, "alice@example.com", reported.BuyerEmail)
	assert.Equal(t, models.PaymentStatusCompleted, reported.PaymentStatus)
	require.Len(t, reported.Items, 1)
	assert.Equal(t, "供应商1", reported.Items[0].VendorName)
}

func TestStatisticsService_GetDashboard(t *testing.T) {
	db := setupStatsTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()
	seedStatsData(t, db)

	dashboard, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.UserCount)
	assert.Equal(t, int64(2), dashboard.VendorApproved)
	assert.Equal(t, int64(2), dashboard.ListingActive)
	assert.Equal(t, int64(2), dashboard.OrdersByStatus[models.OrderStatusCompleted])
	assert.Equal(t, int64(1), dashboard.OrdersByStatus[models.OrderStatusCreated])
}
