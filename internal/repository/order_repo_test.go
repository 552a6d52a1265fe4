// Package repository 订单仓储单元测试
package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// setupOrderTestDB 创建订单测试数据库
func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	require.NoError(t, err)

	return db
}

var testOrderSeq int64

func createTestOrder(t *testing.T, db *gorm.DB, userID int64, status string, items ...models.OrderItem) *models.Order {
	t.Helper()

	testOrderSeq++
	order := &models.Order{
		OrderNo:     fmt.Sprintf("ORD20250101%06d", testOrderSeq),
		UserID:      userID,
		Status:      status,
		TotalAmount: 100.00,
		Currency:    "CNY",
		ShippingAddress: models.JSON{
			"line1": "123 Collins St",
			"city":  "Melbourne",
		},
		Items: items,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, 1, models.OrderStatusCreated,
		models.OrderItem{ListingID: 10, Title: "蓝牙耳机", UnitPrice: 50.00, Quantity: 2},
	)

	found, err := repo.GetByIDWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, int64(10), found.Items[0].ListingID)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, "Melbourne", found.ShippingAddress["city"])
}

func TestOrderRepository_GetByOrderNo(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, 1, models.OrderStatusCreated)

	found, err := repo.GetByOrderNo(ctx, order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.GetByOrderNo(ctx, "ORD00000000000000")
	assert.Error(t, err)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	createTestOrder(t, db, 1, models.OrderStatusCreated)
	createTestOrder(t, db, 1, models.OrderStatusPaid)
	createTestOrder(t, db, 2, models.OrderStatusCreated)

	t.Run("只返回本人订单", func(t *testing.T) {
		orders, total, err := repo.ListByUser(ctx, 1, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, o := range orders {
			assert.Equal(t, int64(1), o.UserID)
		}
	})

	t.Run("按状态筛选", func(t *testing.T) {
		orders, total, err := repo.ListByUser(ctx, 1, 0, 10, models.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, models.OrderStatusPaid, orders[0].Status)
	})
}

func TestOrderRepository_ListIDsByListingIDs(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o1 := createTestOrder(t, db, 1, models.OrderStatusPaid,
		models.OrderItem{ListingID: 10, Title: "商品A", UnitPrice: 50.00, Quantity: 2},
	)
	createTestOrder(t, db, 2, models.OrderStatusPaid,
		models.OrderItem{ListingID: 20, Title: "商品B", UnitPrice: 100.00, Quantity: 1},
	)

	ids, err := repo.ListIDsByListingIDs(ctx, []int64{10})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, o1.ID, ids[0])

	ids, err = repo.ListIDsByListingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestOrderRepository_ListByStatusesSince(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	completed := createTestOrder(t, db, 1, models.OrderStatusCompleted)
	createTestOrder(t, db, 1, models.OrderStatusProcessing)
	createTestOrder(t, db, 1, models.OrderStatusCreated)

	old := createTestOrder(t, db, 1, models.OrderStatusCompleted)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -60)).Error)

	since := time.Now().AddDate(0, 0, -30)
	orders, err := repo.ListByStatusesSince(ctx, []string{models.OrderStatusCompleted, models.OrderStatusProcessing}, since)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.NotEqual(t, models.OrderStatusCreated, o.Status)
		assert.NotEqual(t, old.ID, o.ID)
	}
	_ = completed
}

func TestOrderRepository_HasQualifyingOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	qualifying := []string{
		models.OrderStatusPaid,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
	}

	createTestOrder(t, db, 1, models.OrderStatusPaid,
		models.OrderItem{ListingID: 10, Title: "商品A", UnitPrice: 50.00, Quantity: 2},
	)
	createTestOrder(t, db, 2, models.OrderStatusCreated,
		models.OrderItem{ListingID: 10, Title: "商品A", UnitPrice: 50.00, Quantity: 1},
	)

	t.Run("已支付订单包含商品", func(t *testing.T) {
		ok, err := repo.HasQualifyingOrder(ctx, 1, 10, qualifying)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("仅有未支付订单", func(t *testing.T) {
		ok, err := repo.HasQualifyingOrder(ctx, 2, 10, qualifying)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("从未购买过该商品", func(t *testing.T) {
		ok, err := repo.HasQualifyingOrder(ctx, 1, 99, qualifying)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestOrderRepository_CountByStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	createTestOrder(t, db, 1, models.OrderStatusCreated)
	createTestOrder(t, db, 1, models.OrderStatusCreated)
	createTestOrder(t, db, 1, models.OrderStatusCompleted)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.OrderStatusCreated])
	assert.Equal(t, int64(1), counts[models.OrderStatusCompleted])
}

func TestOrderRepository_GetItemsByOrderIDs(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o1 := createTestOrder(t, db, 1, models.OrderStatusPaid,
		models.OrderItem{ListingID: 10, Title: "商品A", UnitPrice: 50.00, Quantity: 2},
		models.OrderItem{ListingID: 20, Title: "商品B", UnitPrice: 30.00, Quantity: 1},
	)
	o2 := createTestOrder(t, db, 2, models.OrderStatusPaid,
		models.OrderItem{ListingID: 10, Title: "商品A", UnitPrice: 50.00, Quantity: 1},
	)

	items, err := repo.GetItemsByOrderIDs(ctx, []int64{o1.ID, o2.ID})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = repo.GetItemsByOrderIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPaymentRepository_GetLatestByOrderID(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, 1, models.OrderStatusCreated)

	first := &models.Payment{
		OrderID:       order.ID,
		TransactionID: "txn-001",
		Amount:        100.00,
		Currency:      "CNY",
		Method:        models.PaymentMethodSimulated,
		Status:        models.PaymentStatusFailed,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Payment{
		OrderID:       order.ID,
		TransactionID: "txn-002",
		Amount:        100.00,
		Currency:      "CNY",
		Method:        models.PaymentMethodSimulated,
		Status:        models.PaymentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.GetLatestByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "txn-002", latest.TransactionID)

	t.Run("交易号唯一约束", func(t *testing.T) {
		dup := &models.Payment{
			OrderID:       order.ID,
			TransactionID: "txn-002",
			Amount:        100.00,
			Currency:      "CNY",
			Method:        models.PaymentMethodSimulated,
			Status:        models.PaymentStatusPending,
		}
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("按交易号查询", func(t *testing.T) {
		found, err := repo.GetByTransactionID(ctx, "txn-001")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
	})
}
