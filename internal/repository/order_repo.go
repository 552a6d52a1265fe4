package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
)

// OrderRepository 订单仓储
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create 创建订单
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID 根据 ID 获取订单
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDWithItems 根据 ID 获取订单（包含订单项和商品）
func (r *OrderRepository) GetByIDWithItems(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Listing").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单号获取订单
func (r *OrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateFields 更新指定字段
func (r *OrderRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除订单并级联删除订单项
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// ListByUser 获取用户订单列表
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, offset, limit int, status string) ([]*models.Order, int64, error) {
	var orders []*models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Items").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// List 获取订单列表（管理端）
func (r *OrderRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Order, int64, error) {
	var orders []*models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if userID, ok := filters["user_id"].(int64); ok && userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if orderNo, ok := filters["order_no"].(string); ok && orderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+orderNo+"%")
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("created_at >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("created_at <= ?", endDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Preload("Items").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListIDsByListingIDs 获取包含指定商品的订单 ID 集合
// 用于供应商侧按自家商品圈定订单范围
func (r *OrderRepository) ListIDsByListingIDs(ctx context.Context, listingIDs []int64) ([]int64, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("listing_id IN ?", listingIDs).
		Distinct().
		Pluck("order_id", &ids).Error
	return ids, err
}

// ListByIDs 批量获取订单（含订单项）
func (r *OrderRepository) ListByIDs(ctx context.Context, ids []int64, offset, limit int) ([]*models.Order, int64, error) {
	if len(ids) == 0 {
		return nil, 0, nil
	}
	var orders []*models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("id IN ?", ids)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Items").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetOrderItems 获取订单项
func (r *OrderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// GetItemsByOrderIDs 批量获取多个订单的订单项
func (r *OrderRepository) GetItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]*models.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []*models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error
	return items, err
}

// ListByStatusesSince 获取指定状态集合在时间点之后创建的订单
// since 为零值时不限时间
func (r *OrderRepository) ListByStatusesSince(ctx context.Context, statuses []string, since time.Time) ([]*models.Order, error) {
	var orders []*models.Order
	query := r.db.WithContext(ctx).Where("status IN ?", statuses)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Find(&orders).Error
	return orders, err
}

// ListSince 获取时间点之后创建的全部订单
// since 为零值时不限时间
func (r *OrderRepository) ListSince(ctx context.Context, since time.Time) ([]*models.Order, error) {
	var orders []*models.Order
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Order("id DESC").Find(&orders).Error
	return orders, err
}

// HasQualifyingOrder 判断用户是否存在包含指定商品、状态合格的订单
// 用于评论资格判定
func (r *OrderRepository) HasQualifyingOrder(ctx context.Context, userID, listingID int64, statuses []string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Where("orders.status IN ?", statuses).
		Where("order_items.listing_id = ?", listingID).
		Count(&count).Error
	return count > 0, err
}

// Count 统计订单总数
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

// CountByStatus 统计各状态订单数量
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type result struct {
		Status string
		Count  int64
	}

	var results []result
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").Find(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, re := range results {
		counts[re.Status] = re.Count
	}
	return counts, nil
}
