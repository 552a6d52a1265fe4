// Package order 提供订单服务
package order

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/logger"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/utils"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// OrderService 订单服务
type OrderService struct {
	db          *gorm.DB
	orderRepo   *repository.OrderRepository
	listingRepo *repository.ListingRepository
	vendorRepo  *repository.VendorRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo *repository.OrderRepository,
	listingRepo *repository.ListingRepository,
	vendorRepo *repository.VendorRepository,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
	}
}

// CreateOrderItemRequest 订单项请求
type CreateOrderItemRequest struct {
	ListingID int64 `json:"listing_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,dive"`
	TotalAmount     float64                  `json:"total_amount" binding:"required,gt=0"`
	Currency        string                   `json:"currency" binding:"required"`
	ShippingAddress models.JSON              `json:"shipping_address" binding:"required"`
	Notes           *string                  `json:"notes,omitempty"`
}

// Create 创建订单
//
// 总额以服务端按商品当前价重算为准，与声明值不一致时整单拒绝。
// 单价取商品价格快照，订单与订单项同事务落库。
func (s *OrderService) Create(ctx context.Context, userID int64, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.ErrOrderEmpty
	}

	listingIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errors.ErrInvalidParams.WithMessage("商品数量必须大于 0")
		}
		listingIDs = append(listingIDs, item.ListingID)
	}
	if len(utils.Unique(listingIDs)) != len(listingIDs) {
		return nil, errors.ErrInvalidParams.WithMessage("订单中存在重复商品")
	}

	listings, err := s.listingRepo.ListByIDs(ctx, listingIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	listingByID := make(map[int64]*models.Listing, len(listings))
	for _, l := range listings {
		listingByID[l.ID] = l
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		listing, ok := listingByID[item.ListingID]
		if !ok {
			return nil, errors.ErrListingNotFound
		}
		if listing.Status != models.ListingStatusActive {
			return nil, errors.ErrListingNotActive
		}
		if listing.Currency != req.Currency {
			return nil, errors.ErrInvalidParams.WithMessage("币种与商品不一致")
		}

		total += listing.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ListingID: listing.ID,
			Title:     listing.Title,
			UnitPrice: listing.Price,
			Quantity:  item.Quantity,
		})
	}

	if !utils.AmountEqual(total, req.TotalAmount) {
		return nil, errors.ErrOrderAmountError.WithMessage("订单总额与商品价格不符，请刷新后重试")
	}

	order := &models.Order{
		OrderNo:         utils.GenerateOrderNo("ORD"),
		UserID:          userID,
		Status:          models.OrderStatusCreated,
		TotalAmount:     total,
		Currency:        req.Currency,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}

	// 订单与订单项在同一事务内落库
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordOrder(order.Status)
	}
	logger.Info("订单已创建",
		logger.OrderNo(order.OrderNo),
		logger.UserID(userID),
		logger.Float64("total_amount", total),
	)
	return order, nil
}

// GetDetail 获取订单详情，仅本人或管理员可见
func (s *OrderService) GetDetail(ctx context.Context, userID int64, orderID int64, isAdmin bool) (*models.Order, error) {
	order, err := s.getWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, errors.ErrOrderNotOwned
	}
	return order, nil
}

// ListByUser 查询本人订单
func (s *OrderService) ListByUser(ctx context.Context, userID int64, offset, limit int, status string) ([]*models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, offset, limit, status)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return orders, total, nil
}

// ListForAdmin 管理员查询订单
func (s *OrderService) ListForAdmin(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return orders, total, nil
}

// ListForVendor 供应商查询包含自己商品的订单
func (s *OrderService) ListForVendor(ctx context.Context, userID int64, offset, limit int) ([]*models.Order, int64, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, errors.ErrVendorNotFound
		}
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	listingIDs, err := s.listingRepo.ListIDsByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	orderIDs, err := s.orderRepo.ListIDsByListingIDs(ctx, listingIDs)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	orders, total, err := s.orderRepo.ListByIDs(ctx, orderIDs, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return orders, total, nil
}

// Cancel 用户取消订单，仅未支付订单可取消，取消原因必填
func (s *OrderService) Cancel(ctx context.Context, userID, orderID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.ErrInvalidParams.WithMessage("取消原因不能为空")
	}

	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return errors.ErrOrderNotOwned
	}
	if order.Status != models.OrderStatusCreated {
		return errors.ErrOrderCannotCancel
	}
	return s.transition(ctx, order, models.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at":  time.Now(),
		"cancel_reason": reason,
	})
}

// AdminCancel 管理员取消订单，未支付与已支付订单均可取消，取消原因必填
func (s *OrderService) AdminCancel(ctx context.Context, orderID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.ErrInvalidParams.WithMessage("取消原因不能为空")
	}

	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusCreated && order.Status != models.OrderStatusPaid {
		return errors.ErrOrderCannotCancel
	}
	return s.transition(ctx, order, models.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at":  time.Now(),
		"cancel_reason": reason,
	})
}

// AdminDelete 管理员删除订单，级联删除订单项
func (s *OrderService) AdminDelete(ctx context.Context, orderID int64) error {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("订单已删除", logger.OrderNo(order.OrderNo), logger.Int64("order_id", order.ID))
	return nil
}

// Ship 发货，已支付订单进入已发货
// 管理员可发货任意订单，供应商仅能发货包含自家商品的订单
func (s *OrderService) Ship(ctx context.Context, userID, orderID int64, isAdmin bool) error {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}

	if !isAdmin {
		owns, err := s.vendorOwnsOrderItems(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if !owns {
			return errors.ErrPermissionDenied
		}
	}

	return s.transition(ctx, order, models.OrderStatusShipped, map[string]interface{}{
		"shipped_at": time.Now(),
	})
}

// MarkDelivered 管理员标记妥投
func (s *OrderService) MarkDelivered(ctx context.Context, orderID int64) error {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}
	return s.transition(ctx, order, models.OrderStatusDelivered, map[string]interface{}{
		"delivered_at": time.Now(),
	})
}

// Complete 管理员完成订单
func (s *OrderService) Complete(ctx context.Context, orderID int64) error {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}
	return s.transition(ctx, order, models.OrderStatusCompleted, map[string]interface{}{
		"completed_at": time.Now(),
	})
}

// ConfirmReceipt 用户确认收货
//
// target 仅允许 DELIVERED 或 COMPLETED，且订单当前必须为 SHIPPED。
func (s *OrderService) ConfirmReceipt(ctx context.Context, userID, orderID int64, target string) error {
	if target != models.OrderStatusDelivered && target != models.OrderStatusCompleted {
		return errors.ErrInvalidParams.WithMessage("确认收货目标状态无效")
	}

	order, err := s.get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return errors.ErrOrderNotOwned
	}
	if order.Status != models.OrderStatusShipped {
		return errors.ErrOrderStatusError
	}

	fields := map[string]interface{}{}
	now := time.Now()
	if target == models.OrderStatusDelivered {
		fields["delivered_at"] = now
	} else {
		fields["completed_at"] = now
	}
	return s.transition(ctx, order, target, fields)
}

// vendorOwnsOrderItems 判断供应商的商品是否出现在订单项中
func (s *OrderService) vendorOwnsOrderItems(ctx context.Context, userID, orderID int64) (bool, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrVendorNotFound
		}
		return false, errors.ErrDatabaseError.WithError(err)
	}

	listingIDs, err := s.listingRepo.ListIDsByVendor(ctx, vendor.ID)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}

	for _, item := range items {
		if utils.Contains(listingIDs, item.ListingID) {
			return true, nil
		}
	}
	return false, nil
}

// transition 执行状态迁移，非法迁移整体拒绝
func (s *OrderService) transition(ctx context.Context, order *models.Order, to string, extra map[string]interface{}) error {
	if !models.CanTransitionOrder(order.Status, to) {
		return errors.ErrOrderStatusError
	}

	fields := map[string]interface{}{"status": to}
	for k, v := range extra {
		fields[k] = v
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, fields); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordOrder(to)
	}
	logger.Info("订单状态已变更",
		logger.OrderNo(order.OrderNo),
		logger.String("from", order.Status),
		logger.String("to", to),
	)
	order.Status = to
	return nil
}

func (s *OrderService) get(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return order, nil
}

func (s *OrderService) getWithItems(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return order, nil
}
