// Package admin 提供管理端统计聚合服务
package admin

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// TimeRange 统计时间窗口
const (
	TimeRangeToday = "today"
	TimeRangeWeek  = "week"
	TimeRangeMonth = "month"
	TimeRangeYear  = "year"
	TimeRangeAll   = "all"
)

// statsOrderStatuses 计入消费/销售统计的订单状态
//
// PROCESSING 为历史遗留状态，与 COMPLETED 同口径。
var statsOrderStatuses = []string{
	models.OrderStatusCompleted,
	models.OrderStatusProcessing,
}

// StatisticsService 统计服务
type StatisticsService struct {
	db          *gorm.DB
	orderRepo   *repository.OrderRepository
	listingRepo *repository.ListingRepository
	vendorRepo  *repository.VendorRepository
	userRepo    *repository.UserRepository
	paymentRepo *repository.PaymentRepository
	commentRepo *repository.CommentRepository
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(
	db *gorm.DB,
	orderRepo *repository.OrderRepository,
	listingRepo *repository.ListingRepository,
	vendorRepo *repository.VendorRepository,
	userRepo *repository.UserRepository,
	paymentRepo *repository.PaymentRepository,
	commentRepo *repository.CommentRepository,
) *StatisticsService {
	return &StatisticsService{
		db:          db,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		commentRepo: commentRepo,
	}
}

// windowStart 计算窗口起点，all 返回零值
func windowStart(timeRange string, now time.Time) (time.Time, error) {
	switch timeRange {
	case TimeRangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case TimeRangeWeek:
		return now.AddDate(0, 0, -7), nil
	case TimeRangeMonth:
		return now.AddDate(0, -1, 0), nil
	case TimeRangeYear:
		return now.AddDate(-1, 0, 0), nil
	case TimeRangeAll, "":
		return time.Time{}, nil
	default:
		return time.Time{}, errors.ErrInvalidParams.WithMessage("无效的统计时间范围")
	}
}

// UserSpending 按用户消费统计
type UserSpending struct {
	UserID        int64      `json:"user_id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	TotalSpent    float64    `json:"total_spent"`
	OrderCount    int64      `json:"order_count"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
}

// SpendingByUser 按用户聚合消费，仅计入 COMPLETED/PROCESSING 订单
func (s *StatisticsService) SpendingByUser(ctx context.Context, timeRange string) ([]*UserSpending, error) {
	since, err := windowStart(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByStatusesSince(ctx, statsOrderStatuses, since)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	byUser := map[int64]*UserSpending{}
	for _, o := range orders {
		entry, ok := byUser[o.UserID]
		if !ok {
			entry = &UserSpending{UserID: o.UserID}
			byUser[o.UserID] = entry
		}
		entry.TotalSpent += o.TotalAmount
		entry.OrderCount++
		created := o.CreatedAt
		if entry.LastOrderDate == nil || created.After(*entry.LastOrderDate) {
			entry.LastOrderDate = &created
		}
	}

	userIDs := make([]int64, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	for _, u := range users {
		if entry, ok := byUser[u.ID]; ok {
			entry.Email = u.Email
			entry.FirstName = u.FirstName
			entry.LastName = u.LastName
		}
	}

	result := make([]*UserSpending, 0, len(byUser))
	for _, entry := range byUser {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalSpent > result[j].TotalSpent
	})
	return result, nil
}

// VendorSales 按供应商销售统计
type VendorSales struct {
	VendorID     int64   `json:"vendor_id"`
	CompanyName  string  `json:"company_name"`
	TotalSales   float64 `json:"total_sales"`
	ProductCount int     `json:"product_count"`
	OrderCount   int     `json:"order_count"`
}

// SalesByVendor 按供应商聚合销售额
//
// 订单项经 listing 归并到供应商，listings/vendors 均按 ID 集合批量读取。
func (s *StatisticsService) SalesByVendor(ctx context.Context, timeRange string) ([]*VendorSales, error) {
	since, err := windowStart(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByStatusesSince(ctx, statsOrderStatuses, since)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := s.orderRepo.GetItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	listingIDs := make([]int64, 0, len(items))
	for _, item := range items {
		listingIDs = append(listingIDs, item.ListingID)
	}
	listings, err := s.listingRepo.ListByIDs(ctx, listingIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	vendorByListing := make(map[int64]int64, len(listings))
	for _, l := range listings {
		vendorByListing[l.ID] = l.VendorID
	}

	type vendorAgg struct {
		sales    float64
		listings map[int64]struct{}
		orders   map[int64]struct{}
	}
	byVendor := map[int64]*vendorAgg{}
	for _, item := range items {
		vendorID, ok := vendorByListing[item.ListingID]
		if !ok {
			continue
		}
		agg, ok := byVendor[vendorID]
		if !ok {
			agg = &vendorAgg{
				listings: map[int64]struct{}{},
				orders:   map[int64]struct{}{},
			}
			byVendor[vendorID] = agg
		}
		agg.sales += item.UnitPrice * float64(item.Quantity)
		agg.listings[item.ListingID] = struct{}{}
		agg.orders[item.OrderID] = struct{}{}
	}

	vendorIDs := make([]int64, 0, len(byVendor))
	for id := range byVendor {
		vendorIDs = append(vendorIDs, id)
	}
	vendors, err := s.vendorRepo.ListByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	nameByVendor := make(map[int64]string, len(vendors))
	for _, v := range vendors {
		nameByVendor[v.ID] = v.CompanyName
	}

	result := make([]*VendorSales, 0, len(byVendor))
	for id, agg := range byVendor {
		result = append(result, &VendorSales{
			VendorID:     id,
			CompanyName:  nameByVendor[id],
			TotalSales:   agg.sales,
			ProductCount: len(agg.listings),
			OrderCount:   len(agg.orders),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalSales > result[j].TotalSales
	})
	return result, nil
}

// OrderReportItem 报表订单项
type OrderReportItem struct {
	ListingID  int64   `json:"listing_id"`
	Title      string  `json:"title"`
	VendorName string  `json:"vendor_name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// OrderReportRow 订单明细报表行
type OrderReportRow struct {
	OrderID       int64             `json:"order_id"`
	OrderNo       string            `json:"order_no"`
	Status        string            `json:"status"`
	TotalAmount   float64           `json:"total_amount"`
	Currency      string            `json:"currency"`
	BuyerName     string            `json:"buyer_name"`
	BuyerEmail    string            `json:"buyer_email"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderReportItem `json:"items"`
}

// OrderReport 窗口内订单的反规范化明细
func (s *StatisticsService) OrderReport(ctx context.Context, timeRange string) ([]*OrderReportRow, error) {
	since, err := windowStart(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListSince(ctx, since)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	orderIDs := make([]int64, 0, len(orders))
	userIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		userIDs = append(userIDs, o.UserID)
	}

	items, err := s.orderRepo.GetItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	itemsByOrder := map[int64][]*models.OrderItem{}
	listingIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
		listingIDs = append(listingIDs, item.ListingID)
	}

	listings, err := s.listingRepo.ListByIDs(ctx, listingIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	vendorIDs := make([]int64, 0, len(listings))
	vendorByListing := make(map[int64]int64, len(listings))
	for _, l := range listings {
		vendorByListing[l.ID] = l.VendorID
		vendorIDs = append(vendorIDs, l.VendorID)
	}
	vendors, err := s.vendorRepo.ListByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	nameByVendor := make(map[int64]string, len(vendors))
	for _, v := range vendors {
		nameByVendor[v.ID] = v.CompanyName
	}

	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	userByID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	payments, err := s.paymentRepo.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	// 取每个订单最新一笔支付的状态
	paymentStatusByOrder := map[int64]string{}
	for _, p := range payments {
		paymentStatusByOrder[p.OrderID] = p.Status
	}

	rows := make([]*OrderReportRow, 0, len(orders))
	for _, o := range orders {
		row := &OrderReportRow{
			OrderID:       o.ID,
			OrderNo:       o.OrderNo,
			Status:        o.Status,
			TotalAmount:   o.TotalAmount,
			Currency:      o.Currency,
			PaymentStatus: paymentStatusByOrder[o.ID],
			CreatedAt:     o.CreatedAt,
		}
		if u, ok := userByID[o.UserID]; ok {
			row.BuyerName = u.FirstName + " " + u.LastName
			row.BuyerEmail = u.Email
		}
		for _, item := range itemsByOrder[o.ID] {
			row.Items = append(row.Items, OrderReportItem{
				ListingID:  item.ListingID,
				Title:      item.Title,
				VendorName: nameByVendor[vendorByListing[item.ListingID]],
				UnitPrice:  item.UnitPrice,
				Quantity:   item.Quantity,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Dashboard 管理端总览
type Dashboard struct {
	UserCount      int64            `json:"user_count"`
	VendorPending  int64            `json:"vendor_pending"`
	VendorApproved int64            `json:"vendor_approved"`
	ListingPending int64            `json:"listing_pending"`
	ListingActive  int64            `json:"listing_active"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

// GetDashboard 获取管理端总览
func (s *StatisticsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}

	var err error
	if dashboard.UserCount, err = s.userRepo.Count(ctx); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if dashboard.VendorPending, err = s.vendorRepo.CountByStatus(ctx, models.VendorStatusPending); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if dashboard.VendorApproved, err = s.vendorRepo.CountByStatus(ctx, models.VendorStatusApproved); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if dashboard.ListingPending, err = s.listingRepo.CountByStatus(ctx, models.ListingStatusPending); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if dashboard.ListingActive, err = s.listingRepo.CountByStatus(ctx, models.ListingStatusActive); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if dashboard.OrdersByStatus, err = s.orderRepo.CountByStatus(ctx); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return dashboard, nil
}
