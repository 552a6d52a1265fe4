// Package listing 提供商品与分类服务
package listing

import (
	"context"

	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/logger"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// ListingService 商品服务
type ListingService struct {
	db          *gorm.DB
	listingRepo *repository.ListingRepository
	vendorRepo  *repository.VendorRepository
	commentRepo *repository.CommentRepository
}

// NewListingService 创建商品服务
func NewListingService(
	db *gorm.DB,
	listingRepo *repository.ListingRepository,
	vendorRepo *repository.VendorRepository,
	commentRepo *repository.CommentRepository,
) *ListingService {
	return &ListingService{
		db:          db,
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
		commentRepo: commentRepo,
	}
}

// CreateListingRequest 创建商品请求
type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Currency    string   `json:"currency,omitempty"`
	Type        string   `json:"type,omitempty" binding:"omitempty,oneof=DIGITAL SERVICE PRODUCT"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DownloadURL *string  `json:"download_url,omitempty"`
}

// ListingInfo 商品信息
type ListingInfo struct {
	ID              int64    `json:"id"`
	VendorID        int64    `json:"vendor_id"`
	VendorName      string   `json:"vendor_name,omitempty"`
	CategoryID      *int64   `json:"category_id,omitempty"`
	CategoryName    string   `json:"category_name,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	Type            string   `json:"type"`
	DownloadURL     *string  `json:"download_url,omitempty"`
	Images          []string `json:"images,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	ViewCount       int      `json:"view_count"`
	AverageRating   float64  `json:"average_rating"`
	CommentCount    int64    `json:"comment_count"`
}

// Create 供应商创建商品（初始为草稿）
func (s *ListingService) Create(ctx context.Context, userID int64, req *CreateListingRequest) (*models.Listing, error) {
	vendor, err := s.requireApprovedVendor(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "CNY"
	}
	listingType := req.Type
	if listingType == "" {
		listingType = models.ListingTypeDigital
	}

	listing := &models.Listing{
		VendorID:    vendor.ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		Type:        listingType,
		DownloadURL: req.DownloadURL,
		Images:      req.Images,
		Tags:        req.Tags,
		Status:      models.ListingStatusDraft,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商品已创建", logger.ListingID(listing.ID), logger.UserID(userID))
	return listing, nil
}

// UpdateListingRequest 更新商品请求
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Type        *string  `json:"type,omitempty" binding:"omitempty,oneof=DIGITAL SERVICE PRODUCT"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DownloadURL *string  `json:"download_url,omitempty"`
}

// Update 供应商更新自己的商品
func (s *ListingService) Update(ctx context.Context, userID, listingID int64, req *UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.requireOwnListing(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.ErrInvalidParams.WithMessage("价格必须大于 0")
		}
		fields["price"] = *req.Price
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.DownloadURL != nil {
		fields["download_url"] = *req.DownloadURL
	}
	if req.Images != nil {
		fields["images"] = models.StringArray(req.Images)
	}
	if req.Tags != nil {
		fields["tags"] = models.StringArray(req.Tags)
	}

	// 在售商品修改后需要重新审核
	if listing.Status == models.ListingStatusActive || listing.Status == models.ListingStatusRejected {
		fields["status"] = models.ListingStatusPending
		fields["rejection_reason"] = nil
	}

	if len(fields) > 0 {
		if err := s.listingRepo.UpdateFields(ctx, listingID, fields); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
	}

	return s.listingRepo.GetByID(ctx, listingID)
}

// Submit 供应商提交商品审核
func (s *ListingService) Submit(ctx context.Context, userID, listingID int64) error {
	listing, err := s.requireOwnListing(ctx, userID, listingID)
	if err != nil {
		return err
	}

	if listing.Status != models.ListingStatusDraft && listing.Status != models.ListingStatusRejected {
		return errors.ErrListingStatusError
	}

	return s.updateStatus(ctx, listingID, map[string]interface{}{
		"status":           models.ListingStatusPending,
		"rejection_reason": nil,
	})
}

// Deactivate 供应商下架自己的商品
func (s *ListingService) Deactivate(ctx context.Context, userID, listingID int64) error {
	listing, err := s.requireOwnListing(ctx, userID, listingID)
	if err != nil {
		return err
	}

	if listing.Status != models.ListingStatusActive {
		return errors.ErrListingStatusError
	}

	return s.updateStatus(ctx, listingID, map[string]interface{}{
		"status": models.ListingStatusInactive,
	})
}

// Approve 管理员通过商品审核
func (s *ListingService) Approve(ctx context.Context, listingID int64) error {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return err
	}

	if listing.Status != models.ListingStatusPending {
		return errors.ErrListingStatusError
	}

	return s.updateStatus(ctx, listingID, map[string]interface{}{
		"status":           models.ListingStatusActive,
		"rejection_reason": nil,
	})
}

// Reject 管理员驳回商品审核
func (s *ListingService) Reject(ctx context.Context, listingID int64, reason string) error {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return err
	}

	if listing.Status != models.ListingStatusPending {
		return errors.ErrListingStatusError
	}

	return s.updateStatus(ctx, listingID, map[string]interface{}{
		"status":           models.ListingStatusRejected,
		"rejection_reason": reason,
	})
}

// GetDetail 获取商品详情并累加浏览数
func (s *ListingService) GetDetail(ctx context.Context, listingID int64) (*ListingInfo, error) {
	listing, err := s.listingRepo.GetByIDWithRelations(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := s.listingRepo.IncrementViewCount(ctx, listingID); err != nil {
		logger.Warn("累加商品浏览数失败", logger.ListingID(listingID), logger.Err(err))
	} else {
		listing.ViewCount++
		if m := metrics.GetMetrics(); m != nil {
			m.RecordListingView()
		}
	}

	info := s.toListingInfo(listing)

	summaries, err := s.commentRepo.GetRatingSummaries(ctx, []int64{listingID})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if summary, ok := summaries[listingID]; ok {
		info.AverageRating = summary.AverageRating
		info.CommentCount = summary.Count
	}

	return info, nil
}

// Search 公开商品检索，仅返回在售商品
func (s *ListingService) Search(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*ListingInfo, int64, error) {
	if filters == nil {
		filters = map[string]interface{}{}
	}
	filters["status"] = models.ListingStatusActive

	listings, total, err := s.listingRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	infos, err := s.withRatings(ctx, listings)
	if err != nil {
		return nil, 0, err
	}
	return infos, total, nil
}

// ListByVendor 供应商查看自己的商品（含全部状态）
func (s *ListingService) ListByVendor(ctx context.Context, userID int64, offset, limit int, status string) ([]*ListingInfo, int64, error) {
	vendor, err := s.getVendor(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{"vendor_id": vendor.ID}
	if status != "" {
		filters["status"] = status
	}

	listings, total, err := s.listingRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	infos, err := s.withRatings(ctx, listings)
	if err != nil {
		return nil, 0, err
	}
	return infos, total, nil
}

// ListForAdmin 管理员查询商品列表（不限状态）
func (s *ListingService) ListForAdmin(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*ListingInfo, int64, error) {
	listings, total, err := s.listingRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	infos, err := s.withRatings(ctx, listings)
	if err != nil {
		return nil, 0, err
	}
	return infos, total, nil
}

// withRatings 批量补充评分汇总
func (s *ListingService) withRatings(ctx context.Context, listings []*models.Listing) ([]*ListingInfo, error) {
	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}

	summaries, err := s.commentRepo.GetRatingSummaries(ctx, ids)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	infos := make([]*ListingInfo, 0, len(listings))
	for _, l := range listings {
		info := s.toListingInfo(l)
		if summary, ok := summaries[l.ID]; ok {
			info.AverageRating = summary.AverageRating
			info.CommentCount = summary.Count
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *ListingService) getListing(ctx context.Context, listingID int64) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrListingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return listing, nil
}

func (s *ListingService) getVendor(ctx context.Context, userID int64) (*models.VendorProfile, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVendorNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return vendor, nil
}

func (s *ListingService) requireApprovedVendor(ctx context.Context, userID int64) (*models.VendorProfile, error) {
	vendor, err := s.getVendor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != models.VendorStatusApproved {
		return nil, errors.ErrVendorNotApproved
	}
	return vendor, nil
}

func (s *ListingService) requireOwnListing(ctx context.Context, userID, listingID int64) (*models.Listing, error) {
	vendor, err := s.getVendor(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.VendorID != vendor.ID {
		return nil, errors.ErrPermissionDenied
	}
	return listing, nil
}

func (s *ListingService) updateStatus(ctx context.Context, listingID int64, fields map[string]interface{}) error {
	if err := s.listingRepo.UpdateFields(ctx, listingID, fields); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// toListingInfo 转换为商品信息
func (s *ListingService) toListingInfo(listing *models.Listing) *ListingInfo {
	info := &ListingInfo{
		ID:              listing.ID,
		VendorID:        listing.VendorID,
		CategoryID:      listing.CategoryID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Currency:        listing.Currency,
		Type:            listing.Type,
		DownloadURL:     listing.DownloadURL,
		Images:          listing.Images,
		Tags:            listing.Tags,
		Status:          listing.Status,
		RejectionReason: listing.RejectionReason,
		ViewCount:       listing.ViewCount,
	}
	if listing.Vendor != nil {
		info.VendorName = listing.Vendor.CompanyName
	}
	if listing.Category != nil {
		info.CategoryName = listing.Category.Name
	}
	return info
}
