package models

import "time"

// Listing 商品（挂牌）模型
type Listing struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID        int64       `gorm:"index;not null" json:"vendor_id"`
	CategoryID      *int64      `gorm:"index" json:"category_id,omitempty"`
	Title           string      `gorm:"type:varchar(200);not null" json:"title"`
	Description     string      `gorm:"type:text;not null;default:''" json:"description"`
	Price           float64     `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency        string      `gorm:"type:varchar(10);not null;default:'CNY'" json:"currency"`
	Type            string      `gorm:"type:varchar(20);not null;default:'DIGITAL'" json:"type"`
	DownloadURL     *string     `gorm:"type:varchar(500)" json:"download_url,omitempty"`
	Images          StringArray `gorm:"type:jsonb" json:"images,omitempty"`
	Tags            StringArray `gorm:"type:jsonb" json:"tags,omitempty"`
	Status          string      `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	RejectionReason *string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	ViewCount       int         `gorm:"not null;default:0" json:"view_count"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Vendor   *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 表名
func (Listing) TableName() string {
	return "listings"
}

// ListingType 商品类型
const (
	ListingTypeDigital = "DIGITAL" // 数字制品
	ListingTypeService = "SERVICE" // 服务
	ListingTypeProduct = "PRODUCT" // 实物
)

// ListingStatus 商品状态
const (
	ListingStatusDraft    = "DRAFT"    // 草稿
	ListingStatusPending  = "PENDING"  // 待审核
	ListingStatusActive   = "ACTIVE"   // 在售
	ListingStatusRejected = "REJECTED" // 已驳回
	ListingStatusInactive = "INACTIVE" // 已下架
)

// Category 商品分类
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Category) TableName() string {
	return "categories"
}

// Favorite 用户收藏，user_id + listing_id 唯一
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:uk_favorite_user_listing;not null" json:"user_id"`
	ListingID int64     `gorm:"uniqueIndex:uk_favorite_user_listing;index;not null" json:"listing_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// TableName 表名
func (Favorite) TableName() string {
	return "favorites"
}
