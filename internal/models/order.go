package models

import "time"

// Order 订单模型
type Order struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo         string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`
	UserID          int64      `gorm:"index;not null" json:"user_id"`
	Status          string     `gorm:"type:varchar(20);not null;default:'CREATED'" json:"status"`
	TotalAmount     float64    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency        string     `gorm:"type:varchar(10);not null;default:'CNY'" json:"currency"`
	ShippingAddress JSON       `gorm:"type:jsonb" json:"shipping_address,omitempty"`
	PaymentMethod   *string    `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	Notes           *string    `gorm:"type:varchar(500)" json:"notes,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelReason    *string    `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatus 订单状态
const (
	OrderStatusCreated    = "CREATED"    // 已创建（待支付）
	OrderStatusPaid       = "PAID"       // 已支付
	OrderStatusProcessing = "PROCESSING" // 处理中（历史遗留状态，仅统计口径使用）
	OrderStatusShipped    = "SHIPPED"    // 已发货
	OrderStatusDelivered  = "DELIVERED"  // 已送达
	OrderStatusCompleted  = "COMPLETED"  // 已完成
	OrderStatusCancelled  = "CANCELLED"  // 已取消
	OrderStatusRefunded   = "REFUNDED"   // 已退款
)

// orderTransitions 订单状态机的合法迁移
var orderTransitions = map[string][]string{
	OrderStatusCreated:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCompleted},
	OrderStatusDelivered: {OrderStatusCompleted},
}

// CanTransitionOrder 判断订单状态能否从 from 迁移到 to
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem 订单行
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"index;not null" json:"order_id"`
	ListingID int64     `gorm:"index;not null" json:"listing_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	UnitPrice float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// TableName 表名
func (OrderItem) TableName() string {
	return "order_items"
}
