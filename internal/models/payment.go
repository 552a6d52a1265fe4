package models

import "time"

// Payment 支付记录
type Payment struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64      `gorm:"index;not null" json:"order_id"`
	TransactionID string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_id"`
	Amount        float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string     `gorm:"type:varchar(10);not null;default:'CNY'" json:"currency"`
	Method        string     `gorm:"type:varchar(30);not null;default:'SIMULATED'" json:"method"`
	Status        string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	FailReason    *string    `gorm:"type:varchar(255)" json:"fail_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName 表名
func (Payment) TableName() string {
	return "payments"
}

// PaymentStatus 支付状态
const (
	PaymentStatusPending   = "PENDING"   // 待支付
	PaymentStatusCompleted = "COMPLETED" // 已完成
	PaymentStatusFailed    = "FAILED"    // 失败
	PaymentStatusRefunded  = "REFUNDED"  // 已退款
)

// PaymentMethod 支付方式
const (
	PaymentMethodSimulated = "SIMULATED" // 模拟支付
	PaymentMethodCard      = "CARD"      // 银行卡
	PaymentMethodTransfer  = "TRANSFER"  // 转账
)
