// Package models 定义数据模型
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// User 用户模型
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100);not null;default:''" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null;default:''" json:"last_name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Status       string     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	Avatar       *string    `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Language     *string    `gorm:"type:varchar(10)" json:"language,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	VendorProfile *VendorProfile `gorm:"foreignKey:UserID" json:"vendor_profile,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// UserRole 用户角色
const (
	RoleUser   = "USER"   // 普通用户
	RoleVendor = "VENDOR" // 供应商
	RoleAdmin  = "ADMIN"  // 管理员
)

// UserStatus 用户状态
const (
	UserStatusActive    = "ACTIVE"    // 正常
	UserStatusInactive  = "INACTIVE"  // 停用
	UserStatusSuspended = "SUSPENDED" // 封禁
)

// VendorProfile 供应商资料
type VendorProfile struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64      `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName     string     `gorm:"type:varchar(200);not null" json:"company_name"`
	BusinessNumber  *string    `gorm:"type:varchar(50)" json:"business_number,omitempty"`
	Description     *string    `gorm:"type:text" json:"description,omitempty"`
	ContactEmail    *string    `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	ContactPhone    *string    `gorm:"type:varchar(30)" json:"contact_phone,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 表名
func (VendorProfile) TableName() string {
	return "vendor_profiles"
}

// VendorStatus 供应商审核状态
const (
	VendorStatusPending  = "PENDING"  // 待审核
	VendorStatusApproved = "APPROVED" // 已通过
	VendorStatusRejected = "REJECTED" // 已驳回
)

// JSON 自定义 JSON 类型
type JSON map[string]interface{}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Unmarshal 将 JSON 值反序列化到目标结构（便于业务层使用）
func (j JSON) Unmarshal(target interface{}) error {
	if j == nil {
		return nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}

// StringArray 字符串数组，序列化为 JSON 存储
type StringArray []string

// Scan 实现 sql.Scanner 接口
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, a)
}

// Value 实现 driver.Valuer 接口
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}
