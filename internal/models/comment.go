package models

import "time"

// Comment 商品评论
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID int64     `gorm:"index;not null" json:"listing_id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"type:smallint;not null" json:"rating"`
	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// TableName 表名
func (Comment) TableName() string {
	return "comments"
}

// CommentStatus 评论状态
const (
	CommentStatusPending  = "PENDING"  // 待审核
	CommentStatusApproved = "APPROVED" // 已通过
	CommentStatusRejected = "REJECTED" // 已驳回
)
