package model

import "time"

// Notification 站内通知表 — 对应 notifications
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Subject        string    `gorm:"type:varchar(200);not null"                     json:"subject"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
