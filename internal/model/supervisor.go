package model

// Supervisor 实习责任教师档案表 — 对应 supervisors（与 users 1:1）
// SecretaryRights 为真时，教师可在全部秘书休假期间代行秘书职能
type Supervisor struct {
	UserID          string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	LastName        string `gorm:"type:varchar(100);not null" json:"last_name"`
	FirstName       string `gorm:"type:varchar(100);not null" json:"first_name"`
	SecretaryRights bool   `gorm:"not null;default:false"     json:"secretary_rights"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Supervisor) TableName() string { return "supervisors" }
