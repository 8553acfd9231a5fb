package model

// Secretary 教学秘书档案表 — 对应 secretaries（与 users 1:1）
type Secretary struct {
	UserID    string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	OnLeave   bool   `gorm:"not null;default:false"     json:"on_leave"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Secretary) TableName() string { return "secretaries" }
