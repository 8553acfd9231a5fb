package model

// Company 企业档案表 — 对应 companies（与 users 1:1）
type Company struct {
	UserID    string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	SIRET     string `gorm:"type:varchar(14);not null"  json:"siret"`
	LegalName string `gorm:"type:varchar(200);not null" json:"legal_name"`
	Address   string `gorm:"type:varchar(300);not null" json:"address"`
	LegalForm string `gorm:"type:varchar(50);not null"  json:"legal_form"`
	IsActive  bool   `gorm:"not null;default:true"      json:"is_active"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }
