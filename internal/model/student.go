package model

import "time"

// ── 学生求职状态 ──

const (
	StudentSearching = "EN_RECHERCHE" // 正在寻找实习
	StudentPlaced    = "AFFECTE"      // 已获得最终分配
)

// Student 学生档案表 — 对应 students（与 users 1:1）
type Student struct {
	UserID               string     `gorm:"type:uuid;primaryKey"                            json:"user_id"`
	StudentNumber        string     `gorm:"type:varchar(20);not null"                       json:"student_number"`
	LastName             string     `gorm:"type:varchar(100);not null"                      json:"last_name"`
	FirstName            string     `gorm:"type:varchar(100);not null"                      json:"first_name"`
	BirthDate            *time.Time `gorm:"type:date"                                       json:"birth_date,omitempty"`
	Program              string     `gorm:"type:varchar(100);not null"                      json:"program"`
	ProgramYear          int        `gorm:"not null;default:1"                              json:"program_year"`
	SearchStatus         string     `gorm:"type:varchar(20);not null;default:'EN_RECHERCHE'" json:"search_status"`
	Visible              bool       `gorm:"not null;default:false"                          json:"visible"`
	LiabilityInsurance   bool       `gorm:"not null;default:false"                          json:"liability_insurance"`
	InsuranceValidatorID *string    `gorm:"type:uuid"                                       json:"insurance_validator_id,omitempty"`
	AccountCreatorID     *string    `gorm:"type:uuid"                                       json:"account_creator_id,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
