package model

import "time"

// ── 机会类型 ──

const (
	OfferTypeInternship = "STAGE"
	OfferTypeWorkStudy  = "ALTERNANCE"
	OfferTypeContract   = "CDD"
)

// ── 审核轴（etat）──

const (
	OfferPendingValidation = "EN_ATTENTE_VALIDATION" // 待责任教师审核
	OfferValidated         = "VALIDEE"               // 审核通过
	OfferRejected          = "NON_VALIDEE"           // 审核拒绝
)

// ── 发布轴（statut）──
// 与审核轴相互独立：企业可随时上下架，审核结果不受影响

const (
	OfferActive   = "ACTIVE"
	OfferInactive = "NON_ACTIVE"
)

// Offer 实习/工作机会表 — 对应 offers
type Offer struct {
	OfferID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"offer_id"`
	CompanyID       string     `gorm:"type:uuid;not null"                             json:"company_id"`
	Type            string     `gorm:"type:varchar(20);not null"                      json:"type"`
	Description     string     `gorm:"type:text;not null"                             json:"description"`
	Remuneration    float64    `gorm:"type:numeric(10,2);not null"                    json:"remuneration"`
	Country         string     `gorm:"type:varchar(100);not null"                     json:"country"`
	City            string     `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	DurationWeeks   int        `gorm:"not null"                                       json:"duration_weeks"`
	StartDate       time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	ExpirationDate  time.Time  `gorm:"type:date;not null"                             json:"expiration_date"`
	Etat            string     `gorm:"type:varchar(30);not null;default:'EN_ATTENTE_VALIDATION'" json:"etat"`
	Statut          string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"statut"`
	SupervisorID    *string    `gorm:"type:uuid"                                      json:"supervisor_id,omitempty"`
	RejectionReason *string    `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	Archived        bool       `gorm:"not null;default:false"                         json:"archived"`
	ArchivedYear    *string    `gorm:"type:varchar(9)"                                json:"archived_year,omitempty"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`

	// 关联
	Company    *Company    `gorm:"foreignKey:CompanyID;references:UserID"    json:"company,omitempty"`
	Supervisor *Supervisor `gorm:"foreignKey:SupervisorID;references:UserID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (Offer) TableName() string { return "offers" }

// IsVisibleToStudents 机会是否对学生可见：审核通过 + 企业上架 + 未过期 + 未归档
func (o *Offer) IsVisibleToStudents(now time.Time) bool {
	return o.Etat == OfferValidated &&
		o.Statut == OfferActive &&
		!o.Archived &&
		!o.ExpirationDate.Before(now.Truncate(24*time.Hour))
}
