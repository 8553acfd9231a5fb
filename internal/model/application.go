package model

import "time"

// ── 申请状态（statut）──
//
// 状态机：
//   SOUMISE ──企业接受──▶ ACCEPTEE_ENTREPRISE ──教师批准──▶ VALIDEE
//      │                        │
//      │企业拒绝                 │教师拒绝 / 级联挤出
//      ▼                        ▼
//   REJETEE_ENTREPRISE     REFUSEE_RESPONSABLE
//
// 学生仅可在 SOUMISE 主动放弃 ▶ RENONCEE（级联挤出也会写入 RENONCEE）

const (
	ApplicationSubmitted         = "SOUMISE"
	ApplicationCompanyAccepted   = "ACCEPTEE_ENTREPRISE"
	ApplicationCompanyRejected   = "REJETEE_ENTREPRISE"
	ApplicationValidated         = "VALIDEE"
	ApplicationSupervisorRefused = "REFUSEE_RESPONSABLE"
	ApplicationWithdrawn         = "RENONCEE"
)

// NonTerminalApplicationStatuses 级联挤出时仍可改写的状态集合
var NonTerminalApplicationStatuses = []string{
	ApplicationSubmitted,
	ApplicationCompanyAccepted,
}

// Application 候选申请表 — 对应 applications
type Application struct {
	ApplicationID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	StudentID            string     `gorm:"type:uuid;not null"                             json:"student_id"`
	OfferID              string     `gorm:"type:uuid;not null"                             json:"offer_id"`
	MotivationLetter     *string    `gorm:"type:text"                                      json:"motivation_letter,omitempty"`
	Statut               string     `gorm:"type:varchar(30);not null;default:'SOUMISE'"    json:"statut"`
	CompanyDecisionAt    *time.Time `json:"company_decision_at,omitempty"`
	SupervisorDecisionAt *time.Time `json:"supervisor_decision_at,omitempty"`
	SupervisorID         *string    `gorm:"type:uuid"                                      json:"supervisor_id,omitempty"`
	RejectionReason      *string    `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Offer   *Offer   `gorm:"foreignKey:OfferID;references:OfferID"  json:"offer,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// IsTerminal 终态申请不再接受任何状态变更
func (a *Application) IsTerminal() bool {
	switch a.Statut {
	case ApplicationCompanyRejected, ApplicationValidated,
		ApplicationSupervisorRefused, ApplicationWithdrawn:
		return true
	}
	return false
}
