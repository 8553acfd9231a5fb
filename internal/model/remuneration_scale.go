package model

// RemunerationScale 法定最低报酬标准表 — 对应 remuneration_scales
// 按机会类型、国家和周数区间规定最低月薪，创建机会时校验
type RemunerationScale struct {
	ScaleID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scale_id"`
	OfferType        string  `gorm:"type:varchar(20);not null"                      json:"offer_type"`
	Country          string  `gorm:"type:varchar(100);not null;default:'France'"    json:"country"`
	MinDurationWeeks int     `gorm:"not null"                                       json:"min_duration_weeks"`
	MaxDurationWeeks int     `gorm:"not null"                                       json:"max_duration_weeks"`
	MinMonthlyAmount float64 `gorm:"type:numeric(10,2);not null"                    json:"min_monthly_amount"`
	BaseModel
}

// TableName 指定表名
func (RemunerationScale) TableName() string { return "remuneration_scales" }
