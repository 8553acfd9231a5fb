package dto

// ── 报酬标准模块 DTO ──

// CreateScaleRequest 创建报酬标准请求
type CreateScaleRequest struct {
	OfferType        string  `json:"offer_type"         binding:"required,oneof=STAGE ALTERNANCE CDD"`
	Country          string  `json:"country"            binding:"omitempty,max=100"`
	MinDurationWeeks int     `json:"min_duration_weeks" binding:"required,min=1"`
	MaxDurationWeeks int     `json:"max_duration_weeks" binding:"required,min=1"`
	MinMonthlyAmount float64 `json:"min_monthly_amount" binding:"required,gt=0"`
}

// UpdateScaleRequest 更新报酬标准请求
// 指针字段区分「未提供」与「显式置零」
type UpdateScaleRequest struct {
	Country          *string  `json:"country"            binding:"omitempty,max=100"`
	MinDurationWeeks *int     `json:"min_duration_weeks" binding:"omitempty,min=1"`
	MaxDurationWeeks *int     `json:"max_duration_weeks" binding:"omitempty,min=1"`
	MinMonthlyAmount *float64 `json:"min_monthly_amount" binding:"omitempty,gt=0"`
}

// ScaleResponse 报酬标准响应
type ScaleResponse struct {
	ID               string  `json:"id"`
	OfferType        string  `json:"offer_type"`
	Country          string  `json:"country"`
	MinDurationWeeks int     `json:"min_duration_weeks"`
	MaxDurationWeeks int     `json:"max_duration_weeks"`
	MinMonthlyAmount float64 `json:"min_monthly_amount"`
}
