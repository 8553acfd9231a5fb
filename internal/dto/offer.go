package dto

// ── 机会模块 DTO ──

// CreateOfferRequest 企业发布机会请求
type CreateOfferRequest struct {
	Type           string  `json:"type"            binding:"required,oneof=STAGE ALTERNANCE CDD"`
	Description    string  `json:"description"     binding:"required"`
	Remuneration   float64 `json:"remuneration"    binding:"required,gt=0"`
	Country        string  `json:"country"         binding:"required,max=100"`
	City           string  `json:"city"            binding:"omitempty,max=100"`
	DurationWeeks  int     `json:"duration_weeks"  binding:"required,min=1"`
	StartDate      string  `json:"start_date"      binding:"required,datetime=2006-01-02"`
	ExpirationDate string  `json:"expiration_date" binding:"required,datetime=2006-01-02"`
}

// UpdateOfferRequest 企业修改机会请求（仅待审核状态可改）
type UpdateOfferRequest struct {
	Description    *string  `json:"description"     binding:"omitempty"`
	Remuneration   *float64 `json:"remuneration"    binding:"omitempty,gt=0"`
	City           *string  `json:"city"            binding:"omitempty,max=100"`
	DurationWeeks  *int     `json:"duration_weeks"  binding:"omitempty,min=1"`
	StartDate      *string  `json:"start_date"      binding:"omitempty,datetime=2006-01-02"`
	ExpirationDate *string  `json:"expiration_date" binding:"omitempty,datetime=2006-01-02"`
}

// ReviewOfferRequest 责任教师审核机会请求
type ReviewOfferRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" binding:"omitempty,max=2000"` // 拒绝时必填，由服务层校验
}

// SetOfferVisibilityRequest 企业上下架请求
type SetOfferVisibilityRequest struct {
	Active bool `json:"active"`
}

// OfferListRequest 机会列表查询参数
type OfferListRequest struct {
	PaginationRequest
	Type    string `form:"type"    binding:"omitempty,oneof=STAGE ALTERNANCE CDD"`
	Country string `form:"country" binding:"omitempty,max=100"`
	Etat    string `form:"etat"    binding:"omitempty,oneof=EN_ATTENTE_VALIDATION VALIDEE NON_VALIDEE"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// OfferResponse 机会详情响应
type OfferResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	CompanyName     string  `json:"company_name,omitempty"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	Remuneration    float64 `json:"remuneration"`
	Country         string  `json:"country"`
	City            string  `json:"city,omitempty"`
	DurationWeeks   int     `json:"duration_weeks"`
	StartDate       string  `json:"start_date"`
	ExpirationDate  string  `json:"expiration_date"`
	Etat            string  `json:"etat"`
	Statut          string  `json:"statut"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	Archived        bool    `json:"archived"`
	CreatedAt       string  `json:"created_at"`
}
