package dto

// ── 申请模块 DTO ──

// SubmitApplicationRequest 学生提交申请请求
type SubmitApplicationRequest struct {
	OfferID          string `json:"offer_id"          binding:"required,uuid"`
	MotivationLetter string `json:"motivation_letter" binding:"omitempty,max=10000"`
}

// CompanyDecisionRequest 企业初审决定请求
type CompanyDecisionRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason" binding:"omitempty,max=2000"` // 可选备注，拒绝时随状态保存
}

// SupervisorDecisionRequest 责任教师终审决定请求
type SupervisorDecisionRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" binding:"omitempty,max=2000"` // 拒绝时必填，由服务层校验
}

// ApplicationListRequest 申请列表查询参数
type ApplicationListRequest struct {
	PaginationRequest
	Statut string `form:"statut" binding:"omitempty,oneof=SOUMISE ACCEPTEE_ENTREPRISE REJETEE_ENTREPRISE VALIDEE REFUSEE_RESPONSABLE RENONCEE"`
}

// ApplicationResponse 申请详情响应
type ApplicationResponse struct {
	ID                   string `json:"id"`
	StudentID            string `json:"student_id"`
	StudentName          string `json:"student_name,omitempty"`
	OfferID              string `json:"offer_id"`
	OfferType            string `json:"offer_type,omitempty"`
	CompanyName          string `json:"company_name,omitempty"`
	MotivationLetter     string `json:"motivation_letter,omitempty"`
	Statut               string `json:"statut"`
	CompanyDecisionAt    string `json:"company_decision_at,omitempty"`
	SupervisorDecisionAt string `json:"supervisor_decision_at,omitempty"`
	RejectionReason      string `json:"rejection_reason,omitempty"`
	CreatedAt            string `json:"created_at"`
}
