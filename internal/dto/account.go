package dto

// ── 账户管理模块 DTO（秘书/管理员）──

// CreateSupervisorRequest 创建责任教师账户请求
type CreateSupervisorRequest struct {
	Email           string `json:"email"            binding:"required,email"`
	Password        string `json:"password"         binding:"required,min=8,max=64"`
	LastName        string `json:"last_name"        binding:"required,max=100"`
	FirstName       string `json:"first_name"       binding:"required,max=100"`
	SecretaryRights bool   `json:"secretary_rights"`
}

// CreateSecretaryRequest 创建秘书账户请求
type CreateSecretaryRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8,max=64"`
	LastName  string `json:"last_name"  binding:"required,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
}

// CreateStudentRequest 秘书代建学生账户请求
type CreateStudentRequest struct {
	Email         string `json:"email"          binding:"required,email"`
	Password      string `json:"password"       binding:"required,min=8,max=64"`
	StudentNumber string `json:"student_number" binding:"required,max=20"`
	LastName      string `json:"last_name"      binding:"required,max=100"`
	FirstName     string `json:"first_name"     binding:"required,max=100"`
	BirthDate     string `json:"birth_date"     binding:"omitempty,datetime=2006-01-02"`
	Program       string `json:"program"        binding:"required,max=100"`
	ProgramYear   int    `json:"program_year"   binding:"required,min=1,max=6"`
}

// UpdateStudentRequest 更新学生档案请求
type UpdateStudentRequest struct {
	LastName    *string `json:"last_name"    binding:"omitempty,max=100"`
	FirstName   *string `json:"first_name"   binding:"omitempty,max=100"`
	BirthDate   *string `json:"birth_date"   binding:"omitempty,datetime=2006-01-02"`
	Program     *string `json:"program"      binding:"omitempty,max=100"`
	ProgramYear *int    `json:"program_year" binding:"omitempty,min=1,max=6"`
	Visible     *bool   `json:"visible"`
}

// UpdateCompanyRequest 更新企业档案请求
type UpdateCompanyRequest struct {
	LegalName *string `json:"legal_name" binding:"omitempty,max=200"`
	Address   *string `json:"address"    binding:"omitempty,max=300"`
	LegalForm *string `json:"legal_form" binding:"omitempty,max=50"`
}

// SetSecretaryLeaveRequest 设置秘书休假状态请求
type SetSecretaryLeaveRequest struct {
	OnLeave bool `json:"on_leave"`
}

// SetCompanyActiveRequest 启用/停用企业账户请求
type SetCompanyActiveRequest struct {
	Active bool `json:"active"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	PaginationRequest
	SearchStatus string `form:"search_status" binding:"omitempty,oneof=EN_RECHERCHE AFFECTE"`
	Program      string `form:"program"       binding:"omitempty,max=100"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=100"`
}

// CompanyListRequest 企业列表查询参数
type CompanyListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}
