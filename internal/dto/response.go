package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ── 档案响应 ──

// StudentResponse 学生档案响应
type StudentResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	StudentNumber      string `json:"student_number"`
	LastName           string `json:"last_name"`
	FirstName          string `json:"first_name"`
	BirthDate          string `json:"birth_date,omitempty"`
	Program            string `json:"program"`
	ProgramYear        int    `json:"program_year"`
	SearchStatus       string `json:"search_status"`
	Visible            bool   `json:"visible"`
	LiabilityInsurance bool   `json:"liability_insurance"`
	CreatedAt          string `json:"created_at"`
}

// CompanyResponse 企业档案响应
type CompanyResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	SIRET     string `json:"siret"`
	LegalName string `json:"legal_name"`
	Address   string `json:"address"`
	LegalForm string `json:"legal_form"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// SupervisorResponse 责任教师档案响应
type SupervisorResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	SecretaryRights bool   `json:"secretary_rights"`
	CreatedAt       string `json:"created_at"`
}

// SecretaryResponse 秘书档案响应
type SecretaryResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	OnLeave   bool   `json:"on_leave"`
	CreatedAt string `json:"created_at"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
