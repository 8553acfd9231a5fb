package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterStudentRequest 学生自助注册请求
type RegisterStudentRequest struct {
	Email         string `json:"email"          binding:"required,email"`
	Password      string `json:"password"       binding:"required,min=8,max=64"`
	StudentNumber string `json:"student_number" binding:"required,max=20"`
	LastName      string `json:"last_name"      binding:"required,max=100"`
	FirstName     string `json:"first_name"     binding:"required,max=100"`
	BirthDate     string `json:"birth_date"     binding:"omitempty,datetime=2006-01-02"`
	Program       string `json:"program"        binding:"required,max=100"`
	ProgramYear   int    `json:"program_year"   binding:"required,min=1,max=6"`
}

// RegisterCompanyRequest 企业自助注册请求
type RegisterCompanyRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8,max=64"`
	SIRET     string `json:"siret"      binding:"required,len=14"`
	LegalName string `json:"legal_name" binding:"required,max=200"`
	Address   string `json:"address"    binding:"required,max=300"`
	LegalForm string `json:"legal_form" binding:"required,max=50"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}
