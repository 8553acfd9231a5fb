package model

// ── 用户角色 ──
// 数据库中沿用历史库的法语角色字面量，保证存量数据兼容

const (
	RoleStudent    = "ETUDIANT"
	RoleCompany    = "ENTREPRISE"
	RoleSupervisor = "ENSEIGNANT"
	RoleSecretary  = "SECRETAIRE"
	RoleAdmin      = "ADMIN"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
