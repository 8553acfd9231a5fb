package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"stagelink/backend/config"
	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-at-least-32-characters!",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repos.repo, jwtMgr, nil, zap.NewNop()), repos
}

func seedUser(repos *testRepos, id, email, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	repos.users.users[id] = user
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "stu-1", "dupont@example.fr", "motdepasse", model.RoleStudent)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dupont@example.fr",
		Password: "motdepasse",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录应同时返回 access 与 refresh token")
	}
	if resp.User.Role != model.RoleStudent {
		t.Errorf("响应角色应为 ETUDIANT，实际=%s", resp.User.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "stu-1", "dupont@example.fr", "motdepasse", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dupont@example.fr",
		Password: "mauvais",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "inconnu@example.fr",
		Password: "motdepasse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("邮箱不存在也应返回 ErrInvalidCredentials（不泄露存在性），实际=%v", err)
	}
}

func TestAuthService_Login_DeactivatedCompany(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "comp-1", "acme@example.fr", "motdepasse", model.RoleCompany)
	company := seedCompany(repos, "comp-1", "ACME SARL")
	company.IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "acme@example.fr",
		Password: "motdepasse",
	})
	if !errors.Is(err, ErrCompanyDeactivated) {
		t.Errorf("停用企业不可登录，应返回 ErrCompanyDeactivated，实际=%v", err)
	}
}

func TestAuthService_RegisterStudent_Success(t *testing.T) {
	svc, repos := setupTestAuthService()

	resp, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		Email:         "dupont@example.fr",
		Password:      "motdepasse",
		StudentNumber: "20250001",
		LastName:      "Dupont",
		FirstName:     "Marie",
		Program:       "Informatique",
		ProgramYear:   3,
	})
	if err != nil {
		t.Fatalf("RegisterStudent 应成功: %v", err)
	}
	if resp.SearchStatus != model.StudentSearching {
		t.Errorf("新学生应处于求职中，实际=%s", resp.SearchStatus)
	}
	if len(repos.users.users) != 1 || len(repos.students.students) != 1 {
		t.Error("应同时创建用户与学生档案")
	}
}

func TestAuthService_RegisterStudent_EmailTaken(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "stu-1", "dupont@example.fr", "motdepasse", model.RoleStudent)

	_, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		Email:         "dupont@example.fr",
		Password:      "motdepasse",
		StudentNumber: "20250002",
		LastName:      "Dupont",
		FirstName:     "Paul",
		Program:       "Informatique",
		ProgramYear:   2,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复邮箱应返回 ErrEmailTaken，实际=%v", err)
	}
}

func TestAuthService_RegisterStudent_NumberTaken(t *testing.T) {
	svc, repos := setupTestAuthService()
	student := seedStudent(repos, "stu-1", "Dupont")
	student.StudentNumber = "20250001"

	_, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		Email:         "autre@example.fr",
		Password:      "motdepasse",
		StudentNumber: "20250001",
		LastName:      "Martin",
		FirstName:     "Luc",
		Program:       "Informatique",
		ProgramYear:   1,
	})
	if !errors.Is(err, ErrStudentNumberTaken) {
		t.Errorf("重复学号应返回 ErrStudentNumberTaken，实际=%v", err)
	}
}

func TestAuthService_RegisterCompany_SIRETTaken(t *testing.T) {
	svc, repos := setupTestAuthService()
	company := seedCompany(repos, "comp-1", "ACME SARL")
	company.SIRET = "12345678900012"

	_, err := svc.RegisterCompany(context.Background(), &dto.RegisterCompanyRequest{
		Email:     "autre@example.fr",
		Password:  "motdepasse",
		SIRET:     "12345678900012",
		LegalName: "Autre SARL",
	})
	if !errors.Is(err, ErrSIRETTaken) {
		t.Errorf("重复 SIRET 应返回 ErrSIRETTaken，实际=%v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "stu-1", "dupont@example.fr", "ancien-mdp", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), "stu-1", &dto.ChangePasswordRequest{
		OldPassword: "ancien-mdp",
		NewPassword: "nouveau-mdp",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repos.users.users["stu-1"].PasswordHash), []byte("nouveau-mdp")) != nil {
		t.Error("新密码未生效")
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "stu-1", "dupont@example.fr", "ancien-mdp", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), "stu-1", &dto.ChangePasswordRequest{
		OldPassword: "mauvais",
		NewPassword: "nouveau-mdp",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("原密码错误应返回 ErrWrongOldPassword，实际=%v", err)
	}
}
