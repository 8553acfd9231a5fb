package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stagelink/backend/config"
	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
	"stagelink/backend/pkg/jwt"
	"stagelink/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailTaken          = errors.New("该邮箱已被注册")
	ErrStudentNumberTaken  = errors.New("该学号已被注册")
	ErrSIRETTaken          = errors.New("该 SIRET 编号已被注册")
	ErrCompanyDeactivated  = errors.New("企业账户已被停用")
	ErrInvalidRefreshToken = errors.New("refresh token 无效或已过期")
	ErrWrongOldPassword    = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error)
	RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.CompanyResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessJTI string, accessExpiresAt time.Time) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 停用的企业账户拒绝登录
	if user.Role == model.RoleCompany {
		company, err := s.repo.Company.GetByID(ctx, user.UserID)
		if err != nil {
			s.logger.Error("查询企业档案失败", zap.Error(err))
			return nil, err
		}
		if !company.IsActive {
			return nil, ErrCompanyDeactivated
		}
	}

	return s.issueTokens(user, req.RememberMe)
}

func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:    user.UserID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error) {
	// 1. 邮箱与学号唯一性
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Student.GetByStudentNumber(ctx, req.StudentNumber); err == nil {
		return nil, ErrStudentNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		t, _ := time.Parse("2006-01-02", req.BirthDate)
		birthDate = &t
	}

	// 2. 用户与档案同事务创建
	user := &model.User{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}
	student := &model.Student{
		UserID:        user.UserID,
		StudentNumber: req.StudentNumber,
		LastName:      req.LastName,
		FirstName:     req.FirstName,
		BirthDate:     birthDate,
		Program:       req.Program,
		ProgramYear:   req.ProgramYear,
		SearchStatus:  model.StudentSearching,
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Create(ctx, user); err != nil {
			return err
		}
		return txRepo.Student.Create(ctx, student)
	})
	if err != nil {
		s.logger.Error("创建学生账户失败", zap.Error(err))
		return nil, err
	}

	student.User = user
	return buildStudentResponse(student), nil
}

func (s *authService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Company.GetBySIRET(ctx, req.SIRET); err == nil {
		return nil, ErrSIRETTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询企业档案失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleCompany,
	}
	company := &model.Company{
		UserID:    user.UserID,
		SIRET:     req.SIRET,
		LegalName: req.LegalName,
		Address:   req.Address,
		LegalForm: req.LegalForm,
		IsActive:  true,
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Create(ctx, user); err != nil {
			return err
		}
		return txRepo.Company.Create(ctx, company)
	})
	if err != nil {
		s.logger.Error("创建企业账户失败", zap.Error(err))
		return nil, err
	}

	company.User = user
	return buildCompanyResponse(company), nil
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	// 已注销的 refresh token 不可再用
	blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
		return nil, err
	}
	if blacklisted {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 旧 refresh token 作废（轮换）
	if claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("refresh token 加入黑名单失败", zap.Error(err))
		}
	}

	return s.issueTokens(user, claims.RememberMe)
}

// Logout 将当前 access token 加入黑名单，立即失效
func (s *authService) Logout(ctx context.Context, accessJTI string, accessExpiresAt time.Time) error {
	return s.rdb.BlacklistToken(ctx, accessJTI, time.Until(accessExpiresAt))
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.User.UpdatePassword(ctx, userID, string(hash))
}
