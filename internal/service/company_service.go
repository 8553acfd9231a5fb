package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/repository"
)

var ErrCompanyNotFound = errors.New("企业档案不存在")

// CompanyService 企业档案业务接口
type CompanyService interface {
	GetProfile(ctx context.Context, companyID string) (*dto.CompanyResponse, error)
	UpdateProfile(ctx context.Context, companyID, callerID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, int64, error)
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) GetProfile(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业档案失败", zap.Error(err))
		return nil, err
	}
	return buildCompanyResponse(company), nil
}

func (s *companyService) UpdateProfile(ctx context.Context, companyID, callerID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业档案失败", zap.Error(err))
		return nil, err
	}

	if req.LegalName != nil {
		company.LegalName = *req.LegalName
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.LegalForm != nil {
		company.LegalForm = *req.LegalForm
	}
	company.UpdatedBy = &callerID

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("更新企业档案失败", zap.Error(err))
		return nil, err
	}
	return buildCompanyResponse(company), nil
}

func (s *companyService) List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, int64, error) {
	companies, total, err := s.repo.Company.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询企业列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, *buildCompanyResponse(&companies[i]))
	}
	return items, total, nil
}
