package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
)

// CompanyRepository 企业档案数据访问接口
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetBySIRET(ctx context.Context, siret string) (*model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Company, int64, error)
}

// companyRepo CompanyRepository 的 GORM 实现
type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo 创建 CompanyRepository 实例
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) GetBySIRET(ctx context.Context, siret string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("siret = ?", siret).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Company{}).
		Where("user_id = ?", id).
		Update("is_active", active).Error
}

func (r *companyRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Company{})
	if keyword != "" {
		kw := "%" + keyword + "%"
		db = db.Where("legal_name ILIKE ? OR siret ILIKE ?", kw, kw)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("legal_name").
		Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}
