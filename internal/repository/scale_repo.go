package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
)

// RemunerationScaleRepository 法定报酬标准数据访问接口
type RemunerationScaleRepository interface {
	Create(ctx context.Context, scale *model.RemunerationScale) error
	GetByID(ctx context.Context, id string) (*model.RemunerationScale, error)
	Update(ctx context.Context, scale *model.RemunerationScale) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.RemunerationScale, error)
	FindMatching(ctx context.Context, offerType, country string, durationWeeks int) (*model.RemunerationScale, error)
}

// scaleRepo RemunerationScaleRepository 的 GORM 实现
type scaleRepo struct {
	db *gorm.DB
}

// NewRemunerationScaleRepo 创建 RemunerationScaleRepository 实例
func NewRemunerationScaleRepo(db *gorm.DB) RemunerationScaleRepository {
	return &scaleRepo{db: db}
}

func (r *scaleRepo) Create(ctx context.Context, scale *model.RemunerationScale) error {
	return r.db.WithContext(ctx).Create(scale).Error
}

func (r *scaleRepo) GetByID(ctx context.Context, id string) (*model.RemunerationScale, error) {
	var scale model.RemunerationScale
	err := r.db.WithContext(ctx).
		Where("scale_id = ?", id).
		First(&scale).Error
	if err != nil {
		return nil, err
	}
	return &scale, nil
}

func (r *scaleRepo) Update(ctx context.Context, scale *model.RemunerationScale) error {
	return r.db.WithContext(ctx).Save(scale).Error
}

func (r *scaleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("scale_id = ?", id).
		Delete(&model.RemunerationScale{}).Error
}

func (r *scaleRepo) List(ctx context.Context) ([]model.RemunerationScale, error) {
	var scales []model.RemunerationScale
	err := r.db.WithContext(ctx).
		Order("offer_type, country, min_duration_weeks").
		Find(&scales).Error
	return scales, err
}

// FindMatching 按类型、国家、周数区间查找适用标准；区间重叠时取最严格（金额最高）的一条
func (r *scaleRepo) FindMatching(ctx context.Context, offerType, country string, durationWeeks int) (*model.RemunerationScale, error) {
	var scale model.RemunerationScale
	err := r.db.WithContext(ctx).
		Where("offer_type = ? AND country = ? AND min_duration_weeks <= ? AND max_duration_weeks >= ?",
			offerType, country, durationWeeks, durationWeeks).
		Order("min_monthly_amount DESC").
		First(&scale).Error
	if err != nil {
		return nil, err
	}
	return &scale, nil
}
