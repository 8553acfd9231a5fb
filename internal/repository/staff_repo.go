package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
)

// SupervisorRepository 责任教师数据访问接口
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *model.Supervisor) error
	GetByID(ctx context.Context, id string) (*model.Supervisor, error)
	Update(ctx context.Context, supervisor *model.Supervisor) error
	List(ctx context.Context, offset, limit int) ([]model.Supervisor, int64, error)
	Delete(ctx context.Context, id string) error
}

// SecretaryRepository 秘书数据访问接口
type SecretaryRepository interface {
	Create(ctx context.Context, secretary *model.Secretary) error
	GetByID(ctx context.Context, id string) (*model.Secretary, error)
	SetOnLeave(ctx context.Context, id string, onLeave bool) error
	List(ctx context.Context, offset, limit int) ([]model.Secretary, int64, error)
	CountAvailable(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

// ── Supervisor Repository 实现 ──

type supervisorRepo struct {
	db *gorm.DB
}

// NewSupervisorRepo 创建 SupervisorRepository 实例
func NewSupervisorRepo(db *gorm.DB) SupervisorRepository {
	return &supervisorRepo{db: db}
}

func (r *supervisorRepo) Create(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

func (r *supervisorRepo) GetByID(ctx context.Context, id string) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", id).
		First(&supervisor).Error
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *supervisorRepo) Update(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Save(supervisor).Error
}

func (r *supervisorRepo) List(ctx context.Context, offset, limit int) ([]model.Supervisor, int64, error) {
	var supervisors []model.Supervisor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Supervisor{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("last_name, first_name").
		Find(&supervisors).Error; err != nil {
		return nil, 0, err
	}

	return supervisors, total, nil
}

func (r *supervisorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.Supervisor{}).Error
}

// ── Secretary Repository 实现 ──

type secretaryRepo struct {
	db *gorm.DB
}

// NewSecretaryRepo 创建 SecretaryRepository 实例
func NewSecretaryRepo(db *gorm.DB) SecretaryRepository {
	return &secretaryRepo{db: db}
}

func (r *secretaryRepo) Create(ctx context.Context, secretary *model.Secretary) error {
	return r.db.WithContext(ctx).Create(secretary).Error
}

func (r *secretaryRepo) GetByID(ctx context.Context, id string) (*model.Secretary, error) {
	var secretary model.Secretary
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", id).
		First(&secretary).Error
	if err != nil {
		return nil, err
	}
	return &secretary, nil
}

func (r *secretaryRepo) SetOnLeave(ctx context.Context, id string, onLeave bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Secretary{}).
		Where("user_id = ?", id).
		Update("on_leave", onLeave).Error
}

func (r *secretaryRepo) List(ctx context.Context, offset, limit int) ([]model.Secretary, int64, error) {
	var secretaries []model.Secretary
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Secretary{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("last_name, first_name").
		Find(&secretaries).Error; err != nil {
		return nil, 0, err
	}

	return secretaries, total, nil
}

// CountAvailable 统计未休假的秘书数量（为零时教师代行秘书职能）
func (r *secretaryRepo) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Secretary{}).
		Where("on_leave = FALSE").
		Count(&count).Error
	return count, err
}

func (r *secretaryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.Secretary{}).Error
}
