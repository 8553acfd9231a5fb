package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
)

// StudentFilter 学生列表过滤条件
type StudentFilter struct {
	SearchStatus string
	Program      string
	Keyword      string
	VisibleOnly  bool
}

// StudentRepository 学生档案数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByStudentNumber(ctx context.Context, number string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	UpdateSearchStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error)
	ResetAllSearchStatus(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByStudentNumber(ctx context.Context, number string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_number = ?", number).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) UpdateSearchStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("user_id = ?", id).
		Update("search_status", status).Error
}

func (r *studentRepo) List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Student{})
	if filter.SearchStatus != "" {
		db = db.Where("search_status = ?", filter.SearchStatus)
	}
	if filter.Program != "" {
		db = db.Where("program = ?", filter.Program)
	}
	if filter.VisibleOnly {
		db = db.Where("visible = TRUE")
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		db = db.Where("last_name ILIKE ? OR first_name ILIKE ? OR student_number ILIKE ?", kw, kw, kw)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("last_name, first_name").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// ResetAllSearchStatus 年度归档：全体学生恢复求职中
func (r *studentRepo) ResetAllSearchStatus(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("search_status = ?", model.StudentPlaced).
		Update("search_status", model.StudentSearching)
	return result.RowsAffected, result.Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.Student{}).Error
}
