package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
	pkgerrors "stagelink/backend/pkg/errors"
)

// ApplicationRepository 申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	UpdateStatusIf(ctx context.Context, app *model.Application, fromStatut string) error
	ExistsLive(ctx context.Context, studentID, offerID string) (bool, error)
	ListByStudent(ctx context.Context, studentID, statut string, offset, limit int) ([]model.Application, int64, error)
	ListByOffer(ctx context.Context, offerID, statut string, offset, limit int) ([]model.Application, int64, error)
	ListPendingValidation(ctx context.Context, offset, limit int) ([]model.Application, int64, error)
	ListValidated(ctx context.Context) ([]model.Application, error)
	ForceStatusByStudent(ctx context.Context, studentID, excludeID, toStatut, reason string) (int64, error)
	ForceStatusByOffer(ctx context.Context, offerID, excludeID, toStatut, reason string) (int64, error)
	CloseAllLive(ctx context.Context, reason string) (int64, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Preload("Offer").
		Preload("Offer.Company").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatusIf 条件状态转移：仅当当前状态等于 fromStatut 且版本未变时生效。
// 并发竞争（另一方已先行改写）统一表现为 ErrOptimisticLock，由服务层重读判别。
func (r *applicationRepo) UpdateStatusIf(ctx context.Context, app *model.Application, fromStatut string) error {
	oldVersion := app.Version
	result := r.db.WithContext(ctx).
		Model(app).
		Where("application_id = ? AND version = ? AND statut = ?", app.ApplicationID, oldVersion, fromStatut).
		Updates(map[string]interface{}{
			"statut":                 app.Statut,
			"company_decision_at":    app.CompanyDecisionAt,
			"supervisor_decision_at": app.SupervisorDecisionAt,
			"supervisor_id":          app.SupervisorID,
			"rejection_reason":       app.RejectionReason,
			"updated_by":             app.UpdatedBy,
			"version":                oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	app.Version = oldVersion + 1
	return nil
}

// ExistsLive 同一学生对同一机会是否已有未放弃的申请
func (r *applicationRepo) ExistsLive(ctx context.Context, studentID, offerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("student_id = ? AND offer_id = ? AND statut <> ?", studentID, offerID, model.ApplicationWithdrawn).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID, statut string, offset, limit int) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ?", studentID)
	if statut != "" {
		db = db.Where("statut = ?", statut)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Offer").
		Preload("Offer.Company").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepo) ListByOffer(ctx context.Context, offerID, statut string, offset, limit int) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("offer_id = ?", offerID)
	if statut != "" {
		db = db.Where("statut = ?", statut)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").
		Preload("Student.User").
		Offset(offset).Limit(limit).
		Order("created_at").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListPendingValidation 企业已接受、等待责任教师终审的申请队列
func (r *applicationRepo) ListPendingValidation(ctx context.Context, offset, limit int) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("statut = ?", model.ApplicationCompanyAccepted)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").
		Preload("Student.User").
		Preload("Offer").
		Preload("Offer.Company").
		Offset(offset).Limit(limit).
		Order("company_decision_at").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListValidated 全部已批准的申请（分配报表导出用，不分页）
func (r *applicationRepo) ListValidated(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Preload("Offer").
		Preload("Offer.Company").
		Where("statut = ?", model.ApplicationValidated).
		Order("supervisor_decision_at").
		Find(&apps).Error
	return apps, err
}

// ForceStatusByStudent 级联改写：该学生其余非终态申请批量置为 toStatut
func (r *applicationRepo) ForceStatusByStudent(ctx context.Context, studentID, excludeID, toStatut, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("student_id = ? AND application_id <> ? AND statut IN ?",
			studentID, excludeID, model.NonTerminalApplicationStatuses).
		Updates(map[string]interface{}{
			"statut":           toStatut,
			"rejection_reason": reason,
			"version":          gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

// ForceStatusByOffer 级联改写：该机会其余非终态申请批量置为 toStatut
func (r *applicationRepo) ForceStatusByOffer(ctx context.Context, offerID, excludeID, toStatut, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("offer_id = ? AND application_id <> ? AND statut IN ?",
			offerID, excludeID, model.NonTerminalApplicationStatuses).
		Updates(map[string]interface{}{
			"statut":           toStatut,
			"rejection_reason": reason,
			"version":          gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

// CloseAllLive 年度归档：全部非终态申请置为放弃
func (r *applicationRepo) CloseAllLive(ctx context.Context, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("statut IN ?", model.NonTerminalApplicationStatuses).
		Updates(map[string]interface{}{
			"statut":           model.ApplicationWithdrawn,
			"rejection_reason": reason,
			"version":          gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}
