package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
	pkgerrors "stagelink/backend/pkg/errors"
)

// OfferFilter 机会列表过滤条件
type OfferFilter struct {
	Type    string
	Country string
	Etat    string
	Keyword string
}

// OfferRepository 机会数据访问接口
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	GetByID(ctx context.Context, id string) (*model.Offer, error)
	Update(ctx context.Context, offer *model.Offer) error
	ReviewIf(ctx context.Context, offer *model.Offer, fromEtat string) error
	SetStatut(ctx context.Context, id, statut string) error
	ListVisible(ctx context.Context, filter OfferFilter, today time.Time, offset, limit int) ([]model.Offer, int64, error)
	ListByCompany(ctx context.Context, companyID string, filter OfferFilter, offset, limit int) ([]model.Offer, int64, error)
	ListPendingReview(ctx context.Context, offset, limit int) ([]model.Offer, int64, error)
	ListValidated(ctx context.Context) ([]model.Offer, error)
	ArchiveBefore(ctx context.Context, cutoff time.Time, academicYear string) (int64, error)
}

// offerRepo OfferRepository 的 GORM 实现
type offerRepo struct {
	db *gorm.DB
}

// NewOfferRepo 创建 OfferRepository 实例
func NewOfferRepo(db *gorm.DB) OfferRepository {
	return &offerRepo{db: db}
}

func (r *offerRepo) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepo) GetByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("offer_id = ?", id).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Update 乐观锁更新可编辑字段（仅待审核机会允许修改）
func (r *offerRepo) Update(ctx context.Context, offer *model.Offer) error {
	oldVersion := offer.Version
	result := r.db.WithContext(ctx).
		Model(offer).
		Where("offer_id = ? AND version = ?", offer.OfferID, oldVersion).
		Updates(map[string]interface{}{
			"description":     offer.Description,
			"remuneration":    offer.Remuneration,
			"city":            offer.City,
			"duration_weeks":  offer.DurationWeeks,
			"start_date":      offer.StartDate,
			"expiration_date": offer.ExpirationDate,
			"updated_by":      offer.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	offer.Version = oldVersion + 1
	return nil
}

// ReviewIf 条件审核转移：仅当当前 etat 等于 fromEtat 且版本未变时生效
func (r *offerRepo) ReviewIf(ctx context.Context, offer *model.Offer, fromEtat string) error {
	oldVersion := offer.Version
	result := r.db.WithContext(ctx).
		Model(offer).
		Where("offer_id = ? AND version = ? AND etat = ?", offer.OfferID, oldVersion, fromEtat).
		Updates(map[string]interface{}{
			"etat":             offer.Etat,
			"supervisor_id":    offer.SupervisorID,
			"rejection_reason": offer.RejectionReason,
			"decided_at":       offer.DecidedAt,
			"updated_by":       offer.UpdatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	offer.Version = oldVersion + 1
	return nil
}

// SetStatut 发布轴上下架，与审核轴相互独立
func (r *offerRepo) SetStatut(ctx context.Context, id, statut string) error {
	return r.db.WithContext(ctx).
		Model(&model.Offer{}).
		Where("offer_id = ?", id).
		Updates(map[string]interface{}{
			"statut":  statut,
			"version": gorm.Expr("version + 1"),
		}).Error
}

func applyOfferFilter(db *gorm.DB, filter OfferFilter) *gorm.DB {
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Country != "" {
		db = db.Where("country = ?", filter.Country)
	}
	if filter.Etat != "" {
		db = db.Where("etat = ?", filter.Etat)
	}
	if filter.Keyword != "" {
		db = db.Where("description ILIKE ?", "%"+filter.Keyword+"%")
	}
	return db
}

// ListVisible 学生可见的机会：审核通过 + 上架 + 未过期 + 未归档
func (r *offerRepo) ListVisible(ctx context.Context, filter OfferFilter, today time.Time, offset, limit int) ([]model.Offer, int64, error) {
	var offers []model.Offer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("etat = ? AND statut = ? AND NOT archived AND expiration_date >= ?",
			model.OfferValidated, model.OfferActive, today)
	db = applyOfferFilter(db, filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Company").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

func (r *offerRepo) ListByCompany(ctx context.Context, companyID string, filter OfferFilter, offset, limit int) ([]model.Offer, int64, error) {
	var offers []model.Offer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("company_id = ?", companyID)
	db = applyOfferFilter(db, filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// ListPendingReview 待责任教师审核的机会队列
func (r *offerRepo) ListPendingReview(ctx context.Context, offset, limit int) ([]model.Offer, int64, error) {
	var offers []model.Offer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("etat = ? AND NOT archived", model.OfferPendingValidation)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Company").
		Offset(offset).Limit(limit).
		Order("created_at").
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// ListValidated 全部已审核通过且未归档的机会（导出用，不分页）
func (r *offerRepo) ListValidated(ctx context.Context) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("etat = ? AND NOT archived", model.OfferValidated).
		Order("created_at").
		Find(&offers).Error
	return offers, err
}

// ArchiveBefore 年度归档：截止日前过期的机会打归档标记
func (r *offerRepo) ArchiveBefore(ctx context.Context, cutoff time.Time, academicYear string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Offer{}).
		Where("NOT archived AND expiration_date < ?", cutoff).
		Updates(map[string]interface{}{
			"archived":      true,
			"archived_year": academicYear,
			"statut":        model.OfferInactive,
		})
	return result.RowsAffected, result.Error
}
