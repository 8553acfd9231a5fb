package repository

import (
	"context"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
)

// StatsRepository 统计聚合查询接口
type StatsRepository interface {
	CountStudentsBySearchStatus(ctx context.Context) (map[string]int64, error)
	CountOffersByEtat(ctx context.Context) (map[string]int64, error)
	CountOffersByType(ctx context.Context) (map[string]int64, error)
	CountApplicationsByStatut(ctx context.Context) (map[string]int64, error)
	CountOffersByCompany(ctx context.Context, companyID string) (total, active int64, err error)
	CountApplicationsByCompany(ctx context.Context, companyID string) (map[string]int64, error)
}

type statsRow struct {
	Key   string
	Count int64
}

// statsRepo StatsRepository 的 GORM 实现
type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

func groupCount(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []statsRow
	if err := db.Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Count
	}
	return result, nil
}

func (r *statsRepo) CountStudentsBySearchStatus(ctx context.Context) (map[string]int64, error) {
	return groupCount(r.db.WithContext(ctx).Model(&model.Student{}), "search_status")
}

func (r *statsRepo) CountOffersByEtat(ctx context.Context) (map[string]int64, error) {
	return groupCount(r.db.WithContext(ctx).Model(&model.Offer{}).Where("NOT archived"), "etat")
}

func (r *statsRepo) CountOffersByType(ctx context.Context) (map[string]int64, error) {
	return groupCount(r.db.WithContext(ctx).Model(&model.Offer{}).Where("NOT archived"), "type")
}

func (r *statsRepo) CountApplicationsByStatut(ctx context.Context) (map[string]int64, error) {
	return groupCount(r.db.WithContext(ctx).Model(&model.Application{}), "statut")
}

func (r *statsRepo) CountOffersByCompany(ctx context.Context, companyID string) (total, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("company_id = ?", companyID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("company_id = ? AND etat = ? AND statut = ? AND NOT archived",
			companyID, model.OfferValidated, model.OfferActive).
		Count(&active).Error
	return total, active, err
}

func (r *statsRepo) CountApplicationsByCompany(ctx context.Context, companyID string) (map[string]int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Joins("JOIN offers ON offers.offer_id = applications.offer_id").
		Where("offers.company_id = ?", companyID)
	return groupCount(db, "statut")
}
