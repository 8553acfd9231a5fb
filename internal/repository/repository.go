package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Student      StudentRepository
	Company      CompanyRepository
	Supervisor   SupervisorRepository
	Secretary    SecretaryRepository
	Offer        OfferRepository
	Application  ApplicationRepository
	Notification NotificationRepository
	Scale        RemunerationScaleRepository
	Stats        StatsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Student:      NewStudentRepo(db),
		Company:      NewCompanyRepo(db),
		Supervisor:   NewSupervisorRepo(db),
		Secretary:    NewSecretaryRepo(db),
		Offer:        NewOfferRepo(db),
		Application:  NewApplicationRepo(db),
		Notification: NewNotificationRepo(db),
		Scale:        NewRemunerationScaleRepo(db),
		Stats:        NewStatsRepo(db),
	}
}

// Transaction 在单个数据库事务中执行 fn，fn 拿到绑定该事务的 Repository。
// db 为空时（内存测试替身）直接在当前 Repository 上执行。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
