//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
	pkgerrors "stagelink/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=stagelink password=stagelink_password dbname=stagelink_test sslmode=disable TimeZone=Europe/Paris"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Company{},
		&model.Supervisor{},
		&model.Secretary{},
		&model.Offer{},
		&model.Application{},
		&model.Notification{},
		&model.RemunerationScale{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建一个企业用户与一条待审核机会，返回清理函数
func setupTestData(t *testing.T) (company *model.User, offer *model.Offer, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	company = &model.User{
		UserID:       fmt.Sprintf("00000000-0000-4000-8000-%012d", time.Now().UnixNano()%1e12),
		Email:        fmt.Sprintf("test%d@example.fr", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleCompany,
	}
	if err := testDB.WithContext(ctx).Create(company).Error; err != nil {
		t.Fatalf("创建企业用户失败: %v", err)
	}
	profile := &model.Company{
		UserID:    company.UserID,
		SIRET:     fmt.Sprintf("%014d", time.Now().UnixNano()%1e14),
		LegalName: "测试企业 SARL",
		IsActive:  true,
	}
	if err := testDB.WithContext(ctx).Create(profile).Error; err != nil {
		t.Fatalf("创建企业档案失败: %v", err)
	}

	offer = &model.Offer{
		CompanyID:      company.UserID,
		Type:           model.OfferTypeInternship,
		Description:    "集成测试机会",
		Remuneration:   800,
		Country:        "France",
		DurationWeeks:  12,
		StartDate:      time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Etat:           model.OfferPendingValidation,
		Statut:         model.OfferActive,
		Version:        1,
	}
	if err := testDB.WithContext(ctx).Create(offer).Error; err != nil {
		t.Fatalf("创建机会失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("offer_id = ?", offer.OfferID).Delete(&model.Offer{})
		testDB.Unscoped().Where("user_id = ?", company.UserID).Delete(&model.Company{})
		testDB.Unscoped().Where("user_id = ?", company.UserID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	company, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var offerID string
	sentinel := errors.New("rollback")
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		offer := &model.Offer{
			CompanyID:      company.UserID,
			Type:           model.OfferTypeInternship,
			Description:    "应被回滚",
			Remuneration:   800,
			Country:        "France",
			DurationWeeks:  8,
			StartDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			ExpirationDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			Etat:           model.OfferPendingValidation,
			Statut:         model.OfferActive,
			Version:        1,
		}
		if err := txRepo.Offer.Create(ctx, offer); err != nil {
			return err
		}
		offerID = offer.OfferID
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("事务应返回触发回滚的错误: %v", err)
	}

	if _, err := repo.Offer.GetByID(ctx, offerID); !errors.Is(err, gorm.ErrRecordNotFound) {
		testDB.Unscoped().Where("offer_id = ?", offerID).Delete(&model.Offer{})
		t.Fatal("期望回滚后查不到机会，但实际查到了")
	}
}

func TestTransaction_Commit(t *testing.T) {
	company, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var offerID string
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		offer := &model.Offer{
			CompanyID:      company.UserID,
			Type:           model.OfferTypeInternship,
			Description:    "应被提交",
			Remuneration:   900,
			Country:        "France",
			DurationWeeks:  10,
			StartDate:      time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
			ExpirationDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Etat:           model.OfferPendingValidation,
			Statut:         model.OfferActive,
			Version:        1,
		}
		if err := txRepo.Offer.Create(ctx, offer); err != nil {
			return err
		}
		offerID = offer.OfferID
		return nil
	})
	if err != nil {
		t.Fatalf("事务提交应成功: %v", err)
	}
	defer testDB.Unscoped().Where("offer_id = ?", offerID).Delete(&model.Offer{})

	got, err := repo.Offer.GetByID(ctx, offerID)
	if err != nil {
		t.Fatalf("提交后应能查到机会: %v", err)
	}
	if got.Description != "应被提交" {
		t.Errorf("机会内容不一致，实际=%s", got.Description)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_OfferReview_ConflictDetected(t *testing.T) {
	_, offer, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 第一位教师审核通过
	first, err := repo.Offer.GetByID(ctx, offer.OfferID)
	if err != nil {
		t.Fatalf("读取机会失败: %v", err)
	}
	second, _ := repo.Offer.GetByID(ctx, offer.OfferID)

	first.Etat = model.OfferValidated
	if err := repo.Offer.ReviewIf(ctx, first, model.OfferPendingValidation); err != nil {
		t.Fatalf("首次审核应成功: %v", err)
	}

	// 第二位教师基于过期快照审核，应检测到冲突
	second.Etat = model.OfferRejected
	err = repo.Offer.ReviewIf(ctx, second, model.OfferPendingValidation)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("并发审核应返回 ErrOptimisticLock，实际=%v", err)
	}

	// 首次审核的结果保持不变
	final, _ := repo.Offer.GetByID(ctx, offer.OfferID)
	if final.Etat != model.OfferValidated {
		t.Errorf("机会状态应保持 VALIDEE，实际=%s", final.Etat)
	}
}

func TestOptimisticLock_ApplicationStatus_ConflictDetected(t *testing.T) {
	company, offer, cleanup := setupTestData(t)
	defer cleanup()
	_ = company

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	student := &model.User{
		UserID:       fmt.Sprintf("00000000-0000-4000-8001-%012d", time.Now().UnixNano()%1e12),
		Email:        fmt.Sprintf("etu%d@example.fr", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生用户失败: %v", err)
	}
	profile := &model.Student{
		UserID:        student.UserID,
		StudentNumber: fmt.Sprintf("%d", time.Now().UnixNano()%1e8),
		LastName:      "Test",
		FirstName:     "Étudiant",
		Program:       "Informatique",
		SearchStatus:  model.StudentSearching,
	}
	if err := testDB.WithContext(ctx).Create(profile).Error; err != nil {
		t.Fatalf("创建学生档案失败: %v", err)
	}
	defer func() {
		testDB.Unscoped().Where("user_id = ?", student.UserID).Delete(&model.Student{})
		testDB.Unscoped().Where("user_id = ?", student.UserID).Delete(&model.User{})
	}()

	app := &model.Application{
		StudentID: student.UserID,
		OfferID:   offer.OfferID,
		Statut:    model.ApplicationSubmitted,
		Version:   1,
	}
	if err := repo.Application.Create(ctx, app); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}
	defer testDB.Unscoped().Where("application_id = ?", app.ApplicationID).Delete(&model.Application{})

	// 企业接受与学生放弃并发竞争同一条申请
	accept, _ := repo.Application.GetByID(ctx, app.ApplicationID)
	withdraw, _ := repo.Application.GetByID(ctx, app.ApplicationID)

	accept.Statut = model.ApplicationCompanyAccepted
	if err := repo.Application.UpdateStatusIf(ctx, accept, model.ApplicationSubmitted); err != nil {
		t.Fatalf("首个状态转移应成功: %v", err)
	}

	withdraw.Statut = model.ApplicationWithdrawn
	err := repo.Application.UpdateStatusIf(ctx, withdraw, model.ApplicationSubmitted)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("并发状态转移应返回 ErrOptimisticLock，实际=%v", err)
	}
}
