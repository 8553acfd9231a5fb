package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
)

func setupTestScaleService() (ScaleService, *testRepos) {
	repos := newTestRepos()
	return NewScaleService(repos.repo, zap.NewNop()), repos
}

func TestScaleService_Create_DefaultCountry(t *testing.T) {
	svc, repos := setupTestScaleService()

	resp, err := svc.Create(context.Background(), "sec-1", &dto.CreateScaleRequest{
		OfferType:        model.OfferTypeInternship,
		MinDurationWeeks: 8,
		MaxDurationWeeks: 26,
		MinMonthlyAmount: 600,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Country != "France" {
		t.Errorf("未指定国家应默认 France，实际=%s", resp.Country)
	}
	if len(repos.scales.scales) != 1 {
		t.Error("标准未入库")
	}
}

func TestScaleService_Create_InvalidRange(t *testing.T) {
	svc, _ := setupTestScaleService()

	_, err := svc.Create(context.Background(), "sec-1", &dto.CreateScaleRequest{
		OfferType:        model.OfferTypeInternship,
		MinDurationWeeks: 20,
		MaxDurationWeeks: 8,
		MinMonthlyAmount: 600,
	})
	if !errors.Is(err, ErrScaleInvalidRange) {
		t.Errorf("倒置区间应返回 ErrScaleInvalidRange，实际=%v", err)
	}
}

func TestScaleService_Update_RangeValidatedAfterMerge(t *testing.T) {
	svc, repos := setupTestScaleService()
	repos.scales.scales["scale-1"] = &model.RemunerationScale{
		ScaleID:          "scale-1",
		OfferType:        model.OfferTypeInternship,
		Country:          "France",
		MinDurationWeeks: 8,
		MaxDurationWeeks: 26,
		MinMonthlyAmount: 600,
	}

	// 仅更新上限，使其低于现有下限
	badMax := 4
	_, err := svc.Update(context.Background(), "scale-1", "sec-1",
		&dto.UpdateScaleRequest{MaxDurationWeeks: &badMax})
	if !errors.Is(err, ErrScaleInvalidRange) {
		t.Errorf("合并后区间倒置应返回 ErrScaleInvalidRange，实际=%v", err)
	}

	amount := 750.0
	resp, err := svc.Update(context.Background(), "scale-1", "sec-1",
		&dto.UpdateScaleRequest{MinMonthlyAmount: &amount})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.MinMonthlyAmount != 750 {
		t.Errorf("金额未更新，实际=%v", resp.MinMonthlyAmount)
	}
}

func TestScaleService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestScaleService()

	amount := 750.0
	_, err := svc.Update(context.Background(), "inconnu", "sec-1",
		&dto.UpdateScaleRequest{MinMonthlyAmount: &amount})
	if !errors.Is(err, ErrScaleNotFound) {
		t.Errorf("标准不存在应返回 ErrScaleNotFound，实际=%v", err)
	}
}

func TestScaleService_Delete(t *testing.T) {
	svc, repos := setupTestScaleService()
	repos.scales.scales["scale-1"] = &model.RemunerationScale{ScaleID: "scale-1"}

	if err := svc.Delete(context.Background(), "scale-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(repos.scales.scales) != 0 {
		t.Error("标准未删除")
	}
	if err := svc.Delete(context.Background(), "scale-1"); !errors.Is(err, ErrScaleNotFound) {
		t.Errorf("二次删除应返回 ErrScaleNotFound，实际=%v", err)
	}
}
