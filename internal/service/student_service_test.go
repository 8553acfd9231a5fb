package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"stagelink/backend/internal/dto"
)

func setupTestStudentService() (StudentService, *testRepos) {
	repos := newTestRepos()
	return NewStudentService(repos.repo, zap.NewNop()), repos
}

func TestStudentService_GetProfile_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, err := svc.GetProfile(context.Background(), "inconnu")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("档案不存在应返回 ErrStudentNotFound，实际=%v", err)
	}
}

func TestStudentService_UpdateProfile_PartialPatch(t *testing.T) {
	svc, repos := setupTestStudentService()
	student := seedStudent(repos, "stu-1", "Dupont")
	student.Program = "Informatique"

	visible := true
	resp, err := svc.UpdateProfile(context.Background(), "stu-1", "stu-1",
		&dto.UpdateStudentRequest{Visible: &visible})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if !resp.Visible {
		t.Error("可见性未更新")
	}
	if resp.Program != "Informatique" {
		t.Errorf("未提供的字段不应被改写，实际=%s", resp.Program)
	}
}

func TestStudentService_ValidateInsurance(t *testing.T) {
	svc, repos := setupTestStudentService()
	seedStudent(repos, "stu-1", "Dupont")

	resp, err := svc.ValidateInsurance(context.Background(), "stu-1", "sec-1")
	if err != nil {
		t.Fatalf("ValidateInsurance 应成功: %v", err)
	}
	if !resp.LiabilityInsurance {
		t.Error("责任保险应已确认")
	}
	stored := repos.students.students["stu-1"]
	if stored.InsuranceValidatorID == nil || *stored.InsuranceValidatorID != "sec-1" {
		t.Error("应记录确认人")
	}
}

func TestStudentService_ListVisible_FiltersHidden(t *testing.T) {
	svc, repos := setupTestStudentService()
	visible := seedStudent(repos, "stu-1", "Dupont")
	visible.Visible = true
	seedStudent(repos, "stu-2", "Martin") // 默认不可见

	items, total, err := svc.ListVisible(context.Background(), &dto.StudentListRequest{})
	if err != nil {
		t.Fatalf("ListVisible 应成功: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("企业只应看到档案可见的学生，实际 total=%d", total)
	}
}
