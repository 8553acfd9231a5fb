package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"stagelink/backend/internal/model"
)

func TestAcademicYear(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-08-31", "2024-2025"},
		{"2025-09-01", "2025-2026"},
		{"2026-01-15", "2025-2026"},
		{"2026-06-30", "2025-2026"},
	}
	for _, tc := range cases {
		now, _ := time.Parse("2006-01-02", tc.date)
		if got := AcademicYear(now); got != tc.want {
			t.Errorf("AcademicYear(%s): 期望=%s，实际=%s", tc.date, tc.want, got)
		}
	}
}

func TestArchiveService_RunYearEnd(t *testing.T) {
	repos := newTestRepos()
	svc := NewArchiveService(repos.repo, zap.NewNop())

	now, _ := time.Parse("2006-01-02", "2025-08-31")

	// 一条已过期、一条未过期的机会
	expired := seedVisibleOffer(repos, "offer-old", "comp-1")
	expired.ExpirationDate = now.AddDate(0, -3, 0)
	fresh := seedVisibleOffer(repos, "offer-new", "comp-1")
	fresh.ExpirationDate = now.AddDate(0, 2, 0)

	// 两条在途申请、一条终态申请
	seedApplication(repos, "app-1", "stu-1", "offer-old", model.ApplicationSubmitted)
	seedApplication(repos, "app-2", "stu-2", "offer-new", model.ApplicationCompanyAccepted)
	seedApplication(repos, "app-3", "stu-3", "offer-old", model.ApplicationValidated)

	// 一名已分配、一名求职中的学生
	placed := seedStudent(repos, "stu-3", "Dupont")
	placed.SearchStatus = model.StudentPlaced
	seedStudent(repos, "stu-1", "Martin")

	result, err := svc.RunYearEnd(context.Background(), now)
	if err != nil {
		t.Fatalf("RunYearEnd 应成功: %v", err)
	}

	if result.AcademicYear != "2024-2025" {
		t.Errorf("归档学年应为 2024-2025，实际=%s", result.AcademicYear)
	}
	if result.ArchivedOffers != 1 {
		t.Errorf("应归档 1 条过期机会，实际=%d", result.ArchivedOffers)
	}
	if result.ClosedApps != 2 {
		t.Errorf("应关闭 2 条在途申请，实际=%d", result.ClosedApps)
	}
	if result.ResetStudents != 1 {
		t.Errorf("应重置 1 名已分配学生，实际=%d", result.ResetStudents)
	}

	if !repos.offers.offers["offer-old"].Archived {
		t.Error("过期机会未打归档标记")
	}
	if repos.offers.offers["offer-old"].Statut != model.OfferInactive {
		t.Error("归档机会应同时下架")
	}
	if repos.offers.offers["offer-new"].Archived {
		t.Error("未过期机会不应被归档")
	}
	if repos.apps.apps["app-3"].Statut != model.ApplicationValidated {
		t.Error("终态申请不应被归档改写")
	}
	if repos.students.students["stu-3"].SearchStatus != model.StudentSearching {
		t.Error("已分配学生应恢复求职中")
	}
}
