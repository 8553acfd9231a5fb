package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoPlacements = errors.New("暂无已确认的分配")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 分配名册导出为 Excel (.xlsx)，供秘书归档与上报
//   - 实习日历导出为 iCalendar (.ics)，每个分配一个事件（起始日 → 起始日 + 周数）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportPlacements 导出分配名册为 Excel
	ExportPlacements(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportPlacementCalendar 导出实习日历为 ICS
	ExportPlacementCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportPlacements — 导出分配名册为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet「分配名册」，一行一个已确认分配
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportPlacements(ctx context.Context) (*bytes.Buffer, string, error) {
	apps, err := s.repo.Application.ListValidated(ctx)
	if err != nil {
		s.logger.Error("查询已确认分配失败", zap.Error(err))
		return nil, "", err
	}
	if len(apps) == 0 {
		return nil, "", ErrExportNoPlacements
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "分配名册"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"学号", "姓名", "专业", "企业", "SIRET", "类型", "国家", "城市", "周数", "开始日期", "月薪", "批准时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, app := range apps {
		values := placementRow(&app)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("placements_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func placementRow(app *model.Application) []interface{} {
	row := make([]interface{}, 12)
	if app.Student != nil {
		row[0] = app.Student.StudentNumber
		row[1] = app.Student.FirstName + " " + app.Student.LastName
		row[2] = app.Student.Program
	}
	if app.Offer != nil {
		if app.Offer.Company != nil {
			row[3] = app.Offer.Company.LegalName
			row[4] = app.Offer.Company.SIRET
		}
		row[5] = app.Offer.Type
		row[6] = app.Offer.Country
		row[7] = app.Offer.City
		row[8] = app.Offer.DurationWeeks
		row[9] = app.Offer.StartDate.Format(dateLayout)
		row[10] = app.Offer.Remuneration
	}
	if app.SupervisorDecisionAt != nil {
		row[11] = app.SupervisorDecisionAt.Format("2006-01-02 15:04")
	}
	return row
}

// ═══════════════════════════════════════════════════════════
// ExportPlacementCalendar — 导出实习日历为 ICS (RFC 5545)
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportPlacementCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	apps, err := s.repo.Application.ListValidated(ctx)
	if err != nil {
		s.logger.Error("查询已确认分配失败", zap.Error(err))
		return nil, "", err
	}
	if len(apps) == 0 {
		return nil, "", ErrExportNoPlacements
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//stagelink//placement-calendar//FR")

	now := time.Now()
	for i := range apps {
		app := &apps[i]
		if app.Offer == nil {
			continue
		}
		offer := app.Offer

		event := cal.AddEvent(fmt.Sprintf("placement-%s@stagelink", app.ApplicationID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(offer.StartDate)
		event.SetAllDayEndAt(offer.StartDate.AddDate(0, 0, offer.DurationWeeks*7))

		summary := offer.Type
		if app.Student != nil {
			summary = fmt.Sprintf("%s - %s %s", offer.Type, app.Student.FirstName, app.Student.LastName)
		}
		event.SetSummary(summary)
		if offer.Company != nil {
			event.SetDescription(offer.Company.LegalName)
		}
		if offer.City != "" {
			event.SetLocation(offer.City + ", " + offer.Country)
		} else {
			event.SetLocation(offer.Country)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("placements_%s.ics", time.Now().Format("20060102"))
	return buf, filename, nil
}
