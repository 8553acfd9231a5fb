package service

import (
	"time"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
)

// ── 模型 → 响应 DTO 转换 ──

const dateLayout = "2006-01-02"

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func buildStudentResponse(student *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:                 student.UserID,
		StudentNumber:      student.StudentNumber,
		LastName:           student.LastName,
		FirstName:          student.FirstName,
		Program:            student.Program,
		ProgramYear:        student.ProgramYear,
		SearchStatus:       student.SearchStatus,
		Visible:            student.Visible,
		LiabilityInsurance: student.LiabilityInsurance,
		CreatedAt:          formatTime(student.CreatedAt),
	}
	if student.BirthDate != nil {
		resp.BirthDate = student.BirthDate.Format(dateLayout)
	}
	if student.User != nil {
		resp.Email = student.User.Email
	}
	return resp
}

func buildCompanyResponse(company *model.Company) *dto.CompanyResponse {
	resp := &dto.CompanyResponse{
		ID:        company.UserID,
		SIRET:     company.SIRET,
		LegalName: company.LegalName,
		Address:   company.Address,
		LegalForm: company.LegalForm,
		IsActive:  company.IsActive,
		CreatedAt: formatTime(company.CreatedAt),
	}
	if company.User != nil {
		resp.Email = company.User.Email
	}
	return resp
}

func buildSupervisorResponse(supervisor *model.Supervisor) *dto.SupervisorResponse {
	resp := &dto.SupervisorResponse{
		ID:              supervisor.UserID,
		LastName:        supervisor.LastName,
		FirstName:       supervisor.FirstName,
		SecretaryRights: supervisor.SecretaryRights,
		CreatedAt:       formatTime(supervisor.CreatedAt),
	}
	if supervisor.User != nil {
		resp.Email = supervisor.User.Email
	}
	return resp
}

func buildSecretaryResponse(secretary *model.Secretary) *dto.SecretaryResponse {
	resp := &dto.SecretaryResponse{
		ID:        secretary.UserID,
		LastName:  secretary.LastName,
		FirstName: secretary.FirstName,
		OnLeave:   secretary.OnLeave,
		CreatedAt: formatTime(secretary.CreatedAt),
	}
	if secretary.User != nil {
		resp.Email = secretary.User.Email
	}
	return resp
}

func buildOfferResponse(offer *model.Offer) *dto.OfferResponse {
	resp := &dto.OfferResponse{
		ID:              offer.OfferID,
		CompanyID:       offer.CompanyID,
		Type:            offer.Type,
		Description:     offer.Description,
		Remuneration:    offer.Remuneration,
		Country:         offer.Country,
		City:            offer.City,
		DurationWeeks:   offer.DurationWeeks,
		StartDate:       offer.StartDate.Format(dateLayout),
		ExpirationDate:  offer.ExpirationDate.Format(dateLayout),
		Etat:            offer.Etat,
		Statut:          offer.Statut,
		RejectionReason: derefStr(offer.RejectionReason),
		Archived:        offer.Archived,
		CreatedAt:       formatTime(offer.CreatedAt),
	}
	if offer.Company != nil {
		resp.CompanyName = offer.Company.LegalName
	}
	return resp
}

func buildApplicationResponse(app *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:                   app.ApplicationID,
		StudentID:            app.StudentID,
		OfferID:              app.OfferID,
		MotivationLetter:     derefStr(app.MotivationLetter),
		Statut:               app.Statut,
		CompanyDecisionAt:    formatTimePtr(app.CompanyDecisionAt),
		SupervisorDecisionAt: formatTimePtr(app.SupervisorDecisionAt),
		RejectionReason:      derefStr(app.RejectionReason),
		CreatedAt:            formatTime(app.CreatedAt),
	}
	if app.Student != nil {
		resp.StudentName = app.Student.FirstName + " " + app.Student.LastName
	}
	if app.Offer != nil {
		resp.OfferType = app.Offer.Type
		if app.Offer.Company != nil {
			resp.CompanyName = app.Offer.Company.LegalName
		}
	}
	return resp
}

func buildScaleResponse(scale *model.RemunerationScale) *dto.ScaleResponse {
	return &dto.ScaleResponse{
		ID:               scale.ScaleID,
		OfferType:        scale.OfferType,
		Country:          scale.Country,
		MinDurationWeeks: scale.MinDurationWeeks,
		MaxDurationWeeks: scale.MaxDurationWeeks,
		MinMonthlyAmount: scale.MinMonthlyAmount,
	}
}
