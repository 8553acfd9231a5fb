package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
	pkgerrors "stagelink/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.students[student.UserID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentNumber(_ context.Context, number string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentNumber == number {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.UserID] = student
	return nil
}

func (m *mockStudentRepo) UpdateSearchStatus(_ context.Context, id, status string) error {
	if s, ok := m.students[id]; ok {
		s.SearchStatus = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, filter repository.StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		if filter.SearchStatus != "" && s.SearchStatus != filter.SearchStatus {
			continue
		}
		if filter.Program != "" && s.Program != filter.Program {
			continue
		}
		if filter.VisibleOnly && !s.Visible {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockStudentRepo) ResetAllSearchStatus(_ context.Context) (int64, error) {
	var n int64
	for _, s := range m.students {
		if s.SearchStatus == model.StudentPlaced {
			s.SearchStatus = model.StudentSearching
			n++
		}
	}
	return n, nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	m.companies[company.UserID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetBySIRET(_ context.Context, siret string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.SIRET == siret {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.UserID] = company
	return nil
}

func (m *mockCompanyRepo) SetActive(_ context.Context, id string, active bool) error {
	if c, ok := m.companies[id]; ok {
		c.IsActive = active
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context, _ string, offset, limit int) ([]model.Company, int64, error) {
	var result []model.Company
	for _, c := range m.companies {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

// ── Mock SupervisorRepository ──

type mockSupervisorRepo struct {
	supervisors map[string]*model.Supervisor
}

func newMockSupervisorRepo() *mockSupervisorRepo {
	return &mockSupervisorRepo{supervisors: make(map[string]*model.Supervisor)}
}

func (m *mockSupervisorRepo) Create(_ context.Context, supervisor *model.Supervisor) error {
	m.supervisors[supervisor.UserID] = supervisor
	return nil
}

func (m *mockSupervisorRepo) GetByID(_ context.Context, id string) (*model.Supervisor, error) {
	if s, ok := m.supervisors[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSupervisorRepo) Update(_ context.Context, supervisor *model.Supervisor) error {
	m.supervisors[supervisor.UserID] = supervisor
	return nil
}

func (m *mockSupervisorRepo) List(_ context.Context, offset, limit int) ([]model.Supervisor, int64, error) {
	var result []model.Supervisor
	for _, s := range m.supervisors {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSupervisorRepo) Delete(_ context.Context, id string) error {
	delete(m.supervisors, id)
	return nil
}

// ── Mock SecretaryRepository ──

type mockSecretaryRepo struct {
	secretaries map[string]*model.Secretary
}

func newMockSecretaryRepo() *mockSecretaryRepo {
	return &mockSecretaryRepo{secretaries: make(map[string]*model.Secretary)}
}

func (m *mockSecretaryRepo) Create(_ context.Context, secretary *model.Secretary) error {
	m.secretaries[secretary.UserID] = secretary
	return nil
}

func (m *mockSecretaryRepo) GetByID(_ context.Context, id string) (*model.Secretary, error) {
	if s, ok := m.secretaries[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSecretaryRepo) SetOnLeave(_ context.Context, id string, onLeave bool) error {
	if s, ok := m.secretaries[id]; ok {
		s.OnLeave = onLeave
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSecretaryRepo) List(_ context.Context, offset, limit int) ([]model.Secretary, int64, error) {
	var result []model.Secretary
	for _, s := range m.secretaries {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSecretaryRepo) CountAvailable(_ context.Context) (int64, error) {
	var n int64
	for _, s := range m.secretaries {
		if !s.OnLeave {
			n++
		}
	}
	return n, nil
}

func (m *mockSecretaryRepo) Delete(_ context.Context, id string) error {
	delete(m.secretaries, id)
	return nil
}

// ── Mock OfferRepository ──

type mockOfferRepo struct {
	offers    map[string]*model.Offer
	companies *mockCompanyRepo
}

func newMockOfferRepo(companies *mockCompanyRepo) *mockOfferRepo {
	return &mockOfferRepo{offers: make(map[string]*model.Offer), companies: companies}
}

func (m *mockOfferRepo) hydrate(offer *model.Offer) *model.Offer {
	if offer.Company == nil && m.companies != nil {
		if c, ok := m.companies.companies[offer.CompanyID]; ok {
			offer.Company = c
		}
	}
	return offer
}

func (m *mockOfferRepo) Create(_ context.Context, offer *model.Offer) error {
	if offer.OfferID == "" {
		offer.OfferID = fmt.Sprintf("offer-%d", len(m.offers)+1)
	}
	m.offers[offer.OfferID] = offer
	return nil
}

func (m *mockOfferRepo) GetByID(_ context.Context, id string) (*model.Offer, error) {
	if o, ok := m.offers[id]; ok {
		clone := *m.hydrate(o)
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferRepo) Update(_ context.Context, offer *model.Offer) error {
	stored, ok := m.offers[offer.OfferID]
	if !ok || stored.Version != offer.Version {
		return pkgerrors.ErrOptimisticLock
	}
	offer.Version++
	clone := *offer
	m.offers[offer.OfferID] = &clone
	return nil
}

func (m *mockOfferRepo) ReviewIf(_ context.Context, offer *model.Offer, fromEtat string) error {
	stored, ok := m.offers[offer.OfferID]
	if !ok || stored.Version != offer.Version || stored.Etat != fromEtat {
		return pkgerrors.ErrOptimisticLock
	}
	offer.Version++
	clone := *offer
	m.offers[offer.OfferID] = &clone
	return nil
}

func (m *mockOfferRepo) SetStatut(_ context.Context, id, statut string) error {
	if o, ok := m.offers[id]; ok {
		o.Statut = statut
		o.Version++
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOfferRepo) ListVisible(_ context.Context, filter repository.OfferFilter, today time.Time, offset, limit int) ([]model.Offer, int64, error) {
	var result []model.Offer
	for _, o := range m.offers {
		if o.Etat != model.OfferValidated || o.Statut != model.OfferActive || o.Archived {
			continue
		}
		if o.ExpirationDate.Before(today) {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		result = append(result, *m.hydrate(o))
	}
	return result, int64(len(result)), nil
}

func (m *mockOfferRepo) ListByCompany(_ context.Context, companyID string, filter repository.OfferFilter, offset, limit int) ([]model.Offer, int64, error) {
	var result []model.Offer
	for _, o := range m.offers {
		if o.CompanyID != companyID {
			continue
		}
		if filter.Etat != "" && o.Etat != filter.Etat {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOfferRepo) ListPendingReview(_ context.Context, offset, limit int) ([]model.Offer, int64, error) {
	var result []model.Offer
	for _, o := range m.offers {
		if o.Etat == model.OfferPendingValidation && !o.Archived {
			result = append(result, *m.hydrate(o))
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOfferRepo) ListValidated(_ context.Context) ([]model.Offer, error) {
	var result []model.Offer
	for _, o := range m.offers {
		if o.Etat == model.OfferValidated && !o.Archived {
			result = append(result, *m.hydrate(o))
		}
	}
	return result, nil
}

func (m *mockOfferRepo) ArchiveBefore(_ context.Context, cutoff time.Time, academicYear string) (int64, error) {
	var n int64
	for _, o := range m.offers {
		if !o.Archived && o.ExpirationDate.Before(cutoff) {
			o.Archived = true
			o.ArchivedYear = &academicYear
			o.Statut = model.OfferInactive
			n++
		}
	}
	return n, nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps     map[string]*model.Application
	students *mockStudentRepo
	offers   *mockOfferRepo
}

func newMockApplicationRepo(students *mockStudentRepo, offers *mockOfferRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:     make(map[string]*model.Application),
		students: students,
		offers:   offers,
	}
}

func (m *mockApplicationRepo) hydrate(app *model.Application) *model.Application {
	if m.students != nil {
		if s, ok := m.students.students[app.StudentID]; ok {
			app.Student = s
		}
	}
	if m.offers != nil {
		if o, ok := m.offers.offers[app.OfferID]; ok {
			app.Offer = m.offers.hydrate(o)
		}
	}
	return app
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if app.ApplicationID == "" {
		app.ApplicationID = fmt.Sprintf("app-%d", len(m.apps)+1)
	}
	m.apps[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		clone := *a
		return m.hydrate(&clone), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) UpdateStatusIf(_ context.Context, app *model.Application, fromStatut string) error {
	stored, ok := m.apps[app.ApplicationID]
	if !ok || stored.Version != app.Version || stored.Statut != fromStatut {
		return pkgerrors.ErrOptimisticLock
	}
	app.Version++
	clone := *app
	clone.Student = nil
	clone.Offer = nil
	m.apps[app.ApplicationID] = &clone
	return nil
}

func (m *mockApplicationRepo) ExistsLive(_ context.Context, studentID, offerID string) (bool, error) {
	for _, a := range m.apps {
		if a.StudentID == studentID && a.OfferID == offerID && a.Statut != model.ApplicationWithdrawn {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID, statut string, offset, limit int) ([]model.Application, int64, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.StudentID != studentID {
			continue
		}
		if statut != "" && a.Statut != statut {
			continue
		}
		clone := *a
		result = append(result, *m.hydrate(&clone))
	}
	return result, int64(len(result)), nil
}

func (m *mockApplicationRepo) ListByOffer(_ context.Context, offerID, statut string, offset, limit int) ([]model.Application, int64, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.OfferID != offerID {
			continue
		}
		if statut != "" && a.Statut != statut {
			continue
		}
		clone := *a
		result = append(result, *m.hydrate(&clone))
	}
	return result, int64(len(result)), nil
}

func (m *mockApplicationRepo) ListPendingValidation(_ context.Context, offset, limit int) ([]model.Application, int64, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.Statut == model.ApplicationCompanyAccepted {
			clone := *a
			result = append(result, *m.hydrate(&clone))
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockApplicationRepo) ListValidated(_ context.Context) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.Statut == model.ApplicationValidated {
			clone := *a
			result = append(result, *m.hydrate(&clone))
		}
	}
	return result, nil
}

func isNonTerminal(statut string) bool {
	for _, s := range model.NonTerminalApplicationStatuses {
		if statut == s {
			return true
		}
	}
	return false
}

func (m *mockApplicationRepo) ForceStatusByStudent(_ context.Context, studentID, excludeID, toStatut, reason string) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if a.StudentID == studentID && a.ApplicationID != excludeID && isNonTerminal(a.Statut) {
			a.Statut = toStatut
			a.RejectionReason = &reason
			a.Version++
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) ForceStatusByOffer(_ context.Context, offerID, excludeID, toStatut, reason string) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if a.OfferID == offerID && a.ApplicationID != excludeID && isNonTerminal(a.Statut) {
			a.Statut = toStatut
			a.RejectionReason = &reason
			a.Version++
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) CloseAllLive(_ context.Context, reason string) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if isNonTerminal(a.Statut) {
			a.Statut = model.ApplicationWithdrawn
			a.RejectionReason = &reason
			a.Version++
			n++
		}
	}
	return n, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if notification.NotificationID == "" {
		notification.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// received 某用户收到的通知主题列表（测试断言用）
func (m *mockNotificationRepo) received(userID string) []string {
	var subjects []string
	for _, n := range m.notifications {
		if n.UserID == userID {
			subjects = append(subjects, n.Subject)
		}
	}
	return subjects
}

// ── Mock RemunerationScaleRepository ──

type mockScaleRepo struct {
	scales map[string]*model.RemunerationScale
}

func newMockScaleRepo() *mockScaleRepo {
	return &mockScaleRepo{scales: make(map[string]*model.RemunerationScale)}
}

func (m *mockScaleRepo) Create(_ context.Context, scale *model.RemunerationScale) error {
	if scale.ScaleID == "" {
		scale.ScaleID = fmt.Sprintf("scale-%d", len(m.scales)+1)
	}
	m.scales[scale.ScaleID] = scale
	return nil
}

func (m *mockScaleRepo) GetByID(_ context.Context, id string) (*model.RemunerationScale, error) {
	if s, ok := m.scales[id]; ok {
		// 与 GORM 的 First 一致：返回独立副本，避免调用方的修改直接泄漏到存储
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScaleRepo) Update(_ context.Context, scale *model.RemunerationScale) error {
	m.scales[scale.ScaleID] = scale
	return nil
}

func (m *mockScaleRepo) Delete(_ context.Context, id string) error {
	delete(m.scales, id)
	return nil
}

func (m *mockScaleRepo) List(_ context.Context) ([]model.RemunerationScale, error) {
	var result []model.RemunerationScale
	for _, s := range m.scales {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScaleRepo) FindMatching(_ context.Context, offerType, country string, durationWeeks int) (*model.RemunerationScale, error) {
	var best *model.RemunerationScale
	for _, s := range m.scales {
		if s.OfferType != offerType || s.Country != country {
			continue
		}
		if durationWeeks < s.MinDurationWeeks || durationWeeks > s.MaxDurationWeeks {
			continue
		}
		if best == nil || s.MinMonthlyAmount > best.MinMonthlyAmount {
			best = s
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

// ── Mock StatsRepository ──

type mockStatsRepo struct {
	students *mockStudentRepo
	offers   *mockOfferRepo
	apps     *mockApplicationRepo
}

func newMockStatsRepo(students *mockStudentRepo, offers *mockOfferRepo, apps *mockApplicationRepo) *mockStatsRepo {
	return &mockStatsRepo{students: students, offers: offers, apps: apps}
}

func (m *mockStatsRepo) CountStudentsBySearchStatus(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, s := range m.students.students {
		result[s.SearchStatus]++
	}
	return result, nil
}

func (m *mockStatsRepo) CountOffersByEtat(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, o := range m.offers.offers {
		if !o.Archived {
			result[o.Etat]++
		}
	}
	return result, nil
}

func (m *mockStatsRepo) CountOffersByType(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, o := range m.offers.offers {
		if !o.Archived {
			result[o.Type]++
		}
	}
	return result, nil
}

func (m *mockStatsRepo) CountApplicationsByStatut(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.apps.apps {
		result[a.Statut]++
	}
	return result, nil
}

func (m *mockStatsRepo) CountOffersByCompany(_ context.Context, companyID string) (int64, int64, error) {
	var total, active int64
	for _, o := range m.offers.offers {
		if o.CompanyID != companyID {
			continue
		}
		total++
		if o.Etat == model.OfferValidated && o.Statut == model.OfferActive && !o.Archived {
			active++
		}
	}
	return total, active, nil
}

func (m *mockStatsRepo) CountApplicationsByCompany(_ context.Context, companyID string) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.apps.apps {
		if o, ok := m.offers.offers[a.OfferID]; ok && o.CompanyID == companyID {
			result[a.Statut]++
		}
	}
	return result, nil
}

// ── 测试用 Repository 聚合 ──

type testRepos struct {
	repo          *repository.Repository
	users         *mockUserRepo
	students      *mockStudentRepo
	companies     *mockCompanyRepo
	supervisors   *mockSupervisorRepo
	secretaries   *mockSecretaryRepo
	offers        *mockOfferRepo
	apps          *mockApplicationRepo
	notifications *mockNotificationRepo
	scales        *mockScaleRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	students := newMockStudentRepo()
	companies := newMockCompanyRepo()
	supervisors := newMockSupervisorRepo()
	secretaries := newMockSecretaryRepo()
	offers := newMockOfferRepo(companies)
	apps := newMockApplicationRepo(students, offers)
	notifications := newMockNotificationRepo()
	scales := newMockScaleRepo()

	return &testRepos{
		repo: &repository.Repository{
			User:         users,
			Student:      students,
			Company:      companies,
			Supervisor:   supervisors,
			Secretary:    secretaries,
			Offer:        offers,
			Application:  apps,
			Notification: notifications,
			Scale:        scales,
			Stats:        newMockStatsRepo(students, offers, apps),
		},
		users:         users,
		students:      students,
		companies:     companies,
		supervisors:   supervisors,
		secretaries:   secretaries,
		offers:        offers,
		apps:          apps,
		notifications: notifications,
		scales:        scales,
	}
}
