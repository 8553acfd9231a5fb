package dto

// ── 统计模块 DTO ──

// DashboardStatsResponse 全局看板统计响应
type DashboardStatsResponse struct {
	TotalStudents       int64            `json:"total_students"`
	PlacedStudents      int64            `json:"placed_students"`
	SearchingStudents   int64            `json:"searching_students"`
	TotalOffers         int64            `json:"total_offers"`
	PendingOffers       int64            `json:"pending_offers"`
	ValidatedOffers     int64            `json:"validated_offers"`
	TotalApplications   int64            `json:"total_applications"`
	ApplicationsByState map[string]int64 `json:"applications_by_state"`
	OffersByType        map[string]int64 `json:"offers_by_type"`
	PlacementRate       float64          `json:"placement_rate"` // 已分配学生占比（0~1）
}

// CompanyStatsResponse 单个企业统计响应
type CompanyStatsResponse struct {
	TotalOffers       int64 `json:"total_offers"`
	ActiveOffers      int64 `json:"active_offers"`
	TotalApplications int64 `json:"total_applications"`
	PendingDecisions  int64 `json:"pending_decisions"`
	HiredStudents     int64 `json:"hired_students"`
}

// ArchiveResultResponse 年度归档执行结果
type ArchiveResultResponse struct {
	AcademicYear   string `json:"academic_year"`
	ArchivedOffers int64  `json:"archived_offers"`
	ClosedApps     int64  `json:"closed_applications"`
	ResetStudents  int64  `json:"reset_students"`
}
