package repositories

import "context"

// ReportRepository interface for aggregate reporting queries over the
// profiles database. Counts come back as int64 so large tallies survive
// the scan regardless of driver integer width.
type ReportRepository interface {
	StudentEnrollmentReport(ctx context.Context) ([]StudentEnrollmentRow, error)
	CareerDistributionReport(ctx context.Context) ([]CareerDistributionRow, error)
	TeacherWorkloadReport(ctx context.Context) ([]TeacherWorkloadRow, error)
	SystemStatistics(ctx context.Context) (*SystemStats, error)
}
