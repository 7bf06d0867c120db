package domain

// AttendanceStats is the attendance block of the analytics report.
type AttendanceStats struct {
	TotalAttendance     int     `json:"totalAttendance"`
	LastMonthAttendance int     `json:"lastMonthAttendance"`
	ChangePercent       float64 `json:"changePercent"`
	AttendanceRate      float64 `json:"attendanceRate"`
	TrainingHours       int     `json:"trainingHours"`
	CompletionRate      float64 `json:"completionRate"`
}

// ComplianceStats is the compliance block of the analytics report.
type ComplianceStats struct {
	MandatoryCompletionRate float64   `json:"mandatoryCompletionRate"`
	OverdueTrainings        int       `json:"overdueTrainings"`
	UpcomingMandatory       int       `json:"upcomingMandatory"`
	ComplianceTrend         []float64 `json:"complianceTrend"`
}

// DepartmentRate is one row of the department breakdown.
type DepartmentRate struct {
	Name           string  `json:"name"`
	AttendanceRate float64 `json:"attendanceRate"`
	CompletionRate float64 `json:"completionRate"`
}

// TrainingDigest is a short training line used in report lists.
type TrainingDigest struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Date           string         `json:"date"`
	Attendees      int            `json:"attendees,omitempty"`
	CompletionRate float64        `json:"completionRate,omitempty"`
	Status         TrainingStatus `json:"status,omitempty"`
}

// Declaration is a pending compliance declaration.
type Declaration struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
}

// Analytics is the reports and analytics payload.
type Analytics struct {
	AttendanceStats     AttendanceStats  `json:"attendanceStats"`
	ComplianceStats     ComplianceStats  `json:"complianceStats"`
	DepartmentBreakdown []DepartmentRate `json:"departmentBreakdown"`
	RecentTrainings     []TrainingDigest `json:"recentTrainings"`
	UpcomingTrainings   []TrainingDigest `json:"upcomingTrainings"`
	PendingDeclarations []Declaration    `json:"pendingDeclarations"`
}

// ReportType names an exportable report.
type ReportType string

const (
	ReportTypeAttendance ReportType = "attendance"
	ReportTypeCompliance ReportType = "compliance"
	ReportTypeTrainings  ReportType = "trainings"
)
