package domain

// TeamStats totals the manager's team.
type TeamStats struct {
	TotalMembers          int     `json:"totalMembers"`
	TasksCompleted        int     `json:"tasksCompleted"`
	TasksInProgress       int     `json:"tasksInProgress"`
	TasksPending          int     `json:"tasksPending"`
	SLABreaches           int     `json:"slaBreaches"`
	AverageConversionRate float64 `json:"averageConversionRate"`
	AveragePerformance    float64 `json:"averagePerformance"`
	LowPerformers         int     `json:"lowPerformers"`
}

// KPITrend is monthly history for the executive charts.
type KPITrend struct {
	Months          []string  `json:"months"`
	ConversionRates []float64 `json:"conversionRates"`
	SLABreaches     []float64 `json:"slaBreaches"`
	DailyCases      []float64 `json:"dailyCases"`
}

// ExecutiveKPIs is the executive dashboard summary.
type ExecutiveKPIs struct {
	TeamSize              int      `json:"teamSize"`
	TasksCompleted        int      `json:"tasksCompleted"`
	OpenTasks             int      `json:"openTasks"`
	AverageConversionRate float64  `json:"averageConversionRate"`
	TargetConversionRate  float64  `json:"targetConversionRate"`
	ConversionDelta       float64  `json:"conversionDelta"`
	AverageDailyCases     float64  `json:"averageDailyCases"`
	TargetDailyCases      float64  `json:"targetDailyCases"`
	TotalSLABreaches      int      `json:"totalSlaBreaches"`
	Escalations           int      `json:"escalations"`
	TopPerformer          string   `json:"topPerformer,omitempty"`
	Trend                 KPITrend `json:"trend"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalTrainings    int              `json:"totalTrainings"`
	UpcomingTrainings int              `json:"upcomingTrainings"`
	TotalUsers        int              `json:"totalUsers"`
	ActiveUsers       int              `json:"activeUsers"`
	AttendanceRecords int              `json:"attendanceRecords"`
	ComplianceRate    float64          `json:"complianceRate"`
	NextTrainings     []TrainingDigest `json:"nextTrainings"`
}
