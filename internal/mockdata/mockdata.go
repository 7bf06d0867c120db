// Package mockdata holds the seed datasets served while no real backend is wired.
package mockdata

import (
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
)

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

// DemoUsers are the four accounts behind direct access, one per platform role.
func DemoUsers() []domain.User {
	return []domain.User{
		{ID: "user1", Username: "datascientist", Email: "ds@brightrock.com", Name: "Data Scientist User", Role: domain.RoleDS, Status: domain.UserStatusActive},
		{ID: "user2", Username: "manager", Email: "manager@brightrock.com", Name: "Manager User", Role: domain.RoleManager, Status: domain.UserStatusActive},
		{ID: "user3", Username: "executive", Email: "exec@brightrock.com", Name: "Executive User", Role: domain.RoleExecutive, Status: domain.UserStatusActive},
		{ID: "user4", Username: "admin", Email: "admin@brightrock.com", Name: "Admin User", Role: domain.RoleAdmin, Status: domain.UserStatusActive},
	}
}

// DirectoryUsers are the rows of the admin user management screen.
func DirectoryUsers() []domain.User {
	return []domain.User{
		{ID: "1", FirstName: "John", LastName: "Doe", Email: "john.doe@sasol.com", Phone: "+27123456789", Role: domain.DirectoryRoleAdmin, Department: "IT", Status: domain.UserStatusActive, LastLogin: timePtr(at("2024-05-15T08:30:00Z")), CompanyName: "Sasol"},
		{ID: "2", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@sasol.com", Phone: "+27123456790", Role: domain.DirectoryRoleUser, Department: "Operations", Status: domain.UserStatusActive, LastLogin: timePtr(at("2024-05-10T10:15:00Z")), CompanyName: "Sasol"},
		{ID: "3", FirstName: "Michael", LastName: "Johnson", Email: "michael.johnson@contractor.com", Phone: "+27123456791", Role: domain.DirectoryRoleInstructor, Department: "Safety", Status: domain.UserStatusInactive, LastLogin: timePtr(at("2024-04-20T14:45:00Z")), CompanyName: "Safety Contractors Ltd"},
		{ID: "4", FirstName: "Sarah", LastName: "Williams", Email: "sarah.williams@sasol.com", Phone: "+27123456792", Role: domain.DirectoryRoleUser, Department: "HR", Status: domain.UserStatusActive, LastLogin: timePtr(at("2024-05-14T09:20:00Z")), CompanyName: "Sasol"},
		{ID: "5", FirstName: "Robert", LastName: "Brown", Email: "robert.brown@sasol.com", Phone: "+27123456793", Role: domain.DirectoryRoleAdmin, Department: "Finance", Status: domain.UserStatusActive, LastLogin: timePtr(at("2024-05-13T16:10:00Z")), CompanyName: "Sasol"},
	}
}

func timePtr(t time.Time) *time.Time { return &t }

// Trainings is the initial training calendar.
func Trainings() []domain.Training {
	return []domain.Training{
		{ID: "1", Title: "ESD Compliance Workshop", Date: at("2025-03-02T09:00:00Z"), EndDate: at("2025-03-02T12:00:00Z"), Status: domain.TrainingStatusScheduled, Attendees: 24, Capacity: 30, IsMandatory: true, Location: "Sasol Head Office", FacilitatorName: "John Smith", Description: "Key compliance requirements...", Category: "Compliance", Type: "In-Person", Level: "Intermediate"},
		{ID: "2", Title: "Safety Protocols Training", Date: at("2025-03-05T10:00:00Z"), EndDate: at("2025-03-05T15:00:00Z"), Status: domain.TrainingStatusScheduled, Attendees: 18, Capacity: 25, IsMandatory: true, IsVirtual: true, Location: "Online", FacilitatorName: "Sarah Johnson", Description: "Essential safety protocols...", Category: "Safety", Type: "Virtual", Level: "Basic"},
		{ID: "3", Title: "Vendor Onboarding Session", Date: at("2025-03-10T14:00:00Z"), EndDate: at("2025-03-10T16:30:00Z"), Status: domain.TrainingStatusScheduled, Attendees: 12, Capacity: 20, Location: "Sasol Training Center, Secunda", FacilitatorName: "David Williams", Description: "Onboarding for new vendors...", Category: "Onboarding", Type: "In-Person", Level: "Beginner"},
		{ID: "4", Title: "Environmental Compliance Workshop", Date: at("2025-02-15T09:00:00Z"), EndDate: at("2025-02-15T12:00:00Z"), Status: domain.TrainingStatusCompleted, Attendees: 28, Capacity: 30, IsMandatory: true, Location: "Sasol Head Office", FacilitatorName: "Emily Brown", Description: "Workshop on environmental regulations...", Category: "Compliance", Type: "In-Person", Level: "Intermediate"},
	}
}

// Attendance returns the starter attendance history of one user.
func Attendance(userID string) []domain.AttendanceRecord {
	rows := []domain.AttendanceRecord{
		{TrainingID: "101", TrainingTitle: "Safety Procedures Training", Date: at("2025-02-15T00:00:00Z"), Status: domain.AttendanceStatusCompleted, Duration: "4 hours", Location: "Training Center A", Certified: true, Score: intPtr(92), Training: domain.AttendanceTraining{Category: "Safety", Title: "Safety Procedures Training", Location: "Training Center A", Instructor: "John Doe", IsRequired: true}},
		{TrainingID: "102", TrainingTitle: "Hazardous Materials Handling", Date: at("2025-01-28T00:00:00Z"), Status: domain.AttendanceStatusCompleted, Duration: "6 hours", Location: "Lab 3", Certified: true, Score: intPtr(88), Training: domain.AttendanceTraining{Category: "Compliance", Title: "Hazardous Materials Handling", Location: "Lab 3", Instructor: "Jane Doe"}},
		{TrainingID: "103", TrainingTitle: "Environmental Compliance", Date: at("2025-03-10T00:00:00Z"), Status: domain.AttendanceStatusUpcoming, Duration: "2 hours", Location: "Conference Room B", Training: domain.AttendanceTraining{Category: "Compliance", Title: "Environmental Compliance", Location: "Conference Room B", Instructor: "Bob Smith", IsRequired: true}},
		{TrainingID: "104", TrainingTitle: "First Aid and CPR", Date: at("2024-12-05T00:00:00Z"), Status: domain.AttendanceStatusCompleted, Duration: "8 hours", Location: "Medical Wing", Certified: true, Score: intPtr(95), Training: domain.AttendanceTraining{Category: "Safety", Title: "First Aid and CPR", Location: "Medical Wing", Instructor: "Alice Johnson", IsRequired: true}},
		{TrainingID: "105", TrainingTitle: "Fire Safety and Prevention", Date: at("2025-03-05T00:00:00Z"), Status: domain.AttendanceStatusMissed, Duration: "3 hours", Location: "Training Center B", Training: domain.AttendanceTraining{Category: "Safety", Title: "Fire Safety and Prevention", Location: "Training Center B", Instructor: "Mike Brown"}},
	}
	for i := range rows {
		rows[i].ID = userID + "-" + rows[i].TrainingID
		rows[i].UserID = userID
		rows[i].RecordedAt = rows[i].Date
	}
	return rows
}

// SpecialistTasks is the distribution specialist's caseload.
func SpecialistTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", QuoteID: "Q12345", PolicyNumber: "POL-987-654-321", ClientName: "John Smith", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh, DueDate: at("2025-06-03T16:30:00Z"), CreatedAt: at("2025-06-01T09:15:00Z"), Description: "Review and process client application"},
		{ID: "2", QuoteID: "Q12346", PolicyNumber: "POL-987-654-322", ClientName: "Alice Johnson", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityMedium, DueDate: at("2025-06-02T12:00:00Z"), CreatedAt: at("2025-05-31T14:30:00Z"), Description: "Verify client information and update records"},
		{ID: "3", QuoteID: "Q12347", PolicyNumber: "POL-987-654-323", ClientName: "Robert Brown", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityLow, DueDate: at("2025-06-01T17:00:00Z"), CreatedAt: at("2025-05-31T10:00:00Z"), Description: "Process policy renewal"},
		{ID: "4", QuoteID: "Q12348", PolicyNumber: "POL-987-654-324", ClientName: "Emily Davis", Status: domain.TaskStatusSLAWarning, Priority: domain.TaskPriorityHigh, DueDate: at("2025-06-01T23:59:00Z"), CreatedAt: at("2025-05-30T11:45:00Z"), Description: "Follow up on client request for policy amendment"},
		{ID: "5", QuoteID: "Q12349", PolicyNumber: "POL-987-654-325", ClientName: "Michael Wilson", Status: domain.TaskStatusSLABreach, Priority: domain.TaskPriorityCritical, DueDate: at("2025-05-31T16:00:00Z"), CreatedAt: at("2025-05-29T09:30:00Z"), Description: "Resolve client complaint regarding premium calculation"},
	}
}

// SpecialistBaseline holds the historical counters the caseload stats start from.
var SpecialistBaseline = domain.TaskStats{
	TasksCompleted:    27,
	TasksInProgress:   5,
	TasksPending:      12,
	TotalQuotes:       155,
	ConversionRate:    78.5,
	AverageDailyCases: 8.3,
	SLABreaches:       2,
}

// TeamMembers is the manager's team.
func TeamMembers() []domain.TeamMember {
	return []domain.TeamMember{
		{ID: "1", FirstName: "John", LastName: "Doe", Email: "john.doe@brightrock.com", Role: domain.RoleDS, AvatarURL: "https://i.pravatar.cc/150?img=1", TasksCompleted: 27, TasksInProgress: 5, TasksPending: 12, ConversionRate: 78.5, AverageDailyCases: 8.3, SLABreaches: 2, Performance: 92},
		{ID: "2", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@brightrock.com", Role: domain.RoleDS, AvatarURL: "https://i.pravatar.cc/150?img=5", TasksCompleted: 19, TasksInProgress: 3, TasksPending: 8, ConversionRate: 72.1, AverageDailyCases: 6.5, SLABreaches: 1, Performance: 85},
		{ID: "3", FirstName: "David", LastName: "Johnson", Email: "david.johnson@brightrock.com", Role: domain.RoleDS, AvatarURL: "https://i.pravatar.cc/150?img=3", TasksCompleted: 15, TasksInProgress: 7, TasksPending: 14, ConversionRate: 65.3, AverageDailyCases: 5.2, SLABreaches: 4, Performance: 76},
		{ID: "4", FirstName: "Sarah", LastName: "Williams", Email: "sarah.williams@brightrock.com", Role: domain.RoleDS, AvatarURL: "https://i.pravatar.cc/150?img=9", TasksCompleted: 31, TasksInProgress: 2, TasksPending: 5, ConversionRate: 84.2, AverageDailyCases: 9.1, SLABreaches: 0, Performance: 96},
	}
}

// TeamTasks are the team cases visible to the manager.
func TeamTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", QuoteID: "Q12345", ClientName: "John Smith", AssignedTo: "John Doe", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh, DueDate: at("2025-06-03T16:30:00Z"), Description: "Review and process client application"},
		{ID: "2", QuoteID: "Q12346", ClientName: "Alice Johnson", AssignedTo: "Jane Smith", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityMedium, DueDate: at("2025-06-02T12:00:00Z"), Description: "Verify client information and update records"},
		{ID: "3", QuoteID: "Q12347", ClientName: "Robert Brown", AssignedTo: "David Johnson", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityLow, DueDate: at("2025-06-01T17:00:00Z"), Description: "Process policy renewal"},
		{ID: "4", QuoteID: "Q12348", ClientName: "Emily Davis", AssignedTo: "Sarah Williams", Status: domain.TaskStatusSLAWarning, Priority: domain.TaskPriorityHigh, DueDate: at("2025-06-01T23:59:00Z"), Description: "Follow up on client request for policy amendment"},
		{ID: "5", QuoteID: "Q12349", ClientName: "Michael Wilson", AssignedTo: "David Johnson", Status: domain.TaskStatusSLABreach, Priority: domain.TaskPriorityCritical, DueDate: at("2025-05-31T16:00:00Z"), Description: "Resolve client complaint regarding premium calculation"},
	}
}

// AnalyticsBaseline carries the organisation-wide figures the reports page starts from.
func AnalyticsBaseline() domain.Analytics {
	return domain.Analytics{
		AttendanceStats: domain.AttendanceStats{TotalAttendance: 1248, LastMonthAttendance: 156, ChangePercent: 12.5, AttendanceRate: 87.3, TrainingHours: 4762, CompletionRate: 92.8},
		ComplianceStats: domain.ComplianceStats{MandatoryCompletionRate: 94.6, OverdueTrainings: 17, UpcomingMandatory: 43, ComplianceTrend: []float64{86, 88, 90, 92, 93, 94.6}},
		DepartmentBreakdown: []domain.DepartmentRate{
			{Name: "Operations", AttendanceRate: 91.2, CompletionRate: 96.4},
			{Name: "Maintenance", AttendanceRate: 88.5, CompletionRate: 92.1},
			{Name: "Safety", AttendanceRate: 95.8, CompletionRate: 98.7},
			{Name: "HR", AttendanceRate: 89.3, CompletionRate: 91.8},
			{Name: "Admin", AttendanceRate: 82.6, CompletionRate: 89.5},
		},
		PendingDeclarations: []domain.Declaration{
			{ID: "301", Title: "Safety Protocol Adherence", Deadline: "2025-03-01", Status: "pending"},
			{ID: "302", Title: "Compliance Statement", Deadline: "2025-03-05", Status: "pending"},
			{ID: "303", Title: "Quarterly Safety Review", Deadline: "2025-03-10", Status: "pending"},
		},
	}
}

// ExecutiveTargets are the organisation goals the executive KPIs compare against.
var ExecutiveTargets = struct {
	ConversionRate float64
	DailyCases     float64
}{ConversionRate: 78, DailyCases: 8.0}

// ExecutiveTrend is the six month history behind the executive charts.
func ExecutiveTrend() domain.KPITrend {
	return domain.KPITrend{
		Months:          []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		ConversionRates: []float64{78.2, 79.1, 79.8, 80.3, 80.8, 81.0},
		SLABreaches:     []float64{22, 19, 16, 15, 13, 11},
		DailyCases:      []float64{7.1, 7.4, 7.8, 8.1, 8.5, 8.6},
	}
}
