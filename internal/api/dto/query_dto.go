package dto

// TrainingListQuery captures training list filters.
type TrainingListQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Type     string `query:"type"`
	ShowPast bool   `query:"showPast"`
}

// UserListQuery captures user directory filters.
type UserListQuery struct {
	Search string `query:"search"`
	Role   string `query:"role"`
}

// AttendanceListQuery captures attendance filters.
type AttendanceListQuery struct {
	Status string `query:"status"`
	Tab    string `query:"tab"`
	Search string `query:"search"`
}

// TaskListQuery captures specialist task filters.
type TaskListQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

// MemberListQuery captures manager team filters.
type MemberListQuery struct {
	Search        string `query:"search"`
	Role          string `query:"role"`
	LowPerformers bool   `query:"lowPerformers"`
}
