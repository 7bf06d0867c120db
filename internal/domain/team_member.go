package domain

// LowPerformanceThreshold marks members the manager dashboard flags.
const LowPerformanceThreshold = 80

// TeamMember is a managed specialist with performance counters.
type TeamMember struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Role              Role    `json:"role"`
	AvatarURL         string  `json:"avatarUrl,omitempty"`
	TasksCompleted    int     `json:"tasksCompleted"`
	TasksInProgress   int     `json:"tasksInProgress"`
	TasksPending      int     `json:"tasksPending"`
	ConversionRate    float64 `json:"conversionRate"`
	AverageDailyCases float64 `json:"averageDailyCases"`
	SLABreaches       int     `json:"slaBreaches"`
	Performance       int     `json:"performance"`
}

// FullName joins first and last name.
func (m TeamMember) FullName() string {
	return m.FirstName + " " + m.LastName
}

// TotalTasks sums all task counters.
func (m TeamMember) TotalTasks() int {
	return m.TasksCompleted + m.TasksInProgress + m.TasksPending
}
