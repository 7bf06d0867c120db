package domain

import "time"

// TaskStatus enumerates distribution specialist case states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusSLAWarning TaskStatus = "sla_warning"
	TaskStatusSLABreach  TaskStatus = "sla_breach"
)

// TaskPriority enumerates case urgency.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// NeedsAttention is true for SLA warnings and breaches.
func (s TaskStatus) NeedsAttention() bool {
	return s == TaskStatusSLAWarning || s == TaskStatusSLABreach
}

// Task is a quote/policy case worked by a distribution specialist.
type Task struct {
	ID           string       `json:"id"`
	QuoteID      string       `json:"quoteId"`
	PolicyNumber string       `json:"policyNumber,omitempty"`
	ClientName   string       `json:"clientName"`
	AssignedTo   string       `json:"assignedTo,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      time.Time    `json:"dueDate"`
	CreatedAt    time.Time    `json:"createdAt"`
	Description  string       `json:"description,omitempty"`
}

// TaskStats summarizes a specialist's caseload.
type TaskStats struct {
	TasksCompleted    int     `json:"tasksCompleted"`
	TasksInProgress   int     `json:"tasksInProgress"`
	TasksPending      int     `json:"tasksPending"`
	TotalQuotes       int     `json:"totalQuotes"`
	ConversionRate    float64 `json:"conversionRate"`
	AverageDailyCases float64 `json:"averageDailyCases"`
	SLABreaches       int     `json:"slaBreaches"`
}
