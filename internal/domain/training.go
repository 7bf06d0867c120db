package domain

import "time"

// TrainingStatus enumerates lifecycle states for a training session.
type TrainingStatus string

const (
	TrainingStatusScheduled  TrainingStatus = "scheduled"
	TrainingStatusInProgress TrainingStatus = "in_progress"
	TrainingStatusCompleted  TrainingStatus = "completed"
	TrainingStatusCancelled  TrainingStatus = "cancelled"
)

// Training is a scheduled training session.
type Training struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Date            time.Time      `json:"date"`
	EndDate         time.Time      `json:"endDate"`
	Status          TrainingStatus `json:"status"`
	Attendees       int            `json:"attendees"`
	Capacity        int            `json:"capacity"`
	IsMandatory     bool           `json:"isMandatory"`
	IsVirtual       bool           `json:"isVirtual"`
	Location        string         `json:"location,omitempty"`
	FacilitatorName string         `json:"facilitatorName,omitempty"`
	Category        string         `json:"category,omitempty"`
	Type            string         `json:"type,omitempty"`
	Level           string         `json:"level,omitempty"`
}

// SeatsLeft never goes negative.
func (t Training) SeatsLeft() int {
	if t.Attendees >= t.Capacity {
		return 0
	}
	return t.Capacity - t.Attendees
}

// IsPast reports whether the session ended before now.
func (t Training) IsPast(now time.Time) bool {
	return t.EndDate.Before(now)
}
