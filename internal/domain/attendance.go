package domain

import "time"

// AttendanceStatus enumerates a user's attendance outcome for a training.
type AttendanceStatus string

const (
	AttendanceStatusCompleted AttendanceStatus = "completed"
	AttendanceStatusUpcoming  AttendanceStatus = "upcoming"
	AttendanceStatusMissed    AttendanceStatus = "missed"
)

// AttendanceTraining is the denormalized training snapshot kept on a record.
type AttendanceTraining struct {
	Category   string `json:"category,omitempty"`
	Title      string `json:"title"`
	Location   string `json:"location,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	IsRequired bool   `json:"isRequired"`
}

// AttendanceRecord ties a user to a training. No referential integrity is kept with trainings.
type AttendanceRecord struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	TrainingID    string             `json:"trainingId"`
	TrainingTitle string             `json:"trainingTitle"`
	Date          time.Time          `json:"date"`
	Status        AttendanceStatus   `json:"status"`
	Duration      string             `json:"duration,omitempty"`
	Location      string             `json:"location,omitempty"`
	Certified     bool               `json:"certified"`
	Score         *int               `json:"score"`
	Feedback      string             `json:"feedback,omitempty"`
	Rating        int                `json:"rating,omitempty"`
	Training      AttendanceTraining `json:"training"`
	RecordedAt    time.Time          `json:"recordedAt"`
}

// AttendanceSummary aggregates a user's records.
type AttendanceSummary struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Upcoming     int `json:"upcoming"`
	Missed       int `json:"missed"`
	AverageScore int `json:"averageScore"`
}
