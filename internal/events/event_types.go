package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightrock/efficiency-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventTrainingCreated        EventType = "training_created"
	EventTrainingUpdated        EventType = "training_updated"
	EventTrainingDeleted        EventType = "training_deleted"
	EventAttendanceRecorded     EventType = "attendance_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, actorID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TrainingChangedPayload is shared by the training created/updated/deleted events.
type TrainingChangedPayload struct {
	TrainingID string                `json:"training_id"`
	Title      string                `json:"title"`
	Status     domain.TrainingStatus `json:"status,omitempty"`
	Mandatory  bool                  `json:"mandatory"`
}

// AttendanceRecordedPayload payload.
type AttendanceRecordedPayload struct {
	RecordID   string                  `json:"record_id"`
	UserID     string                  `json:"user_id"`
	TrainingID string                  `json:"training_id"`
	Status     domain.AttendanceStatus `json:"status"`
}
