package events

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded in every domain event. EventID is what consumers use to
// deduplicate redeliveries.
type Base struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBase(eventType, requestID, actorID, userID string, at time.Time) Base {
	return Base{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		RequestID:  requestID,
		ActorID:    actorID,
		UserID:     userID,
		OccurredAt: at.UTC(),
	}
}

// Topics consumed by the activity projector.
func Topics() []string {
	return []string{
		EmployeeLifecycleTopic,
		LeaveLifecycleTopic,
		AttendanceRecordedTopic,
	}
}
