package events

import (
	"time"

	"github.com/google/uuid"
)

const KindDutyAcknowledged = "dailyduty.acknowledged"

// DutyAcknowledgedEvent records that a user checked one of the helpdesk duties.
type DutyAcknowledgedEvent struct {
	Envelope
	Duty     string `json:"duty"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func NewDutyAcknowledgedEvent(duty string, userID int64, username string, at time.Time) *DutyAcknowledgedEvent {
	return &DutyAcknowledgedEvent{
		Envelope: Envelope{EventID: uuid.NewString(), EventKind: KindDutyAcknowledged, Occurred: at},
		Duty:     duty,
		UserID:   userID,
		Username: username,
	}
}
