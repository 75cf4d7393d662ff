package ledger

import (
	"time"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
)

// timestampLayout is ISO-8601 at second precision with a literal Z.
const timestampLayout = "2006-01-02T15:04:05Z"

// EventLogger builds ledger records. It does not store them.
type EventLogger struct {
	ids IDGenerator
	now func() time.Time
}

func NewEventLogger(ids IDGenerator) *EventLogger {
	return &EventLogger{ids: ids, now: time.Now}
}

// Log creates an event for payload on topicID. The event type comes from
// the payload variant.
func (l *EventLogger) Log(topicID string, payload v1.Payload) (*v1.Event, error) {
	if topicID == "" {
		return nil, invalidArgumentf("topic_id is required")
	}
	if payload == nil {
		return nil, invalidArgumentf("payload is required")
	}

	at := l.now().UTC()
	return &v1.Event{
		TransactionID: l.ids.TransactionID(at),
		Timestamp:     at.Truncate(time.Second).Format(timestampLayout),
		EventType:     payload.EventType(),
		Payload:       payload,
	}, nil
}
