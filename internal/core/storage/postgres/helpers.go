package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
)

// marshalPayload marshals an event payload for the JSONB payload column.
func marshalPayload(evt *v1.Event) ([]byte, error) {
	if evt.Payload == nil {
		return nil, fmt.Errorf("event %s has no payload", evt.TransactionID)
	}
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a claim_events row and decodes the payload variant
// named by event_type.
func scanEventRow(row scanner) (*v1.Event, error) {
	var evt v1.Event
	var payloadJSON []byte

	err := row.Scan(
		&evt.TransactionID,
		&evt.Timestamp,
		&evt.EventType,
		&payloadJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	payload, err := v1.DecodePayload(evt.EventType, payloadJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	evt.Payload = payload

	return &evt, nil
}
