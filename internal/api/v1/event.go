package v1

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Ledger amounts are JSON numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// EventType names a claim lifecycle fact.
type EventType string

const (
	EventClaimSubmitted EventType = "claim_submitted"
	EventClaimExtracted EventType = "claim_extracted"
	EventClaimDecision  EventType = "claim_decision"
)

// Status reports the claim status implied by an event of this type.
func (t EventType) Status() (Status, bool) {
	switch t {
	case EventClaimSubmitted:
		return StatusSubmitted, true
	case EventClaimExtracted:
		return StatusExtracted, true
	case EventClaimDecision:
		return StatusDecided, true
	}
	return "", false
}

// Event is one immutable ledger log record appended to a claim's history.
type Event struct {
	// TransactionID is unique per event, formatted 0.0.<rand>@<unix nanos>.
	TransactionID string `json:"transaction_id"`

	// Timestamp is UTC with second precision and a literal Z suffix.
	Timestamp string `json:"timestamp"`

	EventType EventType `json:"event_type"`

	// Payload holds the variant matching EventType.
	Payload Payload `json:"payload"`
}

// Payload is the tagged union of event bodies. The concrete type decides
// the event type it may be logged under.
type Payload interface {
	EventType() EventType
}

// DocumentRef is the ledger's view of an attached document. Raw bytes
// never reach the log, only whether content was present.
type DocumentRef struct {
	Filename   string `json:"filename"`
	HasContent bool   `json:"has_content"`
}

// SubmittedPayload is the body of a claim_submitted event.
type SubmittedPayload struct {
	ClaimID    string                 `json:"claim_id"`
	CustomerID string                 `json:"customer_id"`
	Documents  []DocumentRef          `json:"documents"`
	IPFSCIDs   []string               `json:"ipfs_cids"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

func (*SubmittedPayload) EventType() EventType { return EventClaimSubmitted }

// ExtractedPayload is the body of a claim_extracted event.
type ExtractedPayload struct {
	ClaimID    string                 `json:"claim_id"`
	CustomerID string                 `json:"customer_id"`
	Extracted  map[string]interface{} `json:"extracted"`
}

func (*ExtractedPayload) EventType() EventType { return EventClaimExtracted }

// DecisionPayload is the body of a claim_decision event.
type DecisionPayload struct {
	ClaimID        string          `json:"claim_id"`
	CustomerID     string          `json:"customer_id"`
	Decision       Decision        `json:"decision"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	Reason         string          `json:"reason"`
}

func (*DecisionPayload) EventType() EventType { return EventClaimDecision }

// UnmarshalJSON decodes the payload into the variant named by event_type.
func (e *Event) UnmarshalJSON(b []byte) error {
	var raw struct {
		TransactionID string          `json:"transaction_id"`
		Timestamp     string          `json:"timestamp"`
		EventType     EventType       `json:"event_type"`
		Payload       json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	payload, err := DecodePayload(raw.EventType, raw.Payload)
	if err != nil {
		return err
	}

	e.TransactionID = raw.TransactionID
	e.Timestamp = raw.Timestamp
	e.EventType = raw.EventType
	e.Payload = payload
	return nil
}

// DecodePayload unmarshals raw JSON into the payload variant for t.
func DecodePayload(t EventType, data []byte) (Payload, error) {
	var p Payload
	switch t {
	case EventClaimSubmitted:
		p = &SubmittedPayload{}
	case EventClaimExtracted:
		p = &ExtractedPayload{}
	case EventClaimDecision:
		p = &DecisionPayload{}
	default:
		return nil, fmt.Errorf("unknown event_type %q", t)
	}

	if len(data) == 0 || string(data) == "null" {
		return p, nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
	}
	return p, nil
}
