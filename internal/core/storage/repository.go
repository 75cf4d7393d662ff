package storage

import (
	"context"
	"errors"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
)

// ErrNotFound is returned when no claim exists for the requested claim_id.
var ErrNotFound = errors.New("claim not found")

// ClaimRecord is the claim header written alongside an event.
type ClaimRecord struct {
	ClaimID    string
	CustomerID string
	TopicID    string
	Status     v1.Status
}

// TopicStore tracks the process-wide set of allocated topics.
type TopicStore interface {
	// RegisterTopic adds topicID to the set. created is false when the id
	// was already present.
	RegisterTopic(ctx context.Context, topicID string) (created bool, err error)
}

// ClaimStore persists claims and their event histories.
// Callers serialize writes per claim_id; implementations only need to make
// each call atomic on its own.
type ClaimStore interface {
	TopicStore

	// GetClaim returns a copy of the claim with its ordered events, or ErrNotFound.
	GetClaim(ctx context.Context, claimID string) (*v1.Claim, error)

	// ReplaceClaim creates the claim or overwrites its header and resets the
	// history to exactly evt.
	ReplaceClaim(ctx context.Context, rec ClaimRecord, evt *v1.Event) error

	// AppendEvent appends evt and sets the status. An unseen claim is created
	// from rec; an existing claim keeps its customer_id and topic_id.
	AppendEvent(ctx context.Context, rec ClaimRecord, evt *v1.Event) error

	// ListClaimsByCustomer returns the customer's claims in creation order.
	ListClaimsByCustomer(ctx context.Context, customerID string) ([]v1.ClaimSummary, error)
}
