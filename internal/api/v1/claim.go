package v1

import (
	"fmt"
	"slices"
)

// Status is the lifecycle state of a claim.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusExtracted Status = "extracted"
	StatusDecided   Status = "decided"
)

// Decision is the outcome recorded by a claim_decision event.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Valid reports whether d is one of the accepted outcomes.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// DefaultReason is the reason recorded when the caller gives none.
func (d Decision) DefaultReason() string {
	if d == DecisionApproved {
		return "Approved"
	}
	return "Rejected"
}

// Claim is one insurance claim under processing together with its
// append-only event history.
type Claim struct {
	ClaimID    string   `json:"claim_id"`
	CustomerID string   `json:"customer_id"`
	TopicID    string   `json:"topic_id"`
	Status     Status   `json:"status"`
	Events     []*Event `json:"events"`
}

// ClaimSummary is the list view of a claim.
type ClaimSummary struct {
	ClaimID    string `json:"claim_id"`
	CustomerID string `json:"customer_id"`
	Status     Status `json:"status"`
}

// Summary returns the list view of c.
func (c *Claim) Summary() ClaimSummary {
	return ClaimSummary{
		ClaimID:    c.ClaimID,
		CustomerID: c.CustomerID,
		Status:     c.Status,
	}
}

// Clone copies the claim and its event slice. Events are immutable and shared.
func (c *Claim) Clone() *Claim {
	out := *c
	out.Events = slices.Clone(c.Events)
	return &out
}

// Validate checks that the history is non-empty and that status agrees
// with the last event.
func (c *Claim) Validate() error {
	if c.ClaimID == "" {
		return fmt.Errorf("claim_id is required")
	}
	if len(c.Events) == 0 {
		return fmt.Errorf("claim %s has no events", c.ClaimID)
	}
	last := c.Events[len(c.Events)-1]
	want, ok := last.EventType.Status()
	if !ok {
		return fmt.Errorf("claim %s: unknown event_type %q", c.ClaimID, last.EventType)
	}
	if c.Status != want {
		return fmt.Errorf("claim %s: status %q does not match last event %q", c.ClaimID, c.Status, last.EventType)
	}
	return nil
}

// Document is an attachment handed to Submit. Content may be empty.
type Document struct {
	Filename string
	Content  []byte
}
