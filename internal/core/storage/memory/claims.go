package memory

import (
	"context"
	"log/slog"
	"sync"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
)

// ClaimStore is an in-process implementation of storage.ClaimStore.
// Claims are listed in the order they were first created.
type ClaimStore struct {
	mu     sync.RWMutex
	claims map[string]*v1.Claim
	order  []string
	topics map[string]struct{}
}

// NewClaimStore creates an empty in-memory claim store.
func NewClaimStore() *ClaimStore {
	return &ClaimStore{
		claims: make(map[string]*v1.Claim),
		topics: make(map[string]struct{}),
	}
}

func (s *ClaimStore) RegisterTopic(ctx context.Context, topicID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.topics[topicID]; exists {
		return false, nil
	}
	s.topics[topicID] = struct{}{}
	return true, nil
}

func (s *ClaimStore) GetClaim(ctx context.Context, claimID string) (*v1.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.claims[claimID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *ClaimStore) ReplaceClaim(ctx context.Context, rec storage.ClaimRecord, evt *v1.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claims[rec.ClaimID]; !exists {
		s.order = append(s.order, rec.ClaimID)
	}
	s.claims[rec.ClaimID] = &v1.Claim{
		ClaimID:    rec.ClaimID,
		CustomerID: rec.CustomerID,
		TopicID:    rec.TopicID,
		Status:     rec.Status,
		Events:     []*v1.Event{evt},
	}

	slog.Debug("[Memory] Replaced claim", "claim_id", rec.ClaimID, "transaction_id", evt.TransactionID)
	return nil
}

func (s *ClaimStore) AppendEvent(ctx context.Context, rec storage.ClaimRecord, evt *v1.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.claims[rec.ClaimID]
	if !exists {
		c = &v1.Claim{
			ClaimID:    rec.ClaimID,
			CustomerID: rec.CustomerID,
			TopicID:    rec.TopicID,
		}
		s.claims[rec.ClaimID] = c
		s.order = append(s.order, rec.ClaimID)
	}
	c.Events = append(c.Events, evt)
	c.Status = rec.Status

	slog.Debug("[Memory] Appended event", "claim_id", rec.ClaimID, "transaction_id", evt.TransactionID, "events", len(c.Events))
	return nil
}

func (s *ClaimStore) ListClaimsByCustomer(ctx context.Context, customerID string) ([]v1.ClaimSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []v1.ClaimSummary{}
	for _, id := range s.order {
		c := s.claims[id]
		if c.CustomerID != customerID {
			continue
		}
		result = append(result, c.Summary())
	}
	return result, nil
}
