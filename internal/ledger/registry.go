package ledger

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
)

// Transition is one change to a claim, produced while the claim is locked.
type Transition struct {
	// Replace discards the existing history. Otherwise Event is appended.
	Replace    bool
	CustomerID string
	TopicID    string
	Event      *v1.Event
}

// Registry is the sole mutator of claims. Writes to one claim_id are
// serialized; writes to different claims proceed in parallel.
type Registry struct {
	store storage.ClaimStore
	locks *keyLocks
}

func NewRegistry(store storage.ClaimStore) *Registry {
	return &Registry{store: store, locks: newKeyLocks()}
}

// Get returns the claim or ErrNotFound.
func (r *Registry) Get(ctx context.Context, claimID string) (*v1.Claim, error) {
	return r.store.GetClaim(ctx, claimID)
}

// Apply locks claimID, hands the current claim (nil when unseen) to fn and
// writes the returned transition. If fn fails nothing is written.
func (r *Registry) Apply(ctx context.Context, claimID string, fn func(current *v1.Claim) (*Transition, error)) (*v1.Claim, error) {
	unlock := r.locks.lock(claimID)
	defer unlock()

	current, err := r.store.GetClaim(ctx, claimID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load claim %s: %w", claimID, err)
		}
		current = nil
	}

	tr, err := fn(current)
	if err != nil {
		return nil, err
	}

	status, ok := tr.Event.EventType.Status()
	if !ok {
		return nil, fmt.Errorf("unknown event_type %q", tr.Event.EventType)
	}
	rec := storage.ClaimRecord{
		ClaimID:    claimID,
		CustomerID: tr.CustomerID,
		TopicID:    tr.TopicID,
		Status:     status,
	}

	if tr.Replace || current == nil {
		if tr.Replace {
			err = r.store.ReplaceClaim(ctx, rec, tr.Event)
		} else {
			err = r.store.AppendEvent(ctx, rec, tr.Event)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write claim %s: %w", claimID, err)
		}
		return &v1.Claim{
			ClaimID:    claimID,
			CustomerID: rec.CustomerID,
			TopicID:    rec.TopicID,
			Status:     status,
			Events:     []*v1.Event{tr.Event},
		}, nil
	}

	if err := r.store.AppendEvent(ctx, rec, tr.Event); err != nil {
		return nil, fmt.Errorf("failed to append to claim %s: %w", claimID, err)
	}
	next := current.Clone()
	next.Status = status
	next.Events = append(next.Events, tr.Event)
	return next, nil
}
