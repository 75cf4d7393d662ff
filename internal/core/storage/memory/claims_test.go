package memory

import (
	"context"
	"testing"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func event(txID string, t v1.EventType) *v1.Event {
	p, _ := v1.DecodePayload(t, nil)
	return &v1.Event{TransactionID: txID, Timestamp: "2026-02-08T12:00:00Z", EventType: t, Payload: p}
}

func TestClaimStore_GetClaimNotFound(t *testing.T) {
	s := NewClaimStore()

	_, err := s.GetClaim(context.Background(), "C-missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClaimStore_ReplaceResetsHistory(t *testing.T) {
	ctx := context.Background()
	s := NewClaimStore()
	rec := storage.ClaimRecord{ClaimID: "C-1", CustomerID: "cust-1", TopicID: "0.0.1", Status: v1.StatusSubmitted}

	require.NoError(t, s.ReplaceClaim(ctx, rec, event("tx-1", v1.EventClaimSubmitted)))
	require.NoError(t, s.AppendEvent(ctx, storage.ClaimRecord{ClaimID: "C-1", Status: v1.StatusExtracted}, event("tx-2", v1.EventClaimExtracted)))

	rec.CustomerID = "cust-2"
	require.NoError(t, s.ReplaceClaim(ctx, rec, event("tx-3", v1.EventClaimSubmitted)))

	c, err := s.GetClaim(ctx, "C-1")
	require.NoError(t, err)
	require.Len(t, c.Events, 1)
	require.Equal(t, "tx-3", c.Events[0].TransactionID)
	require.Equal(t, "cust-2", c.CustomerID)
	require.Equal(t, v1.StatusSubmitted, c.Status)
}

func TestClaimStore_AppendKeepsHeader(t *testing.T) {
	ctx := context.Background()
	s := NewClaimStore()

	require.NoError(t, s.AppendEvent(ctx, storage.ClaimRecord{
		ClaimID: "C-1", CustomerID: "cust-1", TopicID: "0.0.7", Status: v1.StatusExtracted,
	}, event("tx-1", v1.EventClaimExtracted)))
	require.NoError(t, s.AppendEvent(ctx, storage.ClaimRecord{
		ClaimID: "C-1", CustomerID: "someone-else", TopicID: "0.0.8", Status: v1.StatusDecided,
	}, event("tx-2", v1.EventClaimDecision)))

	c, err := s.GetClaim(ctx, "C-1")
	require.NoError(t, err)
	require.Equal(t, "cust-1", c.CustomerID)
	require.Equal(t, "0.0.7", c.TopicID)
	require.Equal(t, v1.StatusDecided, c.Status)
	require.Len(t, c.Events, 2)
	require.NoError(t, c.Validate())
}

func TestClaimStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewClaimStore()
	require.NoError(t, s.ReplaceClaim(ctx, storage.ClaimRecord{ClaimID: "C-1", Status: v1.StatusSubmitted}, event("tx-1", v1.EventClaimSubmitted)))

	c, err := s.GetClaim(ctx, "C-1")
	require.NoError(t, err)
	c.Events = append(c.Events, event("tx-x", v1.EventClaimDecision))
	c.Status = v1.StatusDecided

	again, err := s.GetClaim(ctx, "C-1")
	require.NoError(t, err)
	require.Len(t, again.Events, 1)
	require.Equal(t, v1.StatusSubmitted, again.Status)
}

func TestClaimStore_ListByCustomerInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := NewClaimStore()

	for _, id := range []string{"C-3", "C-1", "C-2"} {
		require.NoError(t, s.ReplaceClaim(ctx, storage.ClaimRecord{
			ClaimID: id, CustomerID: "cust-1", Status: v1.StatusSubmitted,
		}, event("tx-"+id, v1.EventClaimSubmitted)))
	}
	require.NoError(t, s.ReplaceClaim(ctx, storage.ClaimRecord{
		ClaimID: "C-9", CustomerID: "cust-2", Status: v1.StatusSubmitted,
	}, event("tx-9", v1.EventClaimSubmitted)))
	// Replacing an existing claim keeps its position.
	require.NoError(t, s.ReplaceClaim(ctx, storage.ClaimRecord{
		ClaimID: "C-3", CustomerID: "cust-1", Status: v1.StatusSubmitted,
	}, event("tx-3b", v1.EventClaimSubmitted)))

	claims, err := s.ListClaimsByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Equal(t, []string{"C-3", "C-1", "C-2"}, []string{claims[0].ClaimID, claims[1].ClaimID, claims[2].ClaimID})

	none, err := s.ListClaimsByCustomer(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestClaimStore_RegisterTopic(t *testing.T) {
	ctx := context.Background()
	s := NewClaimStore()

	created, err := s.RegisterTopic(ctx, "0.0.1")
	require.NoError(t, err)
	require.True(t, created)

	created, err = s.RegisterTopic(ctx, "0.0.1")
	require.NoError(t, err)
	require.False(t, created)
}
