package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/claimledger-lab/claimledger/internal/core/storage/memory"
	storagemocks "github.com/claimledger-lab/claimledger/internal/mocks/storage"
)

func TestTopicAllocator_UniqueAcrossTrials(t *testing.T) {
	store := memory.NewClaimStore()
	a := NewTopicAllocator(RandomIDs{}, store)

	const trials = 10_000
	seen := make(map[string]struct{}, trials)
	collisions := 0
	for i := 0; i < trials; i++ {
		id, err := a.Allocate(context.Background())
		require.NoError(t, err)
		require.Regexp(t, topicPattern, id)
		if _, dup := seen[id]; dup {
			collisions++
		}
		seen[id] = struct{}{}
	}
	// Birthday bound for 10k draws from 10M is about 5 expected pairs.
	t.Logf("topic collisions: %d", collisions)
	require.Less(t, collisions, 25)
}

func TestTopicAllocator_CollisionIsAccepted(t *testing.T) {
	store := memory.NewClaimStore()
	_, err := store.RegisterTopic(context.Background(), "0.0.1")
	require.NoError(t, err)

	a := NewTopicAllocator(&SequenceIDs{}, store)
	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0.0.1", id)
}

func TestTopicAllocator_StoreError(t *testing.T) {
	store := storagemocks.NewClaimStore(t)
	store.EXPECT().
		RegisterTopic(mock.Anything, "0.0.1").
		Return(false, errors.New("connection refused")).
		Once()

	a := NewTopicAllocator(&SequenceIDs{}, store)
	_, err := a.Allocate(context.Background())
	require.ErrorContains(t, err, "connection refused")
}
