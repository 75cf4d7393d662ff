package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
)

func TestEventLogger_Log(t *testing.T) {
	l := NewEventLogger(&SequenceIDs{})
	l.now = func() time.Time {
		return time.Date(2026, 2, 8, 13, 4, 5, 987654321, time.FixedZone("CET", 3600))
	}

	evt, err := l.Log("0.0.7", &v1.ExtractedPayload{ClaimID: "C-1"})
	require.NoError(t, err)
	require.Equal(t, "2026-02-08T12:04:05Z", evt.Timestamp)
	require.Equal(t, v1.EventClaimExtracted, evt.EventType)
	require.Regexp(t, transactionPattern, evt.TransactionID)
}

func TestEventLogger_RequiresTopic(t *testing.T) {
	l := NewEventLogger(&SequenceIDs{})

	_, err := l.Log("", &v1.SubmittedPayload{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.ErrorContains(t, err, "topic_id is required")

	_, err = l.Log("0.0.1", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEventLogger_RapidTransactionIDsDiffer(t *testing.T) {
	l := NewEventLogger(RandomIDs{})
	frozen := time.Now()
	l.now = func() time.Time { return frozen }

	const n = 200
	seen := make(map[string]struct{}, n)
	collisions := 0
	for i := 0; i < n; i++ {
		evt, err := l.Log("0.0.1", &v1.SubmittedPayload{})
		require.NoError(t, err)
		if _, dup := seen[evt.TransactionID]; dup {
			collisions++
		}
		seen[evt.TransactionID] = struct{}{}
	}
	// Same nanosecond for every call; only the random part separates them.
	require.LessOrEqual(t, collisions, 1)
}
