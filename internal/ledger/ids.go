package ledger

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// maxRandomSuffix bounds the numeric part of topic and transaction ids.
const maxRandomSuffix = 10_000_000

// IDGenerator produces the identifiers the ledger hands out.
type IDGenerator interface {
	ClaimID() string
	TopicID() string
	TransactionID(at time.Time) string
}

// RandomIDs is the production generator. Topic ids carry no collision check;
// duplicates are rare at this scale and are logged by the allocator.
type RandomIDs struct{}

func (RandomIDs) ClaimID() string {
	id := uuid.New()
	return "C-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

func (RandomIDs) TopicID() string {
	return fmt.Sprintf("0.0.%d", rand.IntN(maxRandomSuffix))
}

func (RandomIDs) TransactionID(at time.Time) string {
	return fmt.Sprintf("0.0.%d@%d", rand.IntN(maxRandomSuffix), at.UnixNano())
}

// SequenceIDs is a deterministic generator for tests.
type SequenceIDs struct {
	claims atomic.Int64
	topics atomic.Int64
	txs    atomic.Int64
}

func (s *SequenceIDs) ClaimID() string {
	return fmt.Sprintf("C-%08d", s.claims.Add(1))
}

func (s *SequenceIDs) TopicID() string {
	return fmt.Sprintf("0.0.%d", s.topics.Add(1))
}

func (s *SequenceIDs) TransactionID(at time.Time) string {
	return fmt.Sprintf("0.0.%d@%d", s.txs.Add(1), at.UnixNano())
}
