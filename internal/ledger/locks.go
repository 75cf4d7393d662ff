package ledger

import (
	"sync"

	"github.com/claimledger-lab/claimledger/internal/core/partition"
)

// keyLocks hands out one mutex per claim_id. Entries are reference counted
// and dropped once no caller holds or waits on them. The table is striped
// so unrelated claims rarely contend on the bookkeeping lock.
type keyLocks struct {
	shards [partition.Count]lockShard
}

type lockShard struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	kl := &keyLocks{}
	for i := range kl.shards {
		kl.shards[i].locks = make(map[string]*keyLock)
	}
	return kl
}

// lock blocks until the caller owns key and returns the matching unlock.
func (kl *keyLocks) lock(key string) func() {
	shard := &kl.shards[partition.For(key)]

	shard.mu.Lock()
	l, ok := shard.locks[key]
	if !ok {
		l = &keyLock{}
		shard.locks[key] = l
	}
	l.refs++
	shard.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		shard.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(shard.locks, key)
		}
		shard.mu.Unlock()
	}
}
