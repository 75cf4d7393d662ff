package partition

import "hash/fnv"

// Count is the fixed number of lock shards.
const Count = 256

// For returns the FNV-32a shard for a key. The same key always maps to the
// same shard.
func For(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % Count)
}
