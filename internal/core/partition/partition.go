package partition

import "hash/fnv"

// For returns the shard for an affiliate ID out of n shards.
// Stable and deterministic: same affiliateID always maps to the same shard for a given n.
// Uses FNV-32a (stdlib, fast, well-distributed).
func For(affiliateID string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(affiliateID))
	return int(h.Sum32() % uint32(n))
}

// Split groups ids into n shards. Input order is preserved inside each shard.
// Empty shards are dropped so callers never spawn idle workers.
func Split(ids []string, n int) [][]string {
	if n <= 1 {
		if len(ids) == 0 {
			return nil
		}
		return [][]string{ids}
	}

	buckets := make([][]string, n)
	for _, id := range ids {
		s := For(id, n)
		buckets[s] = append(buckets[s], id)
	}

	out := buckets[:0]
	for _, b := range buckets {
		if len(b) > 0 {
			out = append(out, b)
		}
	}
	return out
}
