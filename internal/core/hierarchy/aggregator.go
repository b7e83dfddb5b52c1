package hierarchy

import (
	"context"
	"sync"

	"github.com/tierline-lab/tierline/internal/core/partition"
	"golang.org/x/sync/errgroup"
)

// Aggregate computes LevelStats for every affiliate with at least one direct referral.
//
// Each affiliate is walked breadth-first up to MaxLevel. A per-traversal visited set,
// seeded with the affiliate itself, makes every user count once at the shallowest
// level it is reachable from, so shared downstream users and referral cycles neither
// double count nor loop. Work is O(V+E) per affiliate.
func Aggregate(g *Graph, policy TotalPolicy) map[string]LevelStats {
	out := make(map[string]LevelStats, len(g.affiliates))
	t := newTraverser(g)
	for _, root := range g.affiliates {
		out[g.ids[root]] = t.stats(root, policy)
	}
	return out
}

// AggregateSharded produces the same result as Aggregate, splitting the affiliate set
// into shards that are walked concurrently. Every shard owns its own visited set; the
// graph itself is only read.
func AggregateSharded(ctx context.Context, g *Graph, policy TotalPolicy, shards int) (map[string]LevelStats, error) {
	if shards <= 1 || len(g.affiliates) < shards {
		return Aggregate(g, policy), nil
	}

	var (
		mu  sync.Mutex
		out = make(map[string]LevelStats, len(g.affiliates))
	)

	eg, ctx := errgroup.WithContext(ctx)
	for _, ids := range partition.Split(g.Affiliates(), shards) {
		eg.Go(func() error {
			t := newTraverser(g)
			local := make(map[string]LevelStats, len(ids))
			for i, id := range ids {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				local[id] = t.stats(g.index[id], policy)
			}

			mu.Lock()
			for id, s := range local {
				out[id] = s
			}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Walk visits every user in affiliateID's network with the level it is counted at,
// in breadth-first order. It reports false when affiliateID has no direct referrals.
func Walk(g *Graph, affiliateID string, fn func(userID string, level int)) bool {
	return NewWalker(g).Walk(affiliateID, fn)
}

// Walker walks many affiliate networks over one graph and reuses its visited set
// between walks. It is not safe for concurrent use.
type Walker struct {
	t *traverser
}

// NewWalker returns a Walker bound to g.
func NewWalker(g *Graph) *Walker {
	return &Walker{t: newTraverser(g)}
}

// Walk behaves like the package-level Walk.
func (w *Walker) Walk(affiliateID string, fn func(userID string, level int)) bool {
	g := w.t.g
	root, ok := g.index[affiliateID]
	if !ok || len(g.children[root]) == 0 {
		return false
	}
	w.t.walk(root, func(node int32, level int) {
		fn(g.ids[node], level)
	})
	return true
}

// traverser carries a reusable visited set. Marks are stamped with an epoch per walk
// so the slice never needs clearing between affiliates.
type traverser struct {
	g     *Graph
	marks []uint32
	epoch uint32

	frontier []int32
	next     []int32
}

func newTraverser(g *Graph) *traverser {
	return &traverser{
		g:     g,
		marks: make([]uint32, len(g.ids)),
	}
}

func (t *traverser) stats(root int32, policy TotalPolicy) LevelStats {
	s := LevelStats{AffiliateID: t.g.ids[root]}
	t.walk(root, func(_ int32, level int) {
		s.Levels[level-1]++
	})
	s.Total = policy.Total(s.Levels)
	return s
}

func (t *traverser) walk(root int32, visit func(node int32, level int)) {
	t.epoch++
	t.marks[root] = t.epoch

	t.frontier = append(t.frontier[:0], root)
	for level := 1; level <= MaxLevel && len(t.frontier) > 0; level++ {
		t.next = t.next[:0]
		for _, n := range t.frontier {
			for _, c := range t.g.children[n] {
				if t.marks[c] == t.epoch {
					continue
				}
				t.marks[c] = t.epoch
				t.next = append(t.next, c)
				visit(c, level)
			}
		}
		t.frontier, t.next = t.next, t.frontier
	}
}
