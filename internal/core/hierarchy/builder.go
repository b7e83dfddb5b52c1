package hierarchy

import (
	"fmt"
	"sort"
)

const noParent int32 = -1

// Graph is the referral forest for one computation. Nodes live in an arena and
// are addressed by int32 index, so traversals never recurse and never allocate
// per-node structs. A Graph is built per request and must not be shared.
type Graph struct {
	ids      []string
	index    map[string]int32
	children [][]int32
	parent   []int32

	affiliates []int32 // nodes with at least one direct referral, sorted by ID

	considered int
	kept       int
}

// Build turns raw referral events into a Graph. Events outside r are skipped.
// Input order does not matter and the input slice is not modified.
//
// A user referred by two different affiliates fails with *DuplicateReferralError;
// the same (affiliate, user) pair seen twice is treated as one edge.
func Build(events []ReferralEvent, r DateRange) (*Graph, error) {
	g := &Graph{
		index:      make(map[string]int32, len(events)),
		considered: len(events),
	}

	for i := range events {
		evt := &events[i]
		if !r.Contains(evt.OccurredAt) {
			continue
		}
		if evt.AffiliateID == "" || evt.ReferredUserID == "" {
			return nil, fmt.Errorf("%w: event %d has an empty affiliate or referred user id", ErrDataQuality, i)
		}
		if evt.AffiliateID == evt.ReferredUserID {
			return nil, &SelfReferralError{UserID: evt.AffiliateID}
		}

		g.kept++

		aff := g.intern(evt.AffiliateID)
		user := g.intern(evt.ReferredUserID)

		switch g.parent[user] {
		case noParent:
			g.parent[user] = aff
			g.children[aff] = append(g.children[aff], user)
		case aff:
			// repeated edge
		default:
			return nil, &DuplicateReferralError{
				ReferredUserID: evt.ReferredUserID,
				ExistingID:     g.ids[g.parent[user]],
				ConflictingID:  evt.AffiliateID,
			}
		}
	}

	for node, kids := range g.children {
		if len(kids) > 0 {
			g.affiliates = append(g.affiliates, int32(node))
		}
	}
	sort.Slice(g.affiliates, func(i, j int) bool {
		return g.ids[g.affiliates[i]] < g.ids[g.affiliates[j]]
	})

	return g, nil
}

func (g *Graph) intern(id string) int32 {
	if n, ok := g.index[id]; ok {
		return n
	}
	n := int32(len(g.ids))
	g.ids = append(g.ids, id)
	g.children = append(g.children, nil)
	g.parent = append(g.parent, noParent)
	g.index[id] = n
	return n
}

// Affiliates returns the IDs of every node with at least one direct referral, sorted.
func (g *Graph) Affiliates() []string {
	out := make([]string, len(g.affiliates))
	for i, n := range g.affiliates {
		out[i] = g.ids[n]
	}
	return out
}

// DirectReferrals returns the users directly referred by affiliateID, sorted.
func (g *Graph) DirectReferrals(affiliateID string) []string {
	n, ok := g.index[affiliateID]
	if !ok {
		return nil
	}
	out := make([]string, len(g.children[n]))
	for i, c := range g.children[n] {
		out[i] = g.ids[c]
	}
	sort.Strings(out)
	return out
}

// ReferredBy returns the affiliate that referred userID.
func (g *Graph) ReferredBy(userID string) (string, bool) {
	n, ok := g.index[userID]
	if !ok || g.parent[n] == noParent {
		return "", false
	}
	return g.ids[g.parent[n]], true
}

// Users returns every user that has a referrer in the graph, sorted.
func (g *Graph) Users() []string {
	out := make([]string, 0, len(g.ids))
	for n, p := range g.parent {
		if p != noParent {
			out = append(out, g.ids[n])
		}
	}
	sort.Strings(out)
	return out
}

// HasAffiliate reports whether id has at least one direct referral.
func (g *Graph) HasAffiliate(id string) bool {
	n, ok := g.index[id]
	return ok && len(g.children[n]) > 0
}

// EventsConsidered is the number of events passed to Build.
func (g *Graph) EventsConsidered() int { return g.considered }

// EventsKept is the number of events that survived the date filter.
func (g *Graph) EventsKept() int { return g.kept }
