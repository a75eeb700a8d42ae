package assign

import (
	"context"
	"fmt"
)

// matcher is the Bipartite Matcher: it owns every mutable structure used
// by one assignment run (matchFor, load, cursor, visited) and is
// discarded after run returns. Nothing here is safe for concurrent use,
// and nothing here escapes run's return value — see spec.md §5.
type matcher struct {
	edges [][]int // edges[a] = preferred host indices of affinity-partition a, in original order
	rev   [][]int // rev[b] = local affinity-partition indices that prefer host b, ascending, built once

	matchFor []int  // matchFor[a] = host index a is matched to, or -1
	load     []int  // load[b] = number of partitions currently matched to b
	cursor   []int  // cursor[b] = position within rev[b] for the current outer pass
	visited  []bool // visited[a] = true once a has been explored this outer pass

	target int
	log    Logger
}

// newMatcher builds the arena+index representation (forward edges from
// affinityParts, reverse edges derived from them) and seeds matchFor/load
// to their zero state. Everything is allocated eagerly here; there is no
// further growth once run starts (spec.md §9, "lazy initialization").
func newMatcher(affinityParts []affinityPartition, numHosts int, log Logger) *matcher {
	nA := len(affinityParts)
	m := &matcher{
		edges:    make([][]int, nA),
		rev:      make([][]int, numHosts),
		matchFor: make([]int, nA),
		load:     make([]int, numHosts),
		cursor:   make([]int, numHosts),
		visited:  make([]bool, nA),
	}
	for a, p := range affinityParts {
		m.edges[a] = p.hosts
		if numHosts > 0 {
			for _, b := range p.hosts {
				m.rev[b] = append(m.rev[b], a)
			}
		}
		m.matchFor[a] = -1
	}
	if numHosts > 0 {
		m.target = (nA + numHosts - 1) / numHosts
	}
	m.log = log
	return m
}

// run executes Phase 1 (seed) and Phase 2 (augmenting rebalance) and
// returns host_to_partitions: hostToPartitions[b] is the ascending list
// of local affinity-partition indices matched to host b. unmatched holds
// the local indices of any affinity partition the matcher could never
// place (empty edge set, or — in principle, though the invariant in
// spec.md §3 rules it out for a connected-enough graph — exhausted
// augmenting search); these are the partitions Phase 3 demotes to bare.
func (m *matcher) run(ctx context.Context) (hostToPartitions [][]int, unmatched []int, passes int, err error) {
	if len(m.load) == 0 {
		// nB == 0: nothing to match against. Every affinity partition is
		// unmatched and falls through to the bare stream.
		for a := range m.matchFor {
			unmatched = append(unmatched, a)
		}
		return nil, unmatched, 0, nil
	}

	m.seed()

	passes, err = m.rebalance(ctx)
	if err != nil {
		return nil, nil, passes, err
	}

	hostToPartitions = make([][]int, len(m.load))
	for a, b := range m.matchFor {
		if b == -1 {
			unmatched = append(unmatched, a)
			continue
		}
		hostToPartitions[b] = append(hostToPartitions[b], a)
	}
	return hostToPartitions, unmatched, passes, nil
}

// seed is Phase 1: assign every affinity partition to its least-loaded
// preferred host, ties broken by lowest host index, in ascending
// partition order.
func (m *matcher) seed() {
	for a, hosts := range m.edges {
		if len(hosts) == 0 {
			m.matchFor[a] = -1
			continue
		}
		best := hosts[0]
		for _, b := range hosts[1:] {
			if m.load[b] < m.load[best] || (m.load[b] == m.load[best] && b < best) {
				best = b
			}
		}
		m.matchFor[a] = best
		m.load[best]++
	}
}

// rebalance is Phase 2: repeatedly drain overloaded hosts via augmenting
// paths until a full outer pass makes no progress.
func (m *matcher) rebalance(ctx context.Context) (passes int, err error) {
	for {
		select {
		case <-ctx.Done():
			return passes, fmt.Errorf("rebalance: %w", ErrCancelled)
		default:
		}

		passes++
		changedThisPass := false

		for a := range m.visited {
			m.visited[a] = false
		}
		for b := range m.cursor {
			m.cursor[b] = 0
		}

		for _, b := range m.overloadedAscending() {
			for m.load[b] > m.target {
				a, ok := m.advanceCursor(b)
				if !ok {
					break
				}
				if m.findAugmentingPath(a) {
					changedThisPass = true
				}
			}
		}

		if !changedThisPass {
			return passes, nil
		}
	}
}

// overloadedAscending returns, in ascending host-index order, the hosts
// whose load exceeded target at the start of this outer pass (spec.md
// §4.3 step 1: "Let overloaded = { b : load[b] > target }").
func (m *matcher) overloadedAscending() []int {
	var overloaded []int
	for b, load := range m.load {
		if load > m.target {
			overloaded = append(overloaded, b)
		}
	}
	return overloaded
}

// advanceCursor walks rev[b] forward from cursor[b], skipping partitions
// already visited this pass or no longer matched to b, returning the
// first qualifying partition and advancing cursor[b] past it. It reports
// false once rev[b] is exhausted. This single helper implements both the
// outer pass's "pop next partition from rev[b]" step and
// find_augmenting_path's "advance cursor[b'] ... until reaching a
// candidate" step — they are the same operation on the same shared,
// monotonically-advancing per-host cursor.
func (m *matcher) advanceCursor(b int) (int, bool) {
	rb := m.rev[b]
	for m.cursor[b] < len(rb) {
		cand := rb[m.cursor[b]]
		m.cursor[b]++
		if m.visited[cand] || m.matchFor[cand] != b {
			continue
		}
		return cand, true
	}
	return 0, false
}

// reassign moves partition a onto newHost, keeping load in sync: the
// host a is leaving (if any) loses one, newHost gains one. Every match_for
// mutation in this package goes through here so load never drifts from
// "cardinality of partitions mapped to it" (spec.md §3).
func (m *matcher) reassign(a, newHost int) {
	if old := m.matchFor[a]; old != -1 {
		m.load[old]--
	}
	m.matchFor[a] = newHost
	m.load[newHost]++
}

// augFrame is one stack entry of find_augmenting_path's explicit work
// stack: partition a, and the index into edges[a] this frame delegated
// through to reach its child (-1 for a frame not yet explored).
type augFrame struct {
	a     int
	edgeI int
}

// findAugmentingPath is the DFS described in spec.md §4.3, with an
// explicit stack in place of recursion so wide/deep affinity graphs can't
// blow the call stack (spec.md §9). It tries, in order, every remaining
// preferred host of each node on the path — not just the first — so that
// giving up on a node is a genuine exhaustive failure and the balance
// invariant in spec.md §3 ("no alternating path exists") holds.
func (m *matcher) findAugmentingPath(start int) bool {
	stack := []augFrame{{start, -1}}
	pathFound := false

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pathFound {
			m.reassign(f.a, m.edges[f.a][f.edgeI])
			continue
		}

		if f.edgeI == -1 {
			m.visited[f.a] = true
			direct := -1
			for _, b := range m.edges[f.a] {
				if b != m.matchFor[f.a] && m.load[b] < m.target {
					direct = b
					break
				}
			}
			if direct != -1 {
				m.reassign(f.a, direct)
				pathFound = true
				continue
			}
		}

		edges := m.edges[f.a]
		for idx := f.edgeI + 1; idx < len(edges); idx++ {
			b := edges[idx]
			nextA, ok := m.advanceCursor(b)
			if !ok {
				continue
			}
			stack = append(stack, augFrame{f.a, idx})
			stack = append(stack, augFrame{nextA, -1})
			break
		}
	}

	return pathFound
}
