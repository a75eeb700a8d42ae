package assign

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_SeedTieBreakLowestHostIndex(t *testing.T) {
	// Partition prefers host 1 before host 0 in its own list; with equal
	// load, the seed must still pick the lower host index.
	parts := []affinityPartition{{hosts: []int{1, 0}, orig: 0}}
	m := newMatcher(parts, 2, nopLogger{})
	m.seed()
	assert.Equal(t, 0, m.matchFor[0])
	assert.Equal(t, 1, m.load[0])
}

func TestMatcher_BalanceBound(t *testing.T) {
	// 10 partitions, all preferring both of 3 hosts: a fully connected
	// graph should let rebalancing reach the target everywhere.
	var parts []affinityPartition
	for i := 0; i < 10; i++ {
		parts = append(parts, affinityPartition{hosts: []int{0, 1, 2}, orig: i})
	}
	m := newMatcher(parts, 3, nopLogger{})
	hostToPartitions, unmatched, _, err := m.run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unmatched)

	target := int(math.Ceil(10.0 / 3.0))
	for b, list := range hostToPartitions {
		assert.LessOrEqualf(t, len(list), target, "host %d load exceeds target", b)
	}
}

func TestMatcher_UnreachableOverloadStaysPut(t *testing.T) {
	// Mirrors S2: nothing prefers host 1, so no alternating path can ever
	// relieve host 0.
	var parts []affinityPartition
	for i := 0; i < 5; i++ {
		parts = append(parts, affinityPartition{hosts: []int{0}, orig: i})
	}
	m := newMatcher(parts, 2, nopLogger{})
	hostToPartitions, unmatched, _, err := m.run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unmatched)
	assert.Len(t, hostToPartitions[0], 5)
	assert.Empty(t, hostToPartitions[1])
}

func TestMatcher_EmptyEdgesBecomeUnmatched(t *testing.T) {
	parts := []affinityPartition{{hosts: nil, orig: 7}}
	m := newMatcher(parts, 2, nopLogger{})
	_, unmatched, _, err := m.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, unmatched)
}

func TestMatcher_ZeroHosts(t *testing.T) {
	parts := []affinityPartition{{hosts: []int{0}, orig: 0}}
	m := newMatcher(parts, 0, nopLogger{})
	hostToPartitions, unmatched, passes, err := m.run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, hostToPartitions)
	assert.Equal(t, []int{0}, unmatched)
	assert.Equal(t, 0, passes)
}

// TestMatcher_MultiHopAugmentingChain forces an augmenting path that
// can't resolve in one step: host 0 is overloaded, its dual-preference
// occupant (partition 0) can't move to host 1 directly because host 1 is
// already at target, so the path must continue through host 1's own
// occupant (partition 1) displacing it into host 2, which has room. Hand
// traced: seed leaves load 4/3/2 (target 3) across hosts 0/1/2, and the
// only way to relieve host 0 is the two-hop rewrite 0->1, 1->2.
func TestMatcher_MultiHopAugmentingChain(t *testing.T) {
	parts := []affinityPartition{
		{hosts: []int{0, 1}, orig: 0},
		{hosts: []int{1, 2}, orig: 1},
		{hosts: []int{0}, orig: 2},
		{hosts: []int{0}, orig: 3},
		{hosts: []int{0}, orig: 4},
		{hosts: []int{1}, orig: 5},
		{hosts: []int{1}, orig: 6},
		{hosts: []int{2}, orig: 7},
		{hosts: []int{2}, orig: 8},
	}
	m := newMatcher(parts, 3, nopLogger{})
	hostToPartitions, unmatched, _, err := m.run(context.Background())
	require.NoError(t, err)
	require.Empty(t, unmatched)

	assert.ElementsMatch(t, []int{2, 3, 4}, hostToPartitions[0])
	assert.ElementsMatch(t, []int{0, 5, 6}, hostToPartitions[1])
	assert.ElementsMatch(t, []int{1, 7, 8}, hostToPartitions[2])
}

func TestMatcher_CancelledDuringRebalance(t *testing.T) {
	var parts []affinityPartition
	for i := 0; i < 20; i++ {
		parts = append(parts, affinityPartition{hosts: []int{0}, orig: i})
	}
	m := newMatcher(parts, 2, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := m.run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
}
