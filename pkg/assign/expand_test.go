package assign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandToEndpoints_EvenSplit(t *testing.T) {
	endpoints := []Endpoint{{Host: "h1"}, {Host: "h1"}, {Host: "h2"}}
	table, err := buildHostTable(endpoints)
	require.NoError(t, err)

	affinityParts := []affinityPartition{
		{orig: 10}, {orig: 11}, {orig: 12}, {orig: 13}, // local 0..3, host 0 (h1)
		{orig: 20}, // local 4, host 1 (h2)
	}
	hostToPartitions := [][]int{{0, 1, 2, 3}, {4}}

	result, err := expandToEndpoints(context.Background(), hostToPartitions, table, affinityParts, len(endpoints))
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11}, result[0])
	assert.Equal(t, []int{12, 13}, result[1])
	assert.Equal(t, []int{20}, result[2])
}

func TestExpandToEndpoints_UnevenSplitFrontLoads(t *testing.T) {
	endpoints := []Endpoint{{Host: "h1"}, {Host: "h1"}}
	table, err := buildHostTable(endpoints)
	require.NoError(t, err)

	affinityParts := []affinityPartition{{orig: 0}, {orig: 1}, {orig: 2}}
	hostToPartitions := [][]int{{0, 1, 2}}

	result, err := expandToEndpoints(context.Background(), hostToPartitions, table, affinityParts, len(endpoints))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, result[0])
	assert.Equal(t, []int{2}, result[1])
}
