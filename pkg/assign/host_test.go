package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHostTable_EmptyEndpoints(t *testing.T) {
	_, err := buildHostTable(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildHostTable_OrderStable(t *testing.T) {
	endpoints := []Endpoint{
		{Host: "b", Port: 1},
		{Host: "a", Port: 1},
		{Host: "b", Port: 2},
	}
	table, err := buildHostTable(endpoints)
	require.NoError(t, err)

	assert.Equal(t, 2, table.numHosts())

	bIdx, ok := table.lookup("b")
	require.True(t, ok)
	assert.Equal(t, 0, bIdx, "b appears first in endpoint order, so gets index 0")

	aIdx, ok := table.lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1, aIdx)

	assert.Equal(t, []int{0, 2}, table.endpointsFor[bIdx])
	assert.Equal(t, []int{1}, table.endpointsFor[aIdx])

	_, ok = table.lookup("c")
	assert.False(t, ok)
}
