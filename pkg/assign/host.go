package assign

import "fmt"

// hostTable is the Affinity Index: a dense, order-stable mapping from
// hostname to host index in [0, H), plus the reverse lookup from host
// index to the endpoints bound to it. Order stability matters —
// downstream tie-breaks (Phase 1's "lowest host index" rule) are only
// deterministic if two runs over the same endpoint slice produce the
// same indices.
type hostTable struct {
	index        map[string]int // hostname -> dense index
	names        []string       // index -> hostname; its length is the host count
	endpointsFor [][]int        // host index -> endpoint indices bound to it
}

// buildHostTable is the Affinity Index construction step. It fails with
// ErrInvalidInput only when endpoints is empty; every other input,
// including endpoints that repeat a host, is valid.
func buildHostTable(endpoints []Endpoint) (hostTable, error) {
	if len(endpoints) == 0 {
		return hostTable{}, fmt.Errorf("buildHostTable: empty endpoint roster: %w", ErrInvalidInput)
	}

	t := hostTable{index: make(map[string]int, len(endpoints))}
	for epIdx, ep := range endpoints {
		hIdx, ok := t.index[ep.Host]
		if !ok {
			hIdx = len(t.names)
			t.index[ep.Host] = hIdx
			t.names = append(t.names, ep.Host)
			t.endpointsFor = append(t.endpointsFor, nil)
		}
		t.endpointsFor[hIdx] = append(t.endpointsFor[hIdx], epIdx)
	}
	return t, nil
}

func (t hostTable) numHosts() int { return len(t.names) }

// lookup returns the dense host index for name, and whether it is in the
// roster at all. Hosts a partition prefers but that aren't in the
// endpoint roster are silently dropped by the caller (Partition
// Splitter) — this is the lookup that makes that possible.
func (t hostTable) lookup(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}
