package assign

import "context"

// expandToEndpoints is the Endpoint Expander: it takes the matcher's
// host_to_partitions output and spreads each host's partitions evenly
// across the endpoints bound to that host, translating local
// affinity-partition indices back to original partition indices.
//
// Partitions are sliced in matcher order (ascending local affinity index)
// and handed out endpoint-by-endpoint within a host, so endpoint j gets
// n_h/k_h partitions plus one extra if j is among the first n_h mod k_h
// endpoints — spec.md §4.4.
func expandToEndpoints(ctx context.Context, hostToPartitions [][]int, hosts hostTable, affinityParts []affinityPartition, numEndpoints int) ([][]int, error) {
	result := make([][]int, numEndpoints)
	for h, localIdxs := range hostToPartitions {
		if len(localIdxs) == 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctxCancelErr("expandToEndpoints")
		default:
		}

		endpoints := hosts.endpointsFor[h]
		k := len(endpoints)
		n := len(localIdxs)
		base := n / k
		extra := n % k

		offset := 0
		for j, epIdx := range endpoints {
			take := base
			if j < extra {
				take++
			}
			for _, local := range localIdxs[offset : offset+take] {
				result[epIdx] = append(result[epIdx], affinityParts[local].orig)
			}
			offset += take
		}
	}
	return result, nil
}
