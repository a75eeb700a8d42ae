package assign

// affinityPartition is one entry of the affinity-bearing stream: its
// preferred hosts translated to dense host indices (unknown hosts
// silently dropped, possibly leaving this empty — see splitPartitions),
// and the original partition index it came from.
type affinityPartition struct {
	hosts []int // preferred host indices, roster-known only, order preserved
	orig  int   // index into the original affinities slice
}

// splitPartitions is the Partition Splitter: it separates partitions with
// at least one preferred host from those with none, translating
// hostnames to the Affinity Index's dense host indices along the way.
//
// A partition whose preferred list is non-empty but entirely outside the
// endpoint roster keeps its affinity classification (hosts ends up
// empty) rather than being reclassified as bare — see SPEC_FULL.md's
// resolution of this open question. The Bipartite Matcher reports such a
// partition as unmatched, and Assign then moves it to the bare stream.
func splitPartitions(affinities [][]string, hosts hostTable) (affinityParts []affinityPartition, bare []int) {
	for orig, prefs := range affinities {
		if len(prefs) == 0 {
			bare = append(bare, orig)
			continue
		}

		known := make([]int, 0, len(prefs))
		seen := make(map[int]struct{}, len(prefs))
		for _, name := range prefs {
			hIdx, ok := hosts.lookup(name)
			if !ok {
				continue
			}
			if _, dup := seen[hIdx]; dup {
				continue
			}
			seen[hIdx] = struct{}{}
			known = append(known, hIdx)
		}

		affinityParts = append(affinityParts, affinityPartition{hosts: known, orig: orig})
	}
	return affinityParts, bare
}
