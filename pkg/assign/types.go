package assign

// Endpoint identifies one database ingestion channel: a (host, port)
// pair. Several endpoints may share a host; Host is what the Bipartite
// Matcher and Affinity Index key on.
type Endpoint struct {
	Host string
	Port int
}

// Result is the output of Assign: element i is the ordered list of
// original partition indices routed to endpoints[i]. Result has the same
// length as the endpoints slice Assign was called with.
type Result [][]int

// Stats summarizes one Assign run. It is not part of the core's decision
// logic — it is a side channel, populated after the fact, that a caller
// opts into with assign.WithStats.
type Stats struct {
	Partitions       int // len(affinities)
	AffinityCount    int // partitions with at least one preferred host
	BareCount        int // partitions with no preferred host
	Hosts            int // distinct hosts in the endpoint roster
	RebalancePasses  int // outer passes Phase 2 ran before settling
	RemotePlacements int // partitions landed on a non-preferred host (verifyMatching)
}
