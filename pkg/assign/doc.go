// Package assign implements the locality-aware partition-to-endpoint
// assignment engine: given a set of partitions each annotated with
// preferred hosts, and a roster of database endpoints, it produces a
// balanced, host-affinity-respecting routing of partitions to endpoints.
//
// The entry point is Assign. Everything else in this package is an
// internal stage of its pipeline:
//
//	Affinity Index (host.go) -> Partition Splitter (split.go) ->
//	Bipartite Matcher (match.go) -> Endpoint Expander (expand.go) ->
//	Residual Distributor (residual.go)
package assign
