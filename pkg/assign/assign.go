package assign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/justinegdelta/spark-vector/pkg/logger"
)

// Logger is the narrow sink Assign logs through. pkg/logger.Logger
// satisfies this; callers that don't want logs pass logger.NewNop(), and
// callers that pass nothing get a no-op logger from defaultOptions.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

// Option configures a single Assign call.
type Option func(*options)

type options struct {
	log   Logger
	stats *Stats
}

func defaultOptions() *options {
	return &options{log: nopLogger{}}
}

// WithLogger attaches a Logger that receives the debug/info lines
// described in spec.md §6: partition counts, Phase 2 iteration counts,
// and the post-verification remote-placement count.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithStats points Assign at a Stats value to fill in before it returns,
// alongside the normal Result. Left nil (the default), Assign does no
// extra bookkeeping beyond what it already logs.
func WithStats(s *Stats) Option {
	return func(o *options) {
		o.stats = s
	}
}

// Assign is the core's single operation (spec.md §6): it routes each
// partition in affinities to one index of endpoints, balancing load
// across hosts while honoring host affinity whenever a feasible
// assignment exists.
//
// affinities[i] is the ordered, possibly-empty set of hostnames partition
// i prefers. endpoints must be non-empty. The returned Result has the
// same length as endpoints; Result[i] is the ordered list of original
// partition indices routed to endpoints[i].
//
// Assign is synchronous and owns no state beyond this call: it is safe to
// call repeatedly and concurrently from different goroutines as long as
// no two concurrent calls are given the same *Stats through WithStats.
// Identical inputs, including
// identical endpoint order, always produce a bitwise identical Result.
//
// Pass WithStats to also collect the run's Stats; by default Assign only
// logs those counts and discards them.
func Assign(ctx context.Context, affinities [][]string, endpoints []Endpoint, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	runID := uuid.NewString()
	log := o.log

	select {
	case <-ctx.Done():
		return nil, ctxCancelErr("Assign")
	default:
	}

	hosts, err := buildHostTable(endpoints)
	if err != nil {
		return nil, err
	}

	affinityParts, bare := splitPartitions(affinities, hosts)
	bareCount := len(bare)
	log.Debug("assign: split partitions",
		"run_id", runID,
		"partitions", len(affinities),
		"affinity", len(affinityParts),
		"bare", bareCount,
		"hosts", hosts.numHosts(),
	)

	m := newMatcher(affinityParts, hosts.numHosts(), log)
	hostToPartitions, unmatched, passes, err := m.run(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("assign: rebalance complete", "run_id", runID, "passes", passes)

	// Partitions the matcher never placed (empty preferred set after
	// stripping unknown hosts, or genuinely unplaceable) join the bare
	// stream for Residual Distribution rather than vanishing.
	for _, a := range unmatched {
		bare = append(bare, affinityParts[a].orig)
	}

	result, err := expandToEndpoints(ctx, hostToPartitions, hosts, affinityParts, len(endpoints))
	if err != nil {
		return nil, err
	}

	result, err = distributeResidual(ctx, result, bare)
	if err != nil {
		return nil, err
	}

	remote := verifyMatching(result, endpoints, affinities)
	log.Info("assign: verification complete",
		"run_id", runID,
		"remote_placements", remote,
		"total_partitions", len(affinities),
	)
	log.Debug("assign: final result", "run_id", runID, "result", logger.Dump(result))

	if o.stats != nil {
		*o.stats = Stats{
			Partitions:       len(affinities),
			AffinityCount:    len(affinityParts),
			BareCount:        bareCount,
			Hosts:            hosts.numHosts(),
			RebalancePasses:  passes,
			RemotePlacements: remote,
		}
	}

	if total := countPlaced(result); total != len(affinities) {
		return nil, fmt.Errorf("assign: placed %d of %d partitions: %w", total, len(affinities), ErrInternal)
	}

	return result, nil
}

func countPlaced(result Result) int {
	n := 0
	for _, list := range result {
		n += len(list)
	}
	return n
}
