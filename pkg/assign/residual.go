package assign

import "context"

// distributeResidual is the Residual Distributor: it folds the bare
// (affinity-less) partitions into the per-endpoint lists the Endpoint
// Expander produced, without ever removing a partition already placed
// there (spec.md §3, §4.5).
//
// Pass 1 ("levelling") tops up every endpoint below the current maximum
// size up to that maximum, in endpoint order. Pass 2 ("round-robin")
// hands out whatever bare partitions remain, cycling from endpoint 0.
// Pass 2 only runs once every endpoint has been levelled to the maximum,
// so it leaves endpoint sizes within one of each other; the maximum
// itself grows by ceil(r/len(result)) for the r partitions it hands out.
func distributeResidual(ctx context.Context, result [][]int, bare []int) ([][]int, error) {
	if len(bare) == 0 {
		return result, nil
	}
	if len(result) == 0 {
		return result, nil
	}

	maxSize := 0
	for _, list := range result {
		if len(list) > maxSize {
			maxSize = len(list)
		}
	}

	i := 0 // next unplaced bare partition

	// Pass 1: levelling.
	for e := range result {
		if i >= len(bare) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctxCancelErr("distributeResidual: levelling")
		default:
		}

		need := maxSize - len(result[e])
		remaining := len(bare) - i
		take := need
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		result[e] = append(result[e], bare[i:i+take]...)
		i += take
	}

	// Pass 2: round-robin over whatever remains.
	e := 0
	for ; i < len(bare); i++ {
		select {
		case <-ctx.Done():
			return nil, ctxCancelErr("distributeResidual: round-robin")
		default:
		}
		result[e%len(result)] = append(result[e%len(result)], bare[i])
		e++
	}

	return result, nil
}
