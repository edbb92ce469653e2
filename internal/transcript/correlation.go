package transcript

import "codeterm/internal/stream"

// stampCorrelation applies a creating chunk's correlation fields to a new
// block.
func stampCorrelation(b Block, c stream.Chunk) Block {
	b.CorrelationID = c.CorrelationID
	b.ObservedCorrelationIDs = unionIDs(nil, c.ObservedCorrelationIDs)
	return b
}

// mergeCorrelation folds a chunk's correlation fields into a block the
// chunk is merging into. The correlation id is set by whichever chunk
// carried one first and never overwritten afterwards.
func mergeCorrelation(b Block, c stream.Chunk) Block {
	if b.CorrelationID == "" {
		b.CorrelationID = c.CorrelationID
	}
	b.ObservedCorrelationIDs = unionIDs(b.ObservedCorrelationIDs, c.ObservedCorrelationIDs)
	return b
}

// unionIDs appends ids not already present, preserving first-seen order.
// Always returns a fresh slice so callers never alias reducer state.
func unionIDs(existing, incoming []string) []string {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, id := range existing {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
