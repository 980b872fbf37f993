package scout

import "sort"

// highMemoryCutoff is the memory-usage percentage above which a host is
// considered too full to satisfy a minimum-free-memory constraint. This
// is a coarse proxy for actual free memory, not an exact check.
const highMemoryCutoff = 80.0

// Free-host thresholds used by FilterFree.
const (
	freeCPUCutoff    = 20.0
	freeMemoryCutoff = 50.0
)

// Criteria are the optional constraints for host selection. Nil pointer
// fields mean "no constraint". MinMemoryGB is approximated by rejecting
// hosts above 80% memory usage rather than computing true free memory;
// callers should treat it as a coarse filter.
type Criteria struct {
	NeedGPU     bool
	MaxCPU      *float64
	MinMemoryGB *float64
}

// SelectBest filters candidates against the criteria and returns the
// lowest-scoring snapshot, or nil when nothing qualifies. The caller is
// expected to have restricted the batch to the relevant pool already
// (GPU-capable hosts when NeedGPU is set). Ties resolve to whichever
// candidate appeared first in the input batch.
func SelectBest(snapshots []Snapshot, criteria Criteria) *Snapshot {
	var candidates []Snapshot
	for _, snap := range snapshots {
		if !snap.Online {
			continue
		}
		if criteria.MaxCPU != nil {
			if snap.CPUUsage == nil || *snap.CPUUsage > *criteria.MaxCPU {
				continue
			}
		}
		if criteria.MinMemoryGB != nil {
			if snap.MemoryUsage == nil || *snap.MemoryUsage > highMemoryCutoff {
				continue
			}
		}
		if criteria.NeedGPU && snap.GPUUsage == nil {
			continue
		}
		candidates = append(candidates, snap)
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() < candidates[j].Score()
	})

	best := candidates[0]
	return &best
}

// FilterFree returns the subset of snapshots for hosts that are online
// and lightly loaded, preserving input order.
func FilterFree(snapshots []Snapshot) []Snapshot {
	var free []Snapshot
	for _, snap := range snapshots {
		if snap.IsFree() {
			free = append(free, snap)
		}
	}
	return free
}
