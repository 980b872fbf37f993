// Package scout implements the resource-checking engine: it probes remote
// hosts over SSH for CPU, memory, load, and GPU metrics, caches the results,
// and ranks hosts against caller-supplied constraints.
package scout

import (
	"time"

	"github.com/rileyhilliard/scout/internal/scout/parsers"
)

// Snapshot is one point-in-time resource reading for a host. Metric fields
// are pointers or slices so that "absent" (command disabled, output
// unparseable, no GPU) is distinguishable from a legitimate zero value.
// A Snapshot is immutable once produced; the next check of the same host
// supersedes it rather than mutating it.
type Snapshot struct {
	Name      string    `json:"server"`
	Host      string    `json:"host"`
	HasGPU    bool      `json:"has_gpu"`
	CheckedAt time.Time `json:"checked_at"`
	Online    bool      `json:"online"`

	CPUUsage     *float64             `json:"cpu_usage,omitempty"`
	MemoryUsage  *float64             `json:"memory_usage,omitempty"`
	LoadAverage  *parsers.LoadAverage `json:"load_average,omitempty"`
	GPUUsage     []int                `json:"gpu_usage,omitempty"`
	GPUMemory    []parsers.GPUMemory  `json:"gpu_memory,omitempty"`
	GPUProcesses []parsers.GPUProcess `json:"gpu_processes,omitempty"`

	// Error is set when a mandatory metric failed and the host is offline.
	// GPUError is set when only the GPU stage failed; the host stays online.
	Error    string `json:"error,omitempty"`
	GPUError string `json:"gpu_error,omitempty"`
}

// Score computes the load score used for ranking; lower is better.
// Absent CPU or memory readings count as fully loaded (100) so that a
// host with unknown utilization never beats one with real data. The GPU
// term is the mean utilization across devices, 0 when no GPU data exists.
func (s *Snapshot) Score() float64 {
	cpu := 100.0
	if s.CPUUsage != nil {
		cpu = *s.CPUUsage
	}
	mem := 100.0
	if s.MemoryUsage != nil {
		mem = *s.MemoryUsage
	}
	return cpu + mem + s.MeanGPUUsage()
}

// MeanGPUUsage returns the average GPU utilization across all devices,
// or 0 when no GPU data is present.
func (s *Snapshot) MeanGPUUsage() float64 {
	if len(s.GPUUsage) == 0 {
		return 0
	}
	sum := 0
	for _, u := range s.GPUUsage {
		sum += u
	}
	return float64(sum) / float64(len(s.GPUUsage))
}

// IsFree reports whether the host counts as idle: online with CPU below
// 20% and memory below 50%.
func (s *Snapshot) IsFree() bool {
	return s.Online &&
		s.CPUUsage != nil && *s.CPUUsage < freeCPUCutoff &&
		s.MemoryUsage != nil && *s.MemoryUsage < freeMemoryCutoff
}
