// Package parsers converts raw remote command output into typed metrics.
//
// Every parser is permissive: malformed or empty input yields an absent
// value (a nil pointer or nil slice), never an error. Remote hosts run a
// zoo of OS versions and locales, so a line that fails to parse is skipped
// rather than failing the whole reading.
package parsers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// LoadAverage holds the 1, 5, and 15 minute load averages from uptime.
type LoadAverage struct {
	One     float64 `json:"one"`
	Five    float64 `json:"five"`
	Fifteen float64 `json:"fifteen"`
}

// GPUMemory holds memory usage for a single GPU device, in megabytes.
type GPUMemory struct {
	UsedMB      int     `json:"used_mb"`
	TotalMB     int     `json:"total_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// GPUProcess describes one process occupying GPU memory. Fields are kept
// as strings because nvidia-smi occasionally emits placeholders like
// "[Not Found]" for the name or memory columns.
type GPUProcess struct {
	PID      string `json:"pid"`
	Name     string `json:"name"`
	MemoryMB string `json:"memory_mb"`
}

var loadSeparators = regexp.MustCompile(`[,\s]+`)

// ParsePercent parses a percentage value such as "12.5" or "12.5%".
// Returns nil for empty or non-numeric input.
func ParsePercent(output string) *float64 {
	s := strings.TrimSuffix(strings.TrimSpace(output), "%")
	if s == "" {
		return nil
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}

// ParseLoadAverage parses load averages from uptime output. Both
// comma-separated ("0.00, 0.01, 0.05") and space-separated
// ("0.00 0.01 0.05") forms are accepted; at least three numeric
// tokens are required.
func ParseLoadAverage(output string) *LoadAverage {
	s := strings.TrimSpace(output)
	if s == "" {
		return nil
	}

	tokens := loadSeparators.Split(s, -1)
	if len(tokens) < 3 {
		return nil
	}

	var vals [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil
		}
		vals[i] = v
	}

	return &LoadAverage{One: vals[0], Five: vals[1], Fifteen: vals[2]}
}

// ParseGPUUsage parses per-device GPU utilization from nvidia-smi output,
// one integer percentage per line. Lines that fail to parse are skipped.
// Returns nil when the output carries the "not found" marker emitted by
// hosts without nvidia-smi, or when no line parsed.
func ParseGPUUsage(output string) []int {
	if noGPUData(output) {
		return nil
	}

	var usages []int
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		usages = append(usages, v)
	}
	return usages
}

// ParseGPUMemory parses per-device GPU memory from nvidia-smi output,
// one "used, total" pair in megabytes per line. Malformed lines are
// skipped. UsedPercent is rounded to one decimal place, and is 0 when
// the reported total is 0.
func ParseGPUMemory(output string) []GPUMemory {
	if noGPUData(output) {
		return nil
	}

	var memories []GPUMemory
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}

		used, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		total, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}

		var percent float64
		if total > 0 {
			percent = math.Round(float64(used)/float64(total)*1000) / 10
		}

		memories = append(memories, GPUMemory{
			UsedMB:      used,
			TotalMB:     total,
			UsedPercent: percent,
		})
	}
	return memories
}

// ParseGPUProcesses parses the GPU process list from nvidia-smi output,
// one "pid, name, memoryMB" triple per line. Lines with fewer than three
// fields are skipped. Unlike the other GPU parsers this one only treats a
// shell "command not found" marker as the no-GPU signal, because process
// fields legitimately carry placeholders like "[Not Found]".
func ParseGPUProcesses(output string) []GPUProcess {
	if noGPUTooling(output) {
		return nil
	}

	var processes []GPUProcess
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}

		processes = append(processes, GPUProcess{
			PID:      strings.TrimSpace(parts[0]),
			Name:     strings.TrimSpace(parts[1]),
			MemoryMB: strings.TrimSpace(parts[2]),
		})
	}
	return processes
}

// noGPUData reports whether the output indicates the host has no usable
// GPU tooling: empty output, or the "not found" shell marker produced
// when nvidia-smi is missing.
func noGPUData(output string) bool {
	s := strings.TrimSpace(output)
	return s == "" || strings.Contains(strings.ToLower(s), "not found")
}

// noGPUTooling is the stricter marker check used for the process list.
// It matches the bash/zsh "command not found" wording and the sh/dash
// "nvidia-smi: not found" form, but not bare "not found" substrings.
func noGPUTooling(output string) bool {
	s := strings.ToLower(strings.TrimSpace(output))
	return s == "" ||
		strings.Contains(s, "command not found") ||
		strings.Contains(s, "nvidia-smi: not found")
}
