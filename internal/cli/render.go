package cli

import (
	"fmt"

	"github.com/rileyhilliard/scout/internal/scout"
	"github.com/rileyhilliard/scout/internal/scout/parsers"
	"github.com/rileyhilliard/scout/internal/ui"
)

// renderSnapshotTable formats a batch of snapshots as a table. GPU columns
// are included when withGPU is set (the gpu command, or fleets that have
// GPU hosts worth showing).
func renderSnapshotTable(snapshots []scout.Snapshot, withGPU bool) string {
	headers := []string{"", "SERVER", "STATUS", "CPU", "MEMORY", "LOAD"}
	if withGPU {
		headers = append(headers, "GPU", "GPU MEM")
	}

	rows := make([][]string, 0, len(snapshots))
	for _, snap := range snapshots {
		row := []string{
			statusSymbol(snap),
			snap.Name,
			statusText(snap),
			formatPercent(snap.CPUUsage),
			formatPercent(snap.MemoryUsage),
			formatLoad(snap.LoadAverage),
		}
		if withGPU {
			row = append(row, formatGPUUsage(snap), formatGPUMemory(snap))
		}
		rows = append(rows, row)
	}

	return ui.RenderTable(headers, rows)
}

func statusSymbol(snap scout.Snapshot) string {
	switch {
	case !snap.Online:
		return ui.Error(ui.SymbolOffline)
	case snap.GPUError != "":
		return ui.Warning(ui.SymbolWarning)
	default:
		return ui.Success(ui.SymbolOnline)
	}
}

func statusText(snap scout.Snapshot) string {
	if !snap.Online {
		return "offline"
	}
	return "online"
}

func formatPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func formatLoad(load *parsers.LoadAverage) string {
	if load == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f, %.2f, %.2f", load.One, load.Five, load.Fifteen)
}

// formatGPUUsage shows a single device's utilization directly, or the
// average across devices for multi-GPU hosts.
func formatGPUUsage(snap scout.Snapshot) string {
	if snap.GPUUsage == nil {
		return "No GPU"
	}
	if len(snap.GPUUsage) == 1 {
		return fmt.Sprintf("%d%%", snap.GPUUsage[0])
	}
	return fmt.Sprintf("%.0f%% (avg of %d)", snap.MeanGPUUsage(), len(snap.GPUUsage))
}

// formatGPUMemory aggregates used/total across all devices.
func formatGPUMemory(snap scout.Snapshot) string {
	if len(snap.GPUMemory) == 0 {
		return "No GPU"
	}

	var used, total int
	for _, mem := range snap.GPUMemory {
		used += mem.UsedMB
		total += mem.TotalMB
	}
	if total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%% (%d/%d MB)", float64(used)/float64(total)*100, used, total)
}

// renderGPUProcesses lists the processes holding GPU memory, one per line.
func renderGPUProcesses(snap scout.Snapshot) string {
	if len(snap.GPUProcesses) == 0 {
		return ""
	}

	out := "\nGPU processes:\n"
	for _, proc := range snap.GPUProcesses {
		out += fmt.Sprintf("  %s  %s  %s MB\n", proc.PID, proc.Name, proc.MemoryMB)
	}
	return out
}

// renderErrors lists per-host errors below the table so the table itself
// stays scannable.
func renderErrors(snapshots []scout.Snapshot) string {
	var out string
	for _, snap := range snapshots {
		if snap.Error != "" {
			out += fmt.Sprintf("%s %s: %s\n", ui.Error(ui.SymbolOffline), snap.Name, snap.Error)
		}
		if snap.GPUError != "" {
			out += fmt.Sprintf("%s %s: gpu: %s\n", ui.Warning(ui.SymbolWarning), snap.Name, snap.GPUError)
		}
	}
	return out
}
