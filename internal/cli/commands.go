package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/scout/internal/errors"
	"github.com/rileyhilliard/scout/internal/scout"
)

// Command-specific flags
var (
	findGPUFlag       bool
	findMaxCPUFlag    float64
	findMinMemoryFlag float64
)

// allCmd checks every configured server.
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Check resource usage on all servers",
	Long: `Probe every configured server for CPU, memory, and load, plus GPU
utilization on GPU-capable hosts. Unreachable servers are reported as
offline without blocking the rest of the fleet.

Examples:
  scout all
  scout all --no-cache
  scout all --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		snapshots := checker.CheckAll(context.Background(), !noCacheFlag)

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, snapshots)
		}

		withGPU := len(cfg.GPUHosts()) > 0
		fmt.Println(renderSnapshotTable(snapshots, withGPU))
		if errs := renderErrors(snapshots); errs != "" {
			fmt.Print(errs)
		}
		return nil
	},
}

// gpuCmd checks only the GPU-capable servers.
var gpuCmd = &cobra.Command{
	Use:   "gpu",
	Short: "Check GPU usage on GPU-capable servers",
	Long: `Probe only the servers marked has_gpu for utilization, GPU memory,
and the processes currently holding GPU memory.

Examples:
  scout gpu
  scout gpu --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.GPUHosts()) == 0 {
			return errors.New(errors.ErrConfig,
				"No GPU servers configured",
				"Mark servers with 'has_gpu: true' in servers.yaml")
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		snapshots := checker.CheckGPU(context.Background(), !noCacheFlag)

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, snapshots)
		}

		fmt.Println(renderSnapshotTable(snapshots, true))
		if errs := renderErrors(snapshots); errs != "" {
			fmt.Print(errs)
		}
		return nil
	},
}

// hostCmd checks a single server by name.
var hostCmd = &cobra.Command{
	Use:   "host [name]",
	Short: "Check resource usage on one server",
	Long: `Probe a single configured server by name.

Examples:
  scout host orca01
  scout host orca01 --no-cache --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		server, ok := cfg.Host(args[0])
		if !ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown server: %s", args[0]),
				"Run 'scout all' to list configured servers")
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		snap := checker.CheckOne(context.Background(), server, !noCacheFlag)

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, snap)
		}

		fmt.Println(renderSnapshotTable([]scout.Snapshot{snap}, server.HasGPU))
		if procs := renderGPUProcesses(snap); procs != "" {
			fmt.Print(procs)
		}
		if errs := renderErrors([]scout.Snapshot{snap}); errs != "" {
			fmt.Print(errs)
		}
		return nil
	},
}

// findCmd selects the best server for a new job.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find the best server for a new job",
	Long: `Check the fleet and pick the least-loaded server that satisfies the
given constraints. The score is CPU + memory + mean GPU utilization;
lower wins.

The --min-memory filter is approximate: it rejects servers above 80%
memory usage rather than computing true free memory.

Examples:
  scout find
  scout find --gpu
  scout find --max-cpu 50 --min-memory 8`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		criteria := scout.Criteria{NeedGPU: findGPUFlag}
		if cmd.Flags().Changed("max-cpu") {
			criteria.MaxCPU = &findMaxCPUFlag
		}
		if cmd.Flags().Changed("min-memory") {
			criteria.MinMemoryGB = &findMinMemoryFlag
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		best := checker.FindBest(context.Background(), criteria, !noCacheFlag)

		if jsonFlag {
			if best == nil {
				return WriteJSONError(os.Stdout, ErrCodeNoMatch,
					"No server satisfies the given constraints",
					"Relax --max-cpu or --min-memory, or try again later")
			}
			return WriteJSONSuccess(os.Stdout, best)
		}

		if best == nil {
			fmt.Println("No server satisfies the given constraints.")
			return nil
		}

		fmt.Printf("Best server: %s (score %.1f)\n\n", best.Name, best.Score())
		fmt.Println(renderSnapshotTable([]scout.Snapshot{*best}, best.HasGPU))
		return nil
	},
}

// freeCmd lists servers that are idle enough to grab.
var freeCmd = &cobra.Command{
	Use:   "free",
	Short: "List idle servers",
	Long: `Check the fleet and list servers with CPU below 20% and memory below
50%, preserving config order.

Examples:
  scout free
  scout free --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		snapshots := checker.CheckAll(context.Background(), !noCacheFlag)
		free := scout.FilterFree(snapshots)

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, free)
		}

		if len(free) == 0 {
			fmt.Println("No idle servers right now.")
			return nil
		}
		fmt.Println(renderSnapshotTable(free, len(cfg.GPUHosts()) > 0))
		return nil
	},
}

// refreshCmd drops the snapshot cache and re-checks the fleet.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop cached snapshots and re-check all servers",
	Long: `Invalidate every cached snapshot and probe the whole fleet fresh.

Examples:
  scout refresh
  scout refresh --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		checker, cleanup := newEngine(cfg)
		defer cleanup()

		checker.InvalidateCache()
		snapshots := checker.CheckAll(context.Background(), false)

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, snapshots)
		}

		fmt.Println(renderSnapshotTable(snapshots, len(cfg.GPUHosts()) > 0))
		if errs := renderErrors(snapshots); errs != "" {
			fmt.Print(errs)
		}
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findGPUFlag, "gpu", false, "require a GPU-capable server")
	findCmd.Flags().Float64Var(&findMaxCPUFlag, "max-cpu", 0, "maximum CPU usage percentage")
	findCmd.Flags().Float64Var(&findMinMemoryFlag, "min-memory", 0, "minimum free memory in GB (approximate)")

	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(gpuCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(freeCmd)
	rootCmd.AddCommand(refreshCmd)
}
