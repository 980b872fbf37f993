package scout

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rileyhilliard/scout/internal/config"
	"github.com/rileyhilliard/scout/internal/logger"
	"github.com/rileyhilliard/scout/internal/scout/parsers"
)

// Checker orchestrates resource checks across the fleet. Per-host checks
// fan out over a bounded worker pool; one host being slow or dead never
// blocks the others, and batch results always come back in input order.
type Checker struct {
	cfg    *config.Config
	runner Runner
	cache  *Cache
	sem    *semaphore.Weighted
	log    logger.Logger
}

// NewChecker builds a Checker over the given runner and cache. Worker
// capacity comes from the configuration; values below one fall back to
// the default.
func NewChecker(cfg *config.Config, runner Runner, cache *Cache, log logger.Logger) *Checker {
	workers := cfg.Checker.Workers
	if workers < 1 {
		workers = config.DefaultConfig().Checker.Workers
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Checker{
		cfg:    cfg,
		runner: runner,
		cache:  cache,
		sem:    semaphore.NewWeighted(int64(workers)),
		log:    log,
	}
}

// CheckOne probes a single host, serving from the cache when useCache is
// true and a fresh snapshot exists. The result, including failures, is
// written back to the cache so repeated calls within the TTL window do
// not hammer an unreachable host.
func (c *Checker) CheckOne(ctx context.Context, server config.Server, useCache bool) Snapshot {
	if useCache {
		if snap, ok := c.cache.Get(server.Name); ok {
			c.log.Debug("cache hit for %s", server.Name)
			return snap
		}
	}

	snap := c.probe(ctx, server)
	c.cache.Put(server.Name, snap)
	return snap
}

// CheckMany probes all given hosts concurrently, bounded by the worker
// capacity. The returned slice has one snapshot per requested host, in
// the same order as the input, regardless of completion order.
func (c *Checker) CheckMany(ctx context.Context, servers []config.Server, useCache bool) []Snapshot {
	results := make([]Snapshot, len(servers))
	var wg sync.WaitGroup

	for i, server := range servers {
		wg.Add(1)
		go func(i int, server config.Server) {
			defer wg.Done()

			if err := c.sem.Acquire(ctx, 1); err != nil {
				results[i] = Snapshot{
					Name:      server.Name,
					Host:      server.Host,
					HasGPU:    server.HasGPU,
					CheckedAt: time.Now(),
					Error:     err.Error(),
				}
				return
			}
			defer c.sem.Release(1)

			results[i] = c.CheckOne(ctx, server, useCache)
		}(i, server)
	}

	wg.Wait()
	return results
}

// CheckAll probes every configured host.
func (c *Checker) CheckAll(ctx context.Context, useCache bool) []Snapshot {
	return c.CheckMany(ctx, c.cfg.Hosts(), useCache)
}

// CheckGPU probes only the GPU-capable hosts.
func (c *Checker) CheckGPU(ctx context.Context, useCache bool) []Snapshot {
	return c.CheckMany(ctx, c.cfg.GPUHosts(), useCache)
}

// InvalidateCache drops all cached snapshots, forcing the next check of
// every host to probe it fresh.
func (c *Checker) InvalidateCache() {
	c.cache.InvalidateAll()
}

// FindBest checks the relevant candidate pool (GPU subset when the
// criteria require a GPU, the whole fleet otherwise) and returns the
// best-scoring host, or nil when no host satisfies the criteria.
func (c *Checker) FindBest(ctx context.Context, criteria Criteria, useCache bool) *Snapshot {
	servers := c.cfg.Hosts()
	if criteria.NeedGPU {
		servers = c.cfg.GPUHosts()
	}

	snapshots := c.CheckMany(ctx, servers, useCache)
	return SelectBest(snapshots, criteria)
}

// probe runs the full metric sequence against one host. The mandatory
// metrics (cpu, memory, load) run first, in order; the first failure
// marks the host offline and skips everything that follows, so a host is
// never reported partially online. GPU metrics run only on GPU-capable
// hosts after the mandatory three succeed, and a GPU failure is recorded
// separately without flipping the online flag.
func (c *Checker) probe(ctx context.Context, server config.Server) Snapshot {
	snap := Snapshot{
		Name:      server.Name,
		Host:      server.Host,
		HasGPU:    server.HasGPU,
		CheckedAt: time.Now(),
	}

	c.log.Debug("checking %s (%s)", server.Name, server.Host)

	for _, kind := range []string{config.CommandCPU, config.CommandMemory, config.CommandLoad} {
		output, err := c.runner.Run(ctx, server, c.cfg.Command(kind))
		if err != nil {
			c.log.Debug("%s: %s check failed: %v", server.Name, kind, err)
			snap.Error = err.Error()
			return snap
		}

		switch kind {
		case config.CommandCPU:
			snap.CPUUsage = parsers.ParsePercent(output)
		case config.CommandMemory:
			snap.MemoryUsage = parsers.ParsePercent(output)
		case config.CommandLoad:
			snap.LoadAverage = parsers.ParseLoadAverage(output)
		}
	}
	snap.Online = true

	if server.HasGPU {
		if err := c.probeGPU(ctx, server, &snap); err != nil {
			c.log.Debug("%s: gpu check failed: %v", server.Name, err)
			snap.GPUError = err.Error()
		}
	}

	return snap
}

// probeGPU fills in the GPU fields of snap. The first failing command
// aborts the remaining GPU steps; partial GPU data gathered before the
// failure is kept.
func (c *Checker) probeGPU(ctx context.Context, server config.Server, snap *Snapshot) error {
	output, err := c.runner.Run(ctx, server, c.cfg.Command(config.CommandGPUUsage))
	if err != nil {
		return err
	}
	snap.GPUUsage = parsers.ParseGPUUsage(output)

	output, err = c.runner.Run(ctx, server, c.cfg.Command(config.CommandGPUMemory))
	if err != nil {
		return err
	}
	snap.GPUMemory = parsers.ParseGPUMemory(output)

	if c.cfg.HasCommand(config.CommandGPUProcesses) {
		output, err = c.runner.Run(ctx, server, c.cfg.Command(config.CommandGPUProcesses))
		if err != nil {
			return err
		}
		snap.GPUProcesses = parsers.ParseGPUProcesses(output)
	}

	return nil
}
