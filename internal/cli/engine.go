package cli

import (
	"github.com/rileyhilliard/scout/internal/config"
	"github.com/rileyhilliard/scout/internal/logger"
	"github.com/rileyhilliard/scout/internal/scout"
)

// newEngine wires up the checker stack for a loaded config. The returned
// cleanup function closes pooled SSH connections and must be deferred.
func newEngine(cfg *config.Config) (*scout.Checker, func()) {
	pool := scout.NewPool(cfg.SSH.User, cfg.SSH.Timeout)
	runner := scout.NewSSHRunner(pool, cfg.SSH.Timeout)
	cache := scout.NewCache(cfg.Cache.TTL, nil)
	checker := scout.NewChecker(cfg, runner, cache, logger.NewEnvLogger("[checker]"))
	return checker, pool.Close
}
