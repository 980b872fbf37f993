package config

import (
	"fmt"

	"github.com/rileyhilliard/scout/internal/errors"
)

// Validate checks the config for problems that would break checking.
func Validate(cfg *Config) error {
	hosts := cfg.Hosts()
	if len(hosts) == 0 {
		return errors.New(errors.ErrConfig,
			"No servers configured",
			"Add at least one entry under 'servers:' in servers.yaml, or run 'scout init'.")
	}

	seen := make(map[string]struct{}, len(hosts))
	for _, s := range hosts {
		if s.Name == "" {
			return errors.New(errors.ErrConfig,
				"Server entry with empty name",
				"Every server needs a 'name' or a 'pattern'.")
		}
		if _, dup := seen[s.Name]; dup {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate server name '%s'", s.Name),
				"Server names must be unique; check overlapping patterns.")
		}
		seen[s.Name] = struct{}{}
	}

	if cfg.SSH.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"SSH timeout must be positive",
			"Set ssh.timeout to a duration like 10s.")
	}
	if cfg.Cache.TTL < 0 {
		return errors.New(errors.ErrConfig,
			"Cache TTL cannot be negative",
			"Set cache.ttl to a duration like 30s, or 0 to disable caching.")
	}
	if cfg.Checker.Workers <= 0 {
		return errors.New(errors.ErrConfig,
			"Checker workers must be positive",
			"Set checker.workers to a small number like 10.")
	}

	for _, kind := range []string{CommandCPU, CommandMemory, CommandLoad} {
		if !cfg.HasCommand(kind) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Missing command for mandatory metric '%s'", kind),
				"cpu, memory, and load commands cannot be disabled.")
		}
	}

	return nil
}
