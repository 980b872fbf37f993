package config

import "time"

// Metric kinds used as keys in the commands map.
const (
	CommandCPU          = "cpu"
	CommandMemory       = "memory"
	CommandLoad         = "load"
	CommandGPUUsage     = "gpu_usage"
	CommandGPUMemory    = "gpu_memory"
	CommandGPUProcesses = "gpu_processes"
)

// Config represents the complete servers.yaml configuration file.
type Config struct {
	Servers  []ServerDef       `yaml:"servers" mapstructure:"servers"`
	SSH      SSHConfig         `yaml:"ssh" mapstructure:"ssh"`
	Commands map[string]string `yaml:"commands" mapstructure:"commands"`
	Cache    CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Checker  CheckerConfig     `yaml:"checker" mapstructure:"checker"`
}

// ServerDef is a raw server entry from the config file. Either Name or
// Pattern is set; Pattern entries expand into multiple servers.
type ServerDef struct {
	// Name identifies an individual server.
	Name string `yaml:"name,omitempty" mapstructure:"name"`

	// Host is the network address; defaults to Name when omitted.
	Host string `yaml:"host,omitempty" mapstructure:"host"`

	// Pattern expands to a numeric range of servers, e.g. "orca{01..99}".
	Pattern string `yaml:"pattern,omitempty" mapstructure:"pattern"`

	// HasGPU marks the server as eligible for GPU-metric probing.
	HasGPU bool `yaml:"has_gpu" mapstructure:"has_gpu"`
}

// Server is one expanded host descriptor. Immutable once built.
type Server struct {
	Name   string `json:"name"`
	Host   string `json:"host"`
	HasGPU bool   `json:"has_gpu"`
}

// SSHConfig holds remote transport parameters.
type SSHConfig struct {
	// Timeout is the per-command timeout for remote execution.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// User overrides the connecting user; empty means resolve from
	// the host string, ~/.ssh/config, or $USER.
	User string `yaml:"user" mapstructure:"user"`

	// Options are extra ssh options, kept for parity with the config
	// file format (e.g. "StrictHostKeyChecking=no").
	Options []string `yaml:"options" mapstructure:"options"`
}

// CacheConfig controls snapshot caching.
type CacheConfig struct {
	// TTL is how long a cached snapshot stays fresh.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// CheckerConfig controls the concurrent checker.
type CheckerConfig struct {
	// Workers bounds how many hosts are probed at once.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Servers: nil,
		SSH: SSHConfig{
			Timeout: 10 * time.Second,
		},
		Commands: DefaultCommands(),
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		Checker: CheckerConfig{
			Workers: 10,
		},
	}
}

// DefaultCommands returns the standard remote command set. Each command
// prints output in the shape the matching parser expects.
func DefaultCommands() map[string]string {
	return map[string]string{
		CommandCPU:          `top -bn1 | grep "Cpu(s)" | awk '{print $2 + $4}'`,
		CommandMemory:       `free | grep Mem | awk '{print $3/$2 * 100.0}'`,
		CommandLoad:         `uptime | awk -F'load average:' '{print $2}'`,
		CommandGPUUsage:     `nvidia-smi --query-gpu=utilization.gpu --format=csv,noheader,nounits`,
		CommandGPUMemory:    `nvidia-smi --query-gpu=memory.used,memory.total --format=csv,noheader,nounits`,
		CommandGPUProcesses: `nvidia-smi --query-compute-apps=pid,process_name,used_memory --format=csv,noheader,nounits`,
	}
}

// Hosts expands all server definitions into an ordered descriptor list.
// Order matches the config file, with pattern entries expanded in place.
func (c *Config) Hosts() []Server {
	var servers []Server
	for _, def := range c.Servers {
		servers = append(servers, expandServerDef(def)...)
	}
	return servers
}

// GPUHosts returns the GPU-capable subset of Hosts, preserving order.
func (c *Config) GPUHosts() []Server {
	var servers []Server
	for _, s := range c.Hosts() {
		if s.HasGPU {
			servers = append(servers, s)
		}
	}
	return servers
}

// Host looks up a single expanded server by name.
// The second return value is false when no server matches.
func (c *Config) Host(name string) (Server, bool) {
	for _, s := range c.Hosts() {
		if s.Name == name {
			return s, true
		}
	}
	return Server{}, false
}

// Command returns the configured command for a metric kind, falling back
// to the default command set. A kind explicitly set to the empty string is
// treated as disabled.
func (c *Config) Command(kind string) string {
	if cmd, ok := c.Commands[kind]; ok {
		return cmd
	}
	return DefaultCommands()[kind]
}

// HasCommand reports whether a command for the metric kind is available,
// either configured or by default.
func (c *Config) HasCommand(kind string) bool {
	return c.Command(kind) != ""
}
