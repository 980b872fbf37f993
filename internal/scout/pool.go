package scout

import (
	"sync"
	"time"

	"github.com/rileyhilliard/scout/internal/config"
	"github.com/rileyhilliard/scout/pkg/sshutil"
)

// Pool manages SSH connections for reuse between check cycles, keyed by
// server name. Keeping connections alive avoids paying the handshake cost
// on every refresh of the same host.
type Pool struct {
	mu          sync.Mutex
	connections map[string]*poolEntry
	user        string
	timeout     time.Duration
}

type poolEntry struct {
	client   *sshutil.Client
	lastUsed time.Time
}

// NewPool creates a connection pool. user may be empty, in which case
// each host falls back to its ssh_config or the local username.
func NewPool(user string, timeout time.Duration) *Pool {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Pool{
		connections: make(map[string]*poolEntry),
		user:        user,
		timeout:     timeout,
	}
}

// Get retrieves the pooled connection for server, or dials a new one.
// A stale or broken connection is replaced with a fresh dial.
func (p *Pool) Get(server config.Server) (*sshutil.Client, error) {
	p.mu.Lock()
	entry, exists := p.connections[server.Name]
	p.mu.Unlock()

	if exists && entry.client != nil {
		if entry.client.IsAlive() {
			p.mu.Lock()
			entry.lastUsed = time.Now()
			p.mu.Unlock()
			return entry.client, nil
		}
		p.remove(server.Name)
	}

	client, err := sshutil.Dial(server.Host, p.user, p.timeout)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.connections[server.Name] = &poolEntry{
		client:   client,
		lastUsed: time.Now(),
	}
	p.mu.Unlock()

	return client, nil
}

// CloseOne closes and removes a specific connection from the pool.
func (p *Pool) CloseOne(name string) {
	p.remove(name)
}

// Close closes all connections in the pool and clears it.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for name, entry := range p.connections {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, name)
	}
}

// Size returns the number of connections in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections)
}

func (p *Pool) remove(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.connections[name]; ok {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, name)
	}
}
