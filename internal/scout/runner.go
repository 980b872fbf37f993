package scout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/scout/internal/config"
)

// ErrorKind categorizes why a remote command failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnknownHost
	KindConnectionRefused
	KindPermissionDenied
	KindTimeout
	KindRemoteCommandError
)

// String returns a human-readable description of the failure kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownHost:
		return "unknown host"
	case KindConnectionRefused:
		return "connection refused"
	case KindPermissionDenied:
		return "permission denied"
	case KindTimeout:
		return "timeout"
	case KindRemoteCommandError:
		return "command failed"
	default:
		return "unknown error"
	}
}

// CommandError is a remote command failure with a categorized kind.
// Detail carries trimmed stderr for KindRemoteCommandError; Cause holds
// the underlying transport error when one exists.
type CommandError struct {
	Host   string
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *CommandError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Host, e.Kind, e.Detail)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Host, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Host, e.Kind)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// ErrorKindOf extracts the kind from an error returned by a Runner,
// or KindUnknown when the error is not a CommandError.
func ErrorKindOf(err error) ErrorKind {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return KindUnknown
}

// Runner executes one command on one remote host. Implementations must
// honor context cancellation and return a *CommandError on failure.
// A command that exits 0 always succeeds regardless of output content;
// trimmed stdout is returned, and empty output is valid.
type Runner interface {
	Run(ctx context.Context, server config.Server, command string) (string, error)
}

// SSHRunner runs commands over pooled SSH connections.
type SSHRunner struct {
	pool    *Pool
	timeout time.Duration
}

// NewSSHRunner builds a Runner on top of the given connection pool.
// Each command is bounded by the per-command timeout.
func NewSSHRunner(pool *Pool, timeout time.Duration) *SSHRunner {
	return &SSHRunner{pool: pool, timeout: timeout}
}

// Run executes command on server and returns its trimmed stdout.
func (r *SSHRunner) Run(ctx context.Context, server config.Server, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := r.pool.Get(server)
	if err != nil {
		return "", classifyTransportError(server.Name, err)
	}

	stdout, stderr, exitCode, err := client.ExecContext(ctx, command)
	if err != nil {
		// A dead connection poisons the pool entry; drop it so the
		// next check dials fresh.
		r.pool.CloseOne(server.Name)
		if ctx.Err() != nil {
			return "", &CommandError{Host: server.Name, Kind: KindTimeout, Cause: ctx.Err()}
		}
		return "", classifyTransportError(server.Name, err)
	}

	if exitCode != 0 {
		return "", classifyExitError(server.Name, stderr, exitCode)
	}

	return strings.TrimSpace(string(stdout)), nil
}

// classifyTransportError categorizes dial and session failures by
// substring matching on the error text, the same way OpenSSH users
// would read it.
func classifyTransportError(host string, err error) *CommandError {
	cmdErr := &CommandError{Host: host, Kind: KindUnknown, Cause: err}
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "deadline exceeded"):
		cmdErr.Kind = KindTimeout
	case strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "could not resolve") ||
		strings.Contains(errStr, "name or service not known"):
		cmdErr.Kind = KindUnknownHost
	case strings.Contains(errStr, "connection refused"):
		cmdErr.Kind = KindConnectionRefused
	case strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "unable to authenticate") ||
		strings.Contains(errStr, "no supported methods"):
		cmdErr.Kind = KindPermissionDenied
	}

	return cmdErr
}

// classifyExitError categorizes a non-zero exit by inspecting stderr.
func classifyExitError(host string, stderr []byte, exitCode int) *CommandError {
	detail := strings.TrimSpace(string(stderr))
	lower := strings.ToLower(detail)

	kind := KindRemoteCommandError
	switch {
	case strings.Contains(lower, "could not resolve hostname") ||
		strings.Contains(lower, "name or service not known"):
		kind = KindUnknownHost
	case strings.Contains(lower, "connection refused"):
		kind = KindConnectionRefused
	case strings.Contains(lower, "permission denied"):
		kind = KindPermissionDenied
	case strings.Contains(lower, "connection timed out"):
		kind = KindTimeout
	}

	if kind != KindRemoteCommandError {
		return &CommandError{Host: host, Kind: kind}
	}
	if detail == "" {
		detail = fmt.Sprintf("exit code %d", exitCode)
	}
	return &CommandError{Host: host, Kind: KindRemoteCommandError, Detail: detail}
}
