package sshutil

import "context"

// SSHClient defines the interface for SSH command execution.
// Both the real Client and test fakes satisfy this interface, which enables
// testing of SSH-dependent code without actual connections.
type SSHClient interface {
	// Exec runs a command and returns stdout, stderr, and exit code.
	// Exit code is -1 if the command couldn't be executed at all.
	// A non-zero exit code with nil error means the command ran but failed.
	Exec(cmd string) (stdout, stderr []byte, exitCode int, err error)

	// ExecContext is Exec with context cancellation. A command that
	// outlives the context returns ctx.Err().
	ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error)

	// IsAlive reports whether the underlying connection still responds.
	IsAlive() bool

	// Close closes the SSH connection.
	Close() error
}
