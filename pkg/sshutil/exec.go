package sshutil

import (
	"bytes"
	"context"

	"github.com/rileyhilliard/scout/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Exec runs a command on the remote host and returns the output.
// Returns stdout, stderr, exit code, and any error.
// Exit code is -1 if the command couldn't be executed at all.
// A non-zero exit code with nil error means the command ran but failed.
func (c *Client) Exec(cmd string) (stdout, stderr []byte, exitCode int, err error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, nil, -1, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	exitCode = 0
	err = session.Run(cmd)
	if err != nil {
		if exitErr, ok := err.(*ssh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
			err = nil // Command ran, just had non-zero exit
		} else {
			return nil, nil, -1, errors.WrapWithCode(err, errors.ErrExec,
				"Failed to execute command on remote host",
				"Check if the command exists on the remote host.")
		}
	}

	return stdoutBuf.Bytes(), stderrBuf.Bytes(), exitCode, nil
}

// ExecContext runs a command on the remote host, honoring context
// cancellation. When the context expires before the command completes,
// the session is torn down and ctx.Err() is returned.
func (c *Client) ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, nil, -1, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	type result struct {
		exitCode int
		err      error
	}
	resultCh := make(chan result, 1)

	go func() {
		code := 0
		runErr := session.Run(cmd)
		if runErr != nil {
			if exitErr, ok := runErr.(*ssh.ExitError); ok {
				code = exitErr.ExitStatus()
				runErr = nil
			}
		}
		resultCh <- result{code, runErr}
	}()

	select {
	case <-ctx.Done():
		// Closing the session unblocks the remote command; the goroutine's
		// eventual result goes to the buffered channel and is discarded.
		_ = session.Close()
		return nil, nil, -1, ctx.Err()
	case r := <-resultCh:
		if r.err != nil {
			return nil, nil, -1, errors.WrapWithCode(r.err, errors.ErrExec,
				"Failed to execute command on remote host",
				"Check if the command exists on the remote host.")
		}
		return stdoutBuf.Bytes(), stderrBuf.Bytes(), r.exitCode, nil
	}
}
