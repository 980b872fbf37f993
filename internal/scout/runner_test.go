package scout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"dial timeout", errors.New("dial tcp 10.0.0.1:22: i/o timeout"), KindTimeout},
		{"context deadline", errors.New("context deadline exceeded"), KindTimeout},
		{"unknown host", errors.New("dial tcp: lookup orca99: no such host"), KindUnknownHost},
		{"refused", errors.New("dial tcp 10.0.0.1:22: connect: connection refused"), KindConnectionRefused},
		{"auth failure", errors.New("ssh: unable to authenticate, attempted methods [none publickey]"), KindPermissionDenied},
		{"unrecognized", errors.New("something exploded"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdErr := classifyTransportError("orca01", tt.err)
			assert.Equal(t, tt.want, cmdErr.Kind)
			assert.Equal(t, "orca01", cmdErr.Host)
			assert.ErrorIs(t, cmdErr, tt.err)
		})
	}
}

func TestClassifyExitError(t *testing.T) {
	tests := []struct {
		name       string
		stderr     string
		exitCode   int
		want       ErrorKind
		wantDetail string
	}{
		{"unresolved hostname", "ssh: Could not resolve hostname orca99: Name or service not known", 255, KindUnknownHost, ""},
		{"refused", "ssh: connect to host orca01 port 22: Connection refused", 255, KindConnectionRefused, ""},
		{"permission denied", "user@orca01: Permission denied (publickey).", 255, KindPermissionDenied, ""},
		{"timed out", "ssh: connect to host orca01 port 22: Connection timed out", 255, KindTimeout, ""},
		{"generic failure", "  bash: nvidia-smi: command not found  ", 127, KindRemoteCommandError, "bash: nvidia-smi: command not found"},
		{"empty stderr", "", 3, KindRemoteCommandError, "exit code 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdErr := classifyExitError("orca01", []byte(tt.stderr), tt.exitCode)
			assert.Equal(t, tt.want, cmdErr.Kind)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, cmdErr.Detail)
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Host: "orca01", Kind: KindRemoteCommandError, Detail: "oops"}
	assert.Equal(t, "orca01: command failed: oops", err.Error())

	err = &CommandError{Host: "orca01", Kind: KindTimeout}
	assert.Equal(t, "orca01: timeout", err.Error())

	cause := errors.New("dial tcp: connection refused")
	err = &CommandError{Host: "orca01", Kind: KindConnectionRefused, Cause: cause}
	assert.Equal(t, fmt.Sprintf("orca01: connection refused: %v", cause), err.Error())
}

func TestErrorKindOf(t *testing.T) {
	cmdErr := &CommandError{Host: "orca01", Kind: KindTimeout}
	assert.Equal(t, KindTimeout, ErrorKindOf(cmdErr))
	assert.Equal(t, KindTimeout, ErrorKindOf(fmt.Errorf("check failed: %w", cmdErr)))
	assert.Equal(t, KindUnknown, ErrorKindOf(errors.New("plain")))
}
