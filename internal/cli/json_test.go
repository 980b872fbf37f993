package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/scout/internal/errors"
	"github.com/rileyhilliard/scout/internal/scout"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"server": "orca01"}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONError(&buf, ErrCodeNoMatch, "no server matched", "relax the constraints"))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeNoMatch, env.Error.Code)
	assert.Equal(t, "relax the constraints", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "config not found",
			err:  errors.New(errors.ErrConfig, "Config file not found", "Run 'scout init'"),
			want: ErrCodeConfigNotFound,
		},
		{
			name: "config invalid",
			err:  errors.New(errors.ErrConfig, "Duplicate server name", "Fix servers.yaml"),
			want: ErrCodeConfigInvalid,
		},
		{
			name: "ssh structured error",
			err:  errors.New(errors.ErrSSH, "Connection failed", ""),
			want: ErrCodeSSHFailed,
		},
		{
			name: "timeout command error",
			err:  &scout.CommandError{Host: "orca01", Kind: scout.KindTimeout},
			want: ErrCodeSSHTimeout,
		},
		{
			name: "auth command error",
			err:  &scout.CommandError{Host: "orca01", Kind: scout.KindPermissionDenied},
			want: ErrCodeSSHAuthFailed,
		},
		{
			name: "remote command error",
			err:  &scout.CommandError{Host: "orca01", Kind: scout.KindRemoteCommandError, Detail: "boom"},
			want: ErrCodeCommandFailed,
		},
		{
			name: "plain error",
			err:  stderrors.New("unexpected"),
			want: ErrCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonErr := ErrorToJSON(tt.err)
			require.NotNil(t, jsonErr)
			assert.Equal(t, tt.want, jsonErr.Code)
		})
	}
}

func TestErrorToJSONNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}
