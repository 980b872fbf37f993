package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/scout/internal/errors"
	"github.com/rileyhilliard/scout/internal/scout"
)

// JSONEnvelope wraps command output in a consistent structure for machine
// parsing. All --json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeHostNotFound   = "HOST_NOT_FOUND"
	ErrCodeSSHTimeout     = "SSH_TIMEOUT"
	ErrCodeSSHAuthFailed  = "SSH_AUTH_FAILED"
	ErrCodeSSHFailed      = "SSH_CONNECTION_FAILED"
	ErrCodeCommandFailed  = "COMMAND_FAILED"
	ErrCodeNoMatch        = "NO_MATCH"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

// ErrorToJSON maps an error onto a machine-readable error code. Structured
// errors keep their message and suggestion; scout command errors map their
// kind onto the SSH family of codes.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var scoutErr *errors.Error
	if stderrors.As(err, &scoutErr) {
		code := ErrCodeUnknown
		switch scoutErr.Code {
		case errors.ErrConfig:
			code = ErrCodeConfigInvalid
			if strings.Contains(scoutErr.Message, "not found") {
				code = ErrCodeConfigNotFound
			}
		case errors.ErrSSH:
			code = ErrCodeSSHFailed
		case errors.ErrExec:
			code = ErrCodeCommandFailed
		}
		return &JSONError{
			Code:       code,
			Message:    scoutErr.Message,
			Suggestion: scoutErr.Suggestion,
		}
	}

	switch scout.ErrorKindOf(err) {
	case scout.KindTimeout:
		return &JSONError{Code: ErrCodeSSHTimeout, Message: err.Error()}
	case scout.KindPermissionDenied:
		return &JSONError{Code: ErrCodeSSHAuthFailed, Message: err.Error()}
	case scout.KindUnknownHost, scout.KindConnectionRefused:
		return &JSONError{Code: ErrCodeSSHFailed, Message: err.Error()}
	case scout.KindRemoteCommandError:
		return &JSONError{Code: ErrCodeCommandFailed, Message: err.Error()}
	}

	return &JSONError{Code: ErrCodeUnknown, Message: err.Error()}
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
