package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// JSONFlag is the persistent flag that switches commands to JSON output.
const JSONFlag = "json"

// Envelope wraps all JSON command output with metadata.
type Envelope struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Data    any    `json:"data"`
}

// ErrorEnvelope wraps JSON error output.
type ErrorEnvelope struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// Error codes reported in ErrorEnvelope.Code.
const (
	ErrGeneral  = "GENERAL_ERROR"
	ErrConfig   = "CONFIG_ERROR"
	ErrManifest = "MANIFEST_ERROR"
)

// exit statuses for coded errors; anything else exits 1.
var exitCodes = map[string]int{
	ErrConfig:   2,
	ErrManifest: 3,
}

// CodedError tags an error with one of the error codes.
type CodedError struct {
	Code string
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }

func (e *CodedError) Unwrap() error { return e.Err }

// WithCode tags err with code. A nil err stays nil.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// Code returns the code err was tagged with, or ErrGeneral.
func Code(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrGeneral
}

// SilentError signals a non-zero exit without additional error output.
// Used when the command has already written its own report.
type SilentError struct{ ExitCode int }

func (e *SilentError) Error() string { return fmt.Sprintf("exit %d", e.ExitCode) }

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var silent *SilentError
	if errors.As(err, &silent) {
		return silent.ExitCode
	}
	if code, ok := exitCodes[Code(err)]; ok {
		return code
	}
	return 1
}

// WriteJSON writes a pretty-printed JSON envelope around data to w.
func WriteJSON(w io.Writer, version, command string, data any) error {
	return encode(w, Envelope{Version: version, Command: command, Data: data})
}

// WriteJSONError writes err as a JSON error envelope, using its code.
func WriteJSONError(w io.Writer, version, command string, err error) error {
	return encode(w, ErrorEnvelope{
		Version: version,
		Command: command,
		Error:   err.Error(),
		Code:    Code(err),
	})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IsJSON reports whether JSONFlag is set on cmd, locally or inherited.
func IsJSON(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup(JSONFlag)
	if f == nil {
		f = cmd.InheritedFlags().Lookup(JSONFlag)
	}
	return f != nil && f.Value.String() == "true"
}
