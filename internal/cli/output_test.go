package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf, TraceID: "trace-1"}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf, TraceID: "trace-9"}

	details := &CriterionDetails{Kind: "UNKNOWN_CRITERIA_KEY", Key: "favourite colour"}
	require.NoError(t, formatter.Error(ErrCodeUnknownKey, "criteria key is not recognised", details))

	var resp struct {
		Status  string `json:"status"`
		TraceID string `json:"trace_id"`
		Error   struct {
			Code    string           `json:"code"`
			Message string           `json:"message"`
			Details CriterionDetails `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "trace-9", resp.TraceID)
	assert.Equal(t, ErrCodeUnknownKey, resp.Error.Code)
	assert.Equal(t, "favourite colour", resp.Error.Details.Key)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error("E001", "compilation failed", map[string]string{"file": "a.cue"}))
			assert.Contains(t, buf.String(), "Error [E001]: compilation failed")
			assert.Equal(t, tt.wantDetails, bytes.Contains(buf.Bytes(), []byte("Details:")))
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("Compiling %s", "fobt")
	assert.Empty(t, out.String())
	assert.Equal(t, "Compiling fobt\n", errOut.String())

	formatter.Verbose = false
	formatter.VerboseLog("silent")
	assert.Equal(t, "Compiling fobt\n", errOut.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	wrapped := WrapExitError(ExitFailure, "rejected", ir.NewError(ir.ErrArityViolation, "twice"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.True(t, ir.IsKind(wrapped, ir.ErrArityViolation))
	assert.Contains(t, wrapped.Error(), "rejected: ARITY_VIOLATION")
}

func TestMapErrorCode(t *testing.T) {
	tests := []struct {
		kind ir.ErrorKind
		want string
	}{
		{ir.ErrUnknownCriteriaKey, ErrCodeUnknownKey},
		{ir.ErrUnsupportedModifier, ErrCodeUnsupported},
		{ir.ErrMissingContext, ErrCodeMissingContext},
		{ir.ErrUnresolvableDomainValue, ErrCodeUnresolvableValue},
		{ir.ErrUnparseableDate, ErrCodeUnparseableDate},
		{ir.ErrArityViolation, ErrCodeArity},
		{ir.ErrInvalidOptions, ErrCodeInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorCode(ir.NewError(tt.kind, "x")))
		})
	}
	assert.Equal(t, ErrCodeGeneric, MapErrorCode(errors.New("other")))
}

func TestMark(t *testing.T) {
	assert.Contains(t, Mark(true), "✓")
	assert.Contains(t, Mark(false), "✗")
}
