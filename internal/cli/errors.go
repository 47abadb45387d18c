package cli

import (
	"errors"

	"github.com/roach88/subsel/internal/ir"
)

// Error code constants - unified across all CLI commands.
// E0xx are command errors, E2xx are criterion errors by kind.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No selection or scenario files found
	ErrCodeLoadFailed  = "E004" // Selection file could not be parsed
	ErrCodeNotFound    = "E005" // Path or selection not found
	ErrCodeStoreFailed = "E006" // Vocabulary store error
	ErrCodeWriteFailed = "E007" // File write error

	ErrCodeUnknownKey        = "E201"
	ErrCodeUnsupported       = "E202"
	ErrCodeMissingContext    = "E203"
	ErrCodeUnresolvableValue = "E204"
	ErrCodeUnparseableDate   = "E205"
	ErrCodeArity             = "E206"
	ErrCodeInvalidOptions    = "E207"
)

var kindCodes = map[ir.ErrorKind]string{
	ir.ErrUnknownCriteriaKey:      ErrCodeUnknownKey,
	ir.ErrUnsupportedModifier:     ErrCodeUnsupported,
	ir.ErrMissingContext:          ErrCodeMissingContext,
	ir.ErrUnresolvableDomainValue: ErrCodeUnresolvableValue,
	ir.ErrUnparseableDate:         ErrCodeUnparseableDate,
	ir.ErrArityViolation:          ErrCodeArity,
	ir.ErrInvalidOptions:          ErrCodeInvalidOptions,
}

// MapErrorCode maps a compile error to an error code.
func MapErrorCode(err error) string {
	if code, ok := kindCodes[ir.KindOf(err)]; ok {
		return code
	}
	return ErrCodeGeneric
}

// CriterionDetails is the JSON detail payload of a criterion error.
type CriterionDetails struct {
	Kind  string `json:"kind"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// criterionDetails extracts the criterion named by err, if any.
func criterionDetails(err error) *CriterionDetails {
	var ce *ir.CriterionError
	if !errors.As(err, &ce) {
		return nil
	}
	return &CriterionDetails{Kind: string(ce.Kind), Key: ce.Key, Value: ce.Value}
}
