package errors

import (
	"errors"
	"strings"

	"github.com/matzehuels/memstack/pkg/memmap"
)

// ViolationsError carries the full list of structural violations found by
// the validator. Rendering must never proceed on a partially-invalid tree,
// so the whole list is surfaced at once for diagnostics.
type ViolationsError struct {
	Violations []memmap.Violation
}

// Error lists every violation, one per line.
func (e *ViolationsError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, v := range e.Violations {
		b.WriteString("\n- ")
		b.WriteString(v.Message)
	}
	return b.String()
}

// FromViolations wraps the validator's output as a fatal structured error.
// The code is INVALID_RANGE when any containment violation is present,
// otherwise INVALID_INPUT for pure overlaps.
func FromViolations(vs []memmap.Violation) error {
	if len(vs) == 0 {
		return nil
	}
	code := ErrCodeInvalidInput
	for _, v := range vs {
		if v.Kind == memmap.ViolationContainment {
			code = ErrCodeInvalidRange
			break
		}
	}
	return Wrap(code, &ViolationsError{Violations: vs}, "map has %d structural violation(s)", len(vs))
}

// AsViolations extracts the violation list from an error chain, if present.
func AsViolations(err error) ([]memmap.Violation, bool) {
	var ve *ViolationsError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}
