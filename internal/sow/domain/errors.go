package domain

import (
	"errors"
	"strings"

	"github.com/smallbiznis/sowforge/internal/pricing"
)

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidWorkspace = errors.New("invalid_workspace")
	ErrInvalidDiscount  = errors.New("invalid_discount")
	ErrNotFound         = errors.New("not_found")
	ErrGenerationOff    = errors.New("generation_disabled")
)

// NotExportableError blocks an export of a non-compliant pricing table. It
// carries the audit findings and remediation hints for the operator UI.
type NotExportableError struct {
	Result      pricing.ValidationResult
	Suggestions []string
}

func (e *NotExportableError) Error() string {
	return "document not exportable: " + strings.Join(e.Result.Details, "; ")
}
