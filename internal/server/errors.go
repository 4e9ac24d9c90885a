package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sowforge/internal/ai"
	"github.com/smallbiznis/sowforge/internal/pricing"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	var exportErr *sowdomain.NotExportableError
	if errors.As(err, &exportErr) {
		return http.StatusConflict, errorPayload{
			Type:    "not_exportable",
			Message: "document failed mandatory role validation",
			Errors:  exportValidationErrors(exportErr),
		}
	}

	var cfgErr *pricing.ConfigurationError
	if errors.As(err, &cfgErr) {
		// Deployment defect: the rate catalog cannot support enforcement.
		return http.StatusInternalServerError, errorPayload{
			Type:    "system_misconfigured",
			Message: cfgErr.Error(),
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, sowdomain.ErrGenerationOff),
		errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func exportValidationErrors(exportErr *sowdomain.NotExportableError) []ValidationError {
	out := make([]ValidationError, 0, len(exportErr.Result.Details)+len(exportErr.Suggestions))
	for _, detail := range exportErr.Result.Details {
		out = append(out, ValidationError{
			Field:   "rows",
			Code:    "mandatory_role_violation",
			Message: detail,
		})
	}
	for _, suggestion := range exportErr.Suggestions {
		out = append(out, ValidationError{
			Field:   "rows",
			Code:    "suggestion",
			Message: suggestion,
		})
	}
	return out
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ai.ErrEmptyBrief):
		return true
	case isRateCardValidationError(err),
		isWorkspaceValidationError(err),
		isSOWValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, ratecarddomain.ErrDuplicateRole),
		errors.Is(err, workspacedomain.ErrDuplicateSlug),
		errors.Is(err, workspacedomain.ErrWorkspaceInUse):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, ratecarddomain.ErrDuplicateRole):
		return "a rate card entry for this role already exists"
	case errors.Is(err, workspacedomain.ErrDuplicateSlug):
		return "a workspace with this name already exists"
	case errors.Is(err, workspacedomain.ErrWorkspaceInUse):
		return "workspace still contains documents"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ratecarddomain.ErrNotFound),
		errors.Is(err, workspacedomain.ErrNotFound),
		errors.Is(err, sowdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ai.ErrEmptyBrief):
		return "invalid_brief"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog keeps request logs aligned with the wire error taxonomy.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if vErr := asValidationErrors(err); vErr != nil && len(vErr.Errors) > 0 {
		return "validation_error", vErr.Errors[0].Code
	}
	var exportErr *sowdomain.NotExportableError
	if errors.As(err, &exportErr) {
		return "not_exportable", "mandatory_role_violation"
	}
	var cfgErr *pricing.ConfigurationError
	if errors.As(err, &cfgErr) {
		return "system_misconfigured", "missing_mandatory_role"
	}
	switch {
	case isValidationError(err):
		return "validation_error", validationErrorCode(err)
	case isConflictError(err):
		return "conflict", err.Error()
	case isNotFoundError(err):
		return "not_found", "not_found"
	default:
		return "internal_error", "internal_error"
	}
}

func isRateCardValidationError(err error) bool {
	switch err {
	case ratecarddomain.ErrInvalidID,
		ratecarddomain.ErrInvalidRoleName,
		ratecarddomain.ErrInvalidHourlyRate:
		return true
	default:
		return false
	}
}

func isWorkspaceValidationError(err error) bool {
	switch err {
	case workspacedomain.ErrInvalidID,
		workspacedomain.ErrInvalidName:
		return true
	default:
		return false
	}
}

func isSOWValidationError(err error) bool {
	switch err {
	case sowdomain.ErrInvalidID,
		sowdomain.ErrInvalidTitle,
		sowdomain.ErrInvalidWorkspace,
		sowdomain.ErrInvalidDiscount:
		return true
	default:
		return false
	}
}
