package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GeneralErrorKey is used for errors that concern the request as a whole
// rather than a single field.
const GeneralErrorKey = "general"

// Error codes returned inside error bodies.
const (
	MissedValue             = "missed_value"
	InvalidValue            = "invalid_value"
	InvalidRequestStructure = "invalid_request_structure"
	NotFound                = "not_found"
	Internal                = "internal_error"
)

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is a client-facing error that knows its HTTP status and body.
type Error interface {
	error
	Status() int
	Body() interface{}
}

type errorBody struct {
	Error  string                  `json:"error"`
	Errors map[string]ErrorMessage `json:"errors,omitempty"`
}

// ValidationError carries per-field failures and renders as 422.
type ValidationError struct {
	errors map[string]ErrorMessage
}

func NewValidationError(errors ...map[string]ErrorMessage) *ValidationError {
	ve := &ValidationError{errors: make(map[string]ErrorMessage)}
	for _, errs := range errors {
		for field, msg := range errs {
			ve.errors[field] = msg
		}
	}
	return ve
}

func (e *ValidationError) SetError(field, code, message string) {
	e.errors[field] = ErrorMessage{Code: code, Message: message}
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) Status() int { return http.StatusUnprocessableEntity }

func (e *ValidationError) Body() interface{} {
	return errorBody{Error: "validation failed", Errors: e.errors}
}

// NotFoundError renders as 404.
type NotFoundError struct {
	message string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{message: message}
}

func (e *NotFoundError) Error() string { return e.message }

func (e *NotFoundError) Status() int { return http.StatusNotFound }

func (e *NotFoundError) Body() interface{} {
	return errorBody{Error: e.message}
}

// InternalError renders as an opaque 500. Details stay in the logs.
type InternalError struct{}

func NewInternalError() *InternalError { return &InternalError{} }

func (e *InternalError) Error() string { return "internal error" }

func (e *InternalError) Status() int { return http.StatusInternalServerError }

func (e *InternalError) Body() interface{} {
	return errorBody{Error: "internal error"}
}

// HandleError writes err to the response and aborts the request.
func HandleError(err Error, c *gin.Context) {
	c.AbortWithStatusJSON(err.Status(), err.Body())
}
