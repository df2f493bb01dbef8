// Package apierrors defines the HTTP façade's closed set of error
// kinds (C9 expansion), adapted from the teacher's DistributedError
// builder down to the four variants original_source/src/api_error.rs
// actually uses, plus ConstraintNotFound for the constraint CRUD
// routes: a typed error carries its own HTTP status and wire message
// rather than requiring a classification switch per request.
package apierrors

import (
	"fmt"
	"net/http"

	"github.com/khryptorgraphics/schedcore/internal/model"
)

// Kind discriminates the APIError tagged union.
type Kind int

const (
	KindItemNotFound Kind = iota
	KindMemberNotFound
	KindConstraintNotFound
	KindInvalidInput
	KindUnexpectedError
)

// APIError is the error type every façade handler returns. Message is
// the wire-visible detail; Kind decides the HTTP status.
type APIError struct {
	Kind    Kind
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Status maps a Kind to its HTTP status code, mirroring
// ApiError::into_response in original_source/src/api_error.rs.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindItemNotFound, KindMemberNotFound, KindConstraintNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body every error produces: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ItemNotFound(name string) *APIError {
	return &APIError{Kind: KindItemNotFound, Message: fmt.Sprintf("item %q not found", name)}
}

func MemberNotFound(itemName string, id model.ItemId) *APIError {
	return &APIError{Kind: KindMemberNotFound, Message: fmt.Sprintf("member %d not found in item %q", id, itemName)}
}

func ConstraintNotFound(name string) *APIError {
	return &APIError{Kind: KindConstraintNotFound, Message: fmt.Sprintf("constraint %q not found", name)}
}

func InvalidInput(reason string) *APIError {
	return &APIError{Kind: KindInvalidInput, Message: reason}
}

func Unexpected(err error) *APIError {
	return &APIError{Kind: KindUnexpectedError, Message: "unexpected error: " + err.Error()}
}

// As reports whether err is an *APIError, unwrapping it if so —
// handlers use this to turn a store error into a status code without
// a type switch at every call site.
func As(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}
