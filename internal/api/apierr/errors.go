package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mfreeman/gridledger/internal/dependencies/verifier"
	"github.com/mfreeman/gridledger/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeMissingSignature = "MISSING_SIGNATURE"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeBoardExists      = "BOARD_EXISTS"
	CodePlayerExists     = "PLAYER_EXISTS"
	CodeBoardNotFound    = "BOARD_NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeInvalidState     = "INVALID_DELEGATION_STATE"
	CodeStaleCommit      = "STALE_COMMIT"
	CodeWriteRejected    = "WRITE_REJECTED"
	CodeUnknownVenue     = "UNKNOWN_VENUE"
	CodeStoreFailure     = "STORE_FAILURE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, "Signer is not authorized for this player"}}
	case errors.Is(err, model.ErrBoardExists):
		return &httpError{http.StatusConflict, APIError{CodeBoardExists, "Board is already initialized"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player has already joined"}}
	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBoardNotFound, "Board is not initialized"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidDelegation):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, "Delegation operation not valid in current state"}}
	case errors.Is(err, model.ErrStaleCommit):
		return &httpError{http.StatusConflict, APIError{CodeStaleCommit, "Commit is older than the last checkpoint"}}
	case errors.Is(err, model.ErrWriteRejected):
		return &httpError{http.StatusConflict, APIError{CodeWriteRejected, "Record is delegated; write the venue copy"}}
	case errors.Is(err, model.ErrUnknownVenue):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownVenue, "Unknown delegation venue"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeStoreFailure, "Store operation failed"}}
	case errors.Is(err, verifier.ErrBadSignature):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidSignature, "Signature verification failed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewMissingSignatureError creates an error for unsigned requests
func NewMissingSignatureError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeMissingSignature, "Signer and signature headers are required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
