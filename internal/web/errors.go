package web

import (
	"fmt"
	"net/http"
)

// AppError represents a structured API error with a machine-readable code.
// The Message field is an English fallback; the frontend maps error_code to
// the user's language.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(code, message string, httpStatus int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// FailErr writes a structured error response from an AppError.
// Optional detail is appended to the message (e.g. err.Error()).
func FailErr(w http.ResponseWriter, r *http.Request, e *AppError, detail ...string) {
	msg := e.Message
	if len(detail) > 0 && detail[0] != "" {
		msg = msg + ": " + detail[0]
	}
	Fail(w, r, e.Code, msg, e.HTTPStatus)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

var (
	ErrUnauthorized     = &AppError{"AUTH_UNAUTHORIZED", "missing or invalid session token", 401, nil}
	ErrTokenExpired     = &AppError{"AUTH_TOKEN_EXPIRED", "session expired", 401, nil}
	ErrNotLoopback      = &AppError{"AUTH_NOT_LOOPBACK", "sessions are only issued to local clients", 403, nil}
	ErrSessionIssue     = &AppError{"AUTH_SESSION_ISSUE_FAILED", "session token issue failed", 500, nil}
	ErrInvalidParam     = &AppError{"INVALID_PARAM", "invalid request parameter", 400, nil}
	ErrInvalidBody      = &AppError{"INVALID_BODY", "invalid request body", 400, nil}
	ErrMethodNotAllowed = &AppError{"METHOD_NOT_ALLOWED", "method not allowed", 405, nil}
	ErrInternalError    = &AppError{"INTERNAL_ERROR", "internal server error", 500, nil}
	ErrNotFound         = &AppError{"NOT_FOUND", "resource not found", 404, nil}
)

// ---------------------------------------------------------------------------
// Store plugin
// ---------------------------------------------------------------------------

var (
	ErrStoreKeyMissing = &AppError{"STORE_KEY_MISSING", "store key is required", 400, nil}
	ErrStoreNotFound   = &AppError{"STORE_NOT_FOUND", "store key not found", 404, nil}
	ErrStoreQueryFail  = &AppError{"STORE_QUERY_FAILED", "store query failed", 500, nil}
	ErrStoreWriteFail  = &AppError{"STORE_WRITE_FAILED", "store write failed", 500, nil}
)

// ---------------------------------------------------------------------------
// Filesystem plugin
// ---------------------------------------------------------------------------

var (
	ErrFSPathMissing = &AppError{"FS_PATH_MISSING", "file path is required", 400, nil}
	ErrFSReadFail    = &AppError{"FS_READ_FAILED", "file read failed", 500, nil}
	ErrFSWriteFail   = &AppError{"FS_WRITE_FAILED", "file write failed", 500, nil}
	ErrFSOutOfScope  = &AppError{"FS_OUT_OF_SCOPE", "path escapes the configured scope", 403, nil}
)

// ---------------------------------------------------------------------------
// Notification / opener plugins
// ---------------------------------------------------------------------------

var (
	ErrNotifyDisabled = &AppError{"NOTIFY_DISABLED", "no notification channel configured", 409, nil}
	ErrNotifySendFail = &AppError{"NOTIFY_SEND_FAILED", "notification send failed", 502, nil}
	ErrOpenTarget     = &AppError{"OPEN_INVALID_TARGET", "target must be an http(s) or mailto URL", 400, nil}
	ErrOpenFail       = &AppError{"OPEN_FAILED", "opening target failed", 500, nil}
)
