package errs

import "net/http"

// ErrCode represents a classification of an error.
type ErrCode struct {
	value string
}

// The set of error codes the app layer can respond with.
var (
	OK                 = ErrCode{"ok"}
	InvalidArgument    = ErrCode{"invalid_argument"}
	NotFound           = ErrCode{"not_found"}
	AlreadyExists      = ErrCode{"already_exists"}
	PermissionDenied   = ErrCode{"permission_denied"}
	ResourceExhausted  = ErrCode{"resource_exhausted"}
	FailedPrecondition = ErrCode{"failed_precondition"}
	Aborted            = ErrCode{"aborted"}
	Internal           = ErrCode{"internal"}
	Unavailable        = ErrCode{"unavailable"}
	Unauthenticated    = ErrCode{"unauthenticated"}

	// InternalOnlyLog keeps the message out of the client response. The
	// middleware logs the full error and the client sees a generic 500.
	InternalOnlyLog = ErrCode{"internal_only_log"}
)

// String returns the name of the error code.
func (ec ErrCode) String() string {
	return ec.value
}

// Equal provides support for the go-cmp package and testing.
func (ec ErrCode) Equal(ec2 ErrCode) bool {
	return ec.value == ec2.value
}

// MarshalText provides support for logging and any marshal needs.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.value), nil
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	InvalidArgument:    http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	AlreadyExists:      http.StatusConflict,
	PermissionDenied:   http.StatusForbidden,
	ResourceExhausted:  http.StatusTooManyRequests,
	FailedPrecondition: http.StatusBadRequest,
	Aborted:            http.StatusConflict,
	Internal:           http.StatusInternalServerError,
	Unavailable:        http.StatusServiceUnavailable,
	Unauthenticated:    http.StatusUnauthorized,
	InternalOnlyLog:    http.StatusInternalServerError,
}
