// Package common defines the error taxonomy shared by every layer of the
// back office. Resource modules and the HTTP adapter only ever produce
// *common.Error values; controllers are the only layer that terminates an
// error by turning it into a user-visible notification.
package common

import "errors"

// HTTP status code constants.
const (
	// Success codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	// Client error codes (4xx)
	StatusBadRequest   = 400
	StatusUnauthorized = 401
	StatusForbidden    = 403
	StatusNotFound     = 404
	StatusConflict     = 409

	// Server error codes (5xx)
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

// User-facing messages (fr-FR, the locale the product ships in).
const (
	MsgOperationFailed   = "Une erreur est survenue"
	MsgLoadFailed        = "Impossible de charger les données"
	MsgLoginFailed       = "Échec de la connexion"
	MsgForbidden         = "Vous n'avez pas les permissions nécessaires"
	MsgSessionExpired    = "Votre session a expiré, veuillez vous reconnecter"
	MsgValidationError   = "Veuillez remplir tous les champs obligatoires"
	MsgExportFailed      = "Erreur lors de l'export PDF"
	MsgExportOK          = "Export PDF réussi"
	MsgConfirmRequired   = "Suppression non confirmée"
)

// ErrorCode identifies a class of failure.
type ErrorCode struct {
	Code        string // Short code (e.g. AUTH_001)
	Category    string // Broad category (e.g. Authentication)
	SubCategory string // Narrower classification (e.g. Token)
	Description string // Human description of the class
}

// Error codes, one per failure class of the taxonomy.
var (
	// Transport errors (NET_xxx): network unreachable, timeout, DNS.
	ErrCodeTransport = ErrorCode{
		Code:        "NET_001",
		Category:    "Transport",
		SubCategory: "Network",
		Description: "network failure or timeout reaching the backend",
	}

	// Authentication errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "missing, invalid or expired credential",
	}
	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "login rejected by the backend",
	}

	// Authorization errors (ROLE_xxx): short-circuited client side, no call issued.
	ErrCodeAuthRole = ErrorCode{
		Code:        "ROLE_001",
		Category:    "Authorization",
		SubCategory: "Role",
		Description: "caller role does not allow the operation",
	}

	// Validation errors (VAL_xxx): caught before any network call.
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "required field missing or malformed",
	}

	// Backend-reported errors (API_xxx): 4xx/5xx with a decoded payload.
	ErrCodeBackend = ErrorCode{
		Code:        "API_001",
		Category:    "Backend",
		SubCategory: "Response",
		Description: "backend answered with an error status",
	}

	// Internal errors (SYS_xxx)
	ErrCodeInternal = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "unexpected internal failure",
	}
)

// Error is the normalized error shape carried across layers: a human-readable
// message, an optional backend detail shown verbatim to the user when
// present, the HTTP status code when one applies, and the raw decoded
// backend payload.
type Error struct {
	Code         ErrorCode
	Message      string
	Detail       string // backend `detail`/`message` field, verbatim
	StatusCode   int
	ResponseData any // raw decoded backend payload, when any
}

// Error returns the message of the error.
func (e *Error) Error() string {
	return e.Message
}

// Is supports errors.Is against other *Error values by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Notification returns the text a user should see for this error: the
// backend detail verbatim when one was reported, the generic operation
// failure message otherwise.
func (e *Error) Notification() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return MsgOperationFailed
}

// NewError builds an *Error for the given class.
func NewError(code ErrorCode, message string, statusCode int, responseData any) *Error {
	return &Error{
		Code:         code,
		Message:      message,
		StatusCode:   statusCode,
		ResponseData: responseData,
	}
}

// Sentinel errors.
var (
	ErrTokenMissing = NewError(ErrCodeAuthToken, "Vous devez être connecté", StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Session invalide", StatusUnauthorized, nil)
	ErrForbidden    = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)
	ErrNotFound     = NewError(ErrCodeBackend, "Ressource introuvable", StatusNotFound, nil)
)

// AsError extracts a *Error from err, or wraps err as an internal error so
// callers always see the normalized shape.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewError(ErrCodeInternal, err.Error(), StatusInternalServerError, nil)
}

// NotificationFor is the error-to-text policy of the whole application:
// a backend detail is shown verbatim, anything else collapses to the
// generic failure message unless the error carries its own message.
func NotificationFor(err error) string {
	if err == nil {
		return ""
	}
	return AsError(err).Notification()
}
