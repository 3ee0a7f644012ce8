package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an AppError into one of the service's failure families.
type Kind string

const (
	// KindValidation covers client input that breaks a business rule (e.g. duplicate email).
	KindValidation Kind = "validation"
	// KindAuth covers missing or rejected credentials and tokens.
	KindAuth Kind = "auth"
	// KindNotFound covers lookups with no match in the caller's scope.
	KindNotFound Kind = "not_found"
	// KindCrypto covers hashing and signing primitive failures.
	KindCrypto Kind = "crypto"
	// KindStorage covers persistence engine failures.
	KindStorage Kind = "storage"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind        // Failure family
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      Kind
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
		kind:      kind,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Kind returns the failure family.
func (e *BaseError) Kind() Kind {
	return e.kind
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      e.kind,
	}
}

// Is matches on the business error code so that WithDetails copies still compare equal to the
// predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Validation errors
	ErrDuplicateEmail = NewBaseError(
		KindValidation,
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"此電子郵件已被註冊",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// Authentication errors
	ErrMissingCredentials = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"MISSING_CREDENTIALS",
		"缺少授權憑證",
		"",
	)

	ErrInvalidToken = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"無效或已過期的權杖",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"電子郵件或密碼錯誤",
		"",
	)

	ErrLoginAccountNotFound = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"AUTH_ACCOUNT_NOT_FOUND",
		"找不到該帳號",
		"",
	)

	// Not-found errors
	ErrAccountNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"找不到該帳號",
		"",
	)

	ErrLinkNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"LINK_NOT_FOUND",
		"找不到該短網址",
		"",
	)

	// Crypto errors
	ErrPasswordHashFailed = NewBaseError(
		KindCrypto,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"密碼處理錯誤",
		"",
	)

	ErrMalformedPasswordHash = NewBaseError(
		KindCrypto,
		http.StatusInternalServerError,
		"MALFORMED_PASSWORD_HASH",
		"密碼處理錯誤",
		"",
	)

	ErrTokenSignFailed = NewBaseError(
		KindCrypto,
		http.StatusInternalServerError,
		"TOKEN_SIGN_FAILED",
		"權杖簽署失敗",
		"",
	)

	ErrQRCodeFailed = NewBaseError(
		KindCrypto,
		http.StatusInternalServerError,
		"QRCODE_FAILED",
		"QR Code 產生失敗",
		"",
	)

	// Storage errors
	ErrCodeSpaceExhausted = NewBaseError(
		KindStorage,
		http.StatusInternalServerError,
		"CODE_SPACE_EXHAUSTED",
		"無法產生唯一的短網址代碼",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		KindStorage,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"資料庫交易失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindStorage,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "資料庫執行失敗"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Kind returns KindStorage.
func (e *DatabaseExecuteError) Kind() Kind {
	return KindStorage
}

// KindOf returns the kind of the first AppError in err's chain, or KindStorage for errors the
// application did not classify.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindStorage
}
