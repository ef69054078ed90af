package errors

import (
	stderrors "errors"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
)

type CustomError struct {
	errType constant.ErrorType
	cause   error
}

// Error returns the cause message when one is attached, so remote failures
// reach the user verbatim.
func (c CustomError) Error() string {
	if c.cause != nil {
		return c.cause.Error()
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) Unwrap() error {
	return c.cause
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// Wrap attaches cause to a typed error.
func Wrap(errorType constant.ErrorType, cause error) CustomError {
	return CustomError{
		errType: errorType,
		cause:   cause,
	}
}

// Is reports whether err is a CustomError of the given type.
func Is(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.errType == errorType
}
