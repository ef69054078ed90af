package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthenticated
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrRemoteRequestFailed
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthenticated:     "please sign in",
	ErrCredentialExists:    "email already exists",
	ErrInvalidPassword:     "password invalid",
	ErrForbidden:           "forbidden",
	ErrRemoteRequestFailed: "remote request failed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthenticated:     http.StatusUnauthorized,
	ErrCredentialExists:    http.StatusBadRequest,
	ErrInvalidPassword:     http.StatusBadRequest,
	ErrForbidden:           http.StatusForbidden,
	ErrRemoteRequestFailed: http.StatusBadGateway,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthenticated:     "0004",
	ErrCredentialExists:    "0005",
	ErrInvalidPassword:     "0006",
	ErrForbidden:           "0007",
	ErrRemoteRequestFailed: "0008",
}
