package interfaces

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
)

// ErrorKind classifies remote failures
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindAuth
	ErrorKindRateLimited
	ErrorKindServer
	ErrorKindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindAuth:
		return "auth"
	case ErrorKindRateLimited:
		return "rate_limited"
	case ErrorKindServer:
		return "server"
	case ErrorKindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// FetchError is returned by every IRemoteDataService operation
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewStatusError builds a FetchError from a non-200 HTTP status
func NewStatusError(statusCode int, body string) *FetchError {
	fe := &FetchError{StatusCode: statusCode}
	switch {
	case statusCode == http.StatusUnauthorized:
		fe.Kind = ErrorKindAuth
		fe.Message = "authentication failed"
	case statusCode == http.StatusTooManyRequests:
		fe.Kind = ErrorKindRateLimited
		fe.Message = "rate limit exceeded"
	case statusCode >= http.StatusInternalServerError:
		fe.Kind = ErrorKindServer
		fe.Message = "upstream server error"
	default:
		fe.Kind = ErrorKindUnknown
		fe.Message = fmt.Sprintf("request failed: %s", body)
	}
	return fe
}

// NewTransportError wraps an error returned by the HTTP transport
func NewTransportError(err error) *FetchError {
	if isNetworkError(err) {
		return &FetchError{Kind: ErrorKindNetwork, Message: "network error: " + err.Error(), Err: err}
	}
	return &FetchError{Kind: ErrorKindUnknown, Message: err.Error(), Err: err}
}

// ClassifyError maps any error to an ErrorKind
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if isNetworkError(err) {
		return ErrorKindNetwork
	}
	return ErrorKindUnknown
}

// IsCanceled reports whether err comes from a cancelled context.
// A cancelled fetch says nothing about connectivity.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func isNetworkError(err error) bool {
	if err == nil || IsCanceled(err) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// *url.Error is itself a net.Error, so judge what it wraps
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		err = urlErr.Err
		if errors.Is(err, io.EOF) {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
