package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUpstream           = errors.New("upstream request failed")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrWalletRejected     = errors.New("wallet rejected the request")
	ErrInvalidPayload     = errors.New("invalid signature payload")
)

// ValidationError reports a request the caller must fix. It never reaches
// the upstream.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UpstreamError reports a failure establishing or completing the upstream
// call. Err is kept for operators and must not be shown to callers.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return ErrUpstream.Error()
	}
	return ErrUpstream.Error() + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}
