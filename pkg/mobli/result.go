package mobli

import (
	"errors"
	"net/url"
)

// ResultKind classifies the outcome of an asynchronous request.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultMalformedRequest
	ResultNotFound
	ResultTransportError
	ResultVendorError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultMalformedRequest:
		return "malformed_request"
	case ResultNotFound:
		return "not_found"
	case ResultTransportError:
		return "transport_error"
	case ResultVendorError:
		return "vendor_error"
	default:
		return "unknown"
	}
}

// Result is the single completion value of an asynchronous request.
type Result struct {
	// State is the correlation value passed to Dispatch, returned untouched
	State any

	// Body is the raw response body, set only on success
	Body string

	// Err is nil on success, otherwise one of the request failure types
	Err error
}

// Kind reports which variant the result holds. Errors outside the request
// failure taxonomy are reported as ResultTransportError.
func (r Result) Kind() ResultKind {
	if r.Err == nil {
		return ResultSuccess
	}

	var (
		malformed *MalformedRequestError
		notFound  *NotFoundError
		vendor    *VendorError
	)
	switch {
	case errors.As(r.Err, &malformed):
		return ResultMalformedRequest
	case errors.As(r.Err, &notFound):
		return ResultNotFound
	case errors.As(r.Err, &vendor):
		return ResultVendorError
	default:
		return ResultTransportError
	}
}

// Listener receives the Result of an asynchronous request. It runs on a
// dispatcher worker, never on the goroutine that called Dispatch.
type Listener func(Result)

// DialogKind classifies the outcome of a login dialog.
type DialogKind int

const (
	DialogComplete DialogKind = iota
	DialogVendorError
	DialogFailed
	DialogCanceled
)

func (k DialogKind) String() string {
	switch k {
	case DialogComplete:
		return "complete"
	case DialogVendorError:
		return "vendor_error"
	case DialogFailed:
		return "failed"
	case DialogCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// DialogResult is the single completion value of a login dialog.
type DialogResult struct {
	// Values holds the fields handed back by the redirect, set on completion
	Values url.Values

	// Err is nil on completion, ErrCanceled on cancel, otherwise a
	// *VendorError or *DialogError
	Err error
}

// Kind reports which variant the result holds.
func (r DialogResult) Kind() DialogKind {
	if r.Err == nil {
		return DialogComplete
	}
	if errors.Is(r.Err, ErrCanceled) {
		return DialogCanceled
	}

	var vendor *VendorError
	if errors.As(r.Err, &vendor) {
		return DialogVendorError
	}
	return DialogFailed
}

// DialogListener receives the DialogResult of a login flow.
type DialogListener func(DialogResult)
