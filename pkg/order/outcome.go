package order

import "fmt"

// Outcome is the closed set of results a lookup can produce.
// Exactly one of NotConfigured, NotFound, TransportError, Found.
type Outcome interface {
	outcomeKind() Kind
}

// Kind identifies the variant of an Outcome.
type Kind string

const (
	KindNone           Kind = "none" // no lookup was attempted
	KindNotConfigured  Kind = "not_configured"
	KindNotFound       Kind = "not_found"
	KindTransportError Kind = "transport_error"
	KindFound          Kind = "found"
)

// NotConfigured means required platform credentials are absent. No request was made.
type NotConfigured struct{}

// NotFound means the platform answered but had no matching order.
type NotFound struct{ OrderNumber, Email string }

// TransportError means the platform could not be reached or answered unusably.
// StatusCode is 0 when no HTTP response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

// Found carries the normalized order.
type Found struct{ Record Record }

func (*NotConfigured) outcomeKind() Kind  { return KindNotConfigured }
func (*NotFound) outcomeKind() Kind       { return KindNotFound }
func (*TransportError) outcomeKind() Kind { return KindTransportError }
func (*Found) outcomeKind() Kind          { return KindFound }

// Error implements error so the variant can be logged or wrapped directly.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("order platform returned HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("order platform request failed: %v", e.Err)
	}
	return "order platform request failed"
}

func (e *TransportError) Unwrap() error { return e.Err }

// KindOf returns the variant name of o, or KindNone for a nil outcome.
func KindOf(o Outcome) Kind {
	if o == nil {
		return KindNone
	}
	return o.outcomeKind()
}
