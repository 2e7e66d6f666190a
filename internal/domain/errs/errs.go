// Package errs separates business declines from system faults.
//
// A Decline is an expected negative outcome (bad input, missing row, wrong
// state) that is reported to the caller as an unsuccessful result. Any other
// error returned by a usecase is a fault and must be logged.
package errs

import "errors"

type Kind string

const (
	KindInvalid      Kind = "invalid"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
)

type Decline struct {
	Kind    Kind
	Code    string
	Message string
}

func (d *Decline) Error() string { return d.Message }

// New declares a decline. Domain packages keep the returned pointer as a
// sentinel so callers can match it with errors.Is.
func New(kind Kind, code, message string) *Decline {
	return &Decline{Kind: kind, Code: code, Message: message}
}

// AsDecline reports whether err carries a decline anywhere in its chain.
func AsDecline(err error) (*Decline, bool) {
	var d *Decline
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

func IsDecline(err error) bool {
	_, ok := AsDecline(err)
	return ok
}
