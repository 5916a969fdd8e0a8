// Package rerr defines the error handling used across the proxy, the
// client, and the shared RPC plumbing. It is adapted from upspin.io/errors:
// same *Error/E(args...)/Kind shape, generalized to the Kinds this system
// actually raises (spec.md §7) and taught how to become a gRPC status.
package rerr

import (
	"bytes"
	"fmt"
	"runtime"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error is the error type returned by every exported function in this
// module. Any field may be left at its zero value.
type Error struct {
	// Op is the operation being performed, usually the name of the method
	// or handler that failed.
	Op string
	// Kind classifies the error for callers that must act differently
	// depending on it (the gRPC status code in particular).
	Kind Kind
	// Err is the underlying error that triggered this one, if any.
	Err error
}

var _ error = (*Error)(nil)

// Separator joins a nested error onto its parent's message.
var Separator = ": "

// Kind classifies an Error.
type Kind uint8

// The kinds of error this system raises, per spec.md §7.
const (
	Other Kind = iota
	InvalidArgument
	Unauthenticated
	Internal
	Cancelled
	Io
	Config
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "error"
	case InvalidArgument:
		return "invalid argument"
	case Unauthenticated:
		return "unauthenticated"
	case Internal:
		return "internal error"
	case Cancelled:
		return "cancelled"
	case Io:
		return "I/O error"
	case Config:
		return "configuration error"
	}
	return "unknown error kind"
}

// code maps a Kind onto the gRPC status code a handler should return.
func (k Kind) code() codes.Code {
	switch k {
	case InvalidArgument:
		return codes.InvalidArgument
	case Unauthenticated:
		return codes.Unauthenticated
	case Internal, Config:
		return codes.Internal
	case Cancelled:
		return codes.Canceled
	case Io:
		return codes.Unavailable
	}
	return codes.Unknown
}

// E builds an *Error from its arguments. The type of each argument
// determines its meaning:
//
//	string      the operation being performed
//	rerr.Kind   the class of error
//	error       the underlying error that triggered this one
//
// If Kind is unset (or Other) and the wrapped error is itself an *Error,
// its Kind is promoted.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case *Error:
			cp := *arg
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			return Errorf("rerr.E: bad call from %s:%d: %v", file, line, args)
		}
	}
	if prev, ok := e.Err.(*Error); ok && e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}
	return e
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Kind != Other {
		pad(b, Separator)
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, Separator)
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func pad(b *bytes.Buffer, sep string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(sep)
}

// Errorf formats a plain error, suitable as the error-typed argument to E.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// KindOf reports the Kind of err, or Other if err is not (or does not wrap)
// an *Error.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind != Other {
				return e.Kind
			}
			err = e.Err
			continue
		}
		break
	}
	return Other
}

// GRPCStatus lets an *Error satisfy the interface google.golang.org/grpc's
// status package looks for, so "return someErr" from an RPC handler carries
// the right code automatically.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.code(), e.Error())
}
