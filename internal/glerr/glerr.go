package glerr

import (
	"fmt"
	"log/slog"
)

// Kind classifies a reported API error.
type Kind int

const (
	NoError Kind = iota
	InvalidEnum
	InvalidValue
	InvalidOperation
	// UnsupportedOperation marks topologies the hardware path cannot draw.
	// The draw entry logs it and skips the call without setting the error.
	UnsupportedOperation
	// NotImplemented is reported for attribute encodings with no converter.
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "no error"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case UnsupportedOperation:
		return "unsupported operation"
	case NotImplemented:
		return "not implemented"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error lets a Kind be matched with errors.Is.
func (k Kind) Error() string { return k.String() }

// Error is a Kind attached to the operation that raised it.
type Error struct {
	Kind Kind
	Op   string
}

// New returns an *Error for op.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

// Reporter is the error-reporting sink the pipeline writes to.
type Reporter interface {
	Report(kind Kind, op string)
}

// Sticky records the first unread error, GL style, and logs every report.
type Sticky struct {
	Logger *slog.Logger
	last   Kind
}

// Report implements Reporter.
func (s *Sticky) Report(kind Kind, op string) {
	if kind == NoError {
		return
	}
	if s.Logger != nil {
		s.Logger.Warn("gl error", "kind", kind.String(), "op", op)
	}
	if s.last == NoError {
		s.last = kind
	}
}

// Take returns the recorded error and clears it.
func (s *Sticky) Take() Kind {
	k := s.last
	s.last = NoError
	return k
}

// Peek returns the recorded error without clearing it.
func (s *Sticky) Peek() Kind { return s.last }
