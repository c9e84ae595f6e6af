// Package errors is a drop-in replacement for the standard library errors package that attaches slog attributes
// and the source location to errors so that they can be logged with context far away from where they happened.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrUnsupported mirrors [errors.ErrUnsupported].
var ErrUnsupported = errors.ErrUnsupported

type annotatedError struct {
	err   error
	msg   string
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerPC returns the program counter of the function that called the exported constructor.
func callerPC() uintptr {
	var pcs [1]uintptr
	// Skip runtime.Callers, callerPC and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return pcs[0]
}

// New returns an error carrying the source location of the caller.
func New(text string, attrs ...slog.Attr) error {
	return &annotatedError{err: nil, msg: text, attrs: attrs, pc: callerPC()}
}

// NewSentinel returns a plain error meant to be declared at package level and compared with [Is].
//
// Sentinels don't carry a source location because it would always point to the package initialisation.
func NewSentinel(text string) error {
	return errors.New(text) //nolint:err113 // this is the sentinel constructor.
}

// Wrap annotates err with msg and attrs. The source location of the caller is recorded.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{err: err, msg: msg, attrs: attrs, pc: callerPC()}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// DecoratePanic converts a recovered panic value into an error pointing at the line that panicked.
func DecoratePanic(excp any) error {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and DecoratePanic.
	frames := runtime.CallersFrames(pcs[:n])
	var pc uintptr
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			pc = frame.PC
			break
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	return &annotatedError{err: nil, msg: fmt.Sprintf("panic: %v", excp), attrs: nil, pc: pc}
}

// SlogError returns a slog attribute describing err including all annotations in the chain and the source
// location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []any
		pc          uintptr
	)
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		var ae *annotatedError
		if !errors.As(cur, &ae) {
			break
		}
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.pc != 0 {
			pc = ae.pc
		}
		cur = ae
	}

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source := sourceLocation(pc); source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	file := frame.File
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}
	return fmt.Sprintf("%s:%d %s", file, frame.Line, frame.Function)
}
