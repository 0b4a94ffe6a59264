// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import "fmt"

// ErrorKind classifies a validation failure.
type ErrorKind int

// Error kinds, per the typelib error taxonomy.
const (
	InvalidHeader ErrorKind = iota
	InvalidDirectory
	InvalidEntry
	InvalidBlob
	InvalidData
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidDirectory:
		return "InvalidDirectory"
	case InvalidEntry:
		return "InvalidEntry"
	case InvalidBlob:
		return "InvalidBlob"
	case InvalidData:
		return "InvalidData"
	default:
		return "Unknown"
	}
}

// Error is a validation failure, carrying a kind and a human-readable
// message. Validate() wraps it with a section label and, if non-empty, the
// context stack before returning it to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newErr(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapSection prefixes err's message with "In <section>" and, if ctx is
// non-empty, "(Context: a/b/c)", matching the reference validator's
// prefix_with_context.
func wrapSection(err error, section string, ctx *contextStack) error {
	te, ok := err.(*Error)
	if !ok {
		return err
	}
	if ctx == nil || ctx.empty() {
		te.Message = fmt.Sprintf("In %s: %s", section, te.Message)
		return te
	}
	te.Message = fmt.Sprintf("In %s (Context: %s): %s", section, ctx.String(), te.Message)
	return te
}
