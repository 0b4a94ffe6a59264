// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// Options configures how a Handle is constructed and validated. The zero
// value is usable: a stderr logger that drops everything below error level,
// and no search-path overrides.
type Options struct {
	// Logger receives low-volume diagnostic lines (a debug line when
	// NewFromFile maps a file). Validate itself never logs; validation
	// failures are returned as errors, not logged, so callers can decide
	// how noisy a malformed typelib should be.
	Logger log.Logger

	// SharedLibraryPaths is stored on the Handle as its shared-library
	// search path; nothing in this package reads it back.
	SharedLibraryPaths []string
}

func (o *Options) logger() *log.Helper {
	l := o.Logger
	if l == nil {
		l = log.NewStdLogger(os.Stderr)
		l = log.NewFilter(l, log.FilterLevel(log.LevelError))
	}
	return log.NewHelper(l)
}

// Handle is an opened, reference-counted view over a typelib's bytes. It
// does not validate anything at construction time beyond the cheap header
// checks in validateHeaderBasic and the scan of the optional sections
// table; call Validate for the full recursive pass.
type Handle struct {
	r      *reader
	header Header
	log    *log.Helper

	directoryIndexOffset uint32

	refs       int32
	mm         mmap.MMap // non-nil only for NewFromFile
	closed     bool
	searchPath []string
}

// NewFromBytes wraps an in-memory typelib image. data is not copied; the
// caller must not mutate it while the Handle is alive.
func NewFromBytes(data []byte, opts *Options) (*Handle, error) {
	if opts == nil {
		opts = &Options{}
	}
	r := newReader(data)
	header, err := r.validateHeaderBasic()
	if err != nil {
		return nil, wrapSection(err, "header", nil)
	}

	h := &Handle{
		r:          r,
		header:     header,
		log:        opts.logger(),
		refs:       1,
		searchPath: opts.SharedLibraryPaths,
	}
	if off, found, err := r.findSection(header.Sections, SectionDirectoryIndex); err != nil {
		return nil, wrapSection(err, "sections", nil)
	} else if found {
		h.directoryIndexOffset = off
	}
	return h, nil
}

// NewFromFile memory-maps path and wraps it exactly as NewFromBytes would.
// The mapping is released on Close.
func NewFromFile(path string, opts *Options) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("typelib: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("typelib: mmap %s: %w", path, err)
	}

	h, err := NewFromBytes([]byte(m), opts)
	if err != nil {
		m.Unmap()
		return nil, err
	}
	h.mm = m
	h.log.Debugw("msg", "mapped typelib", "path", path, "size", len(m))
	return h, nil
}

// Validate runs the full recursive structural pass: header, directory
// (which dispatches into every local record), and the attribute table's
// bounds. It is idempotent and safe to call more than once.
func (h *Handle) Validate() error {
	header, err := h.r.validateHeaderFull()
	if err != nil {
		return wrapSection(err, "header", nil)
	}

	v := newValidator(h.r, header)
	if err := v.validateDirectory(); err != nil {
		return wrapSection(err, "directory", &v.ctx)
	}
	if err := v.validateAttributes(); err != nil {
		return wrapSection(err, "attributes", &v.ctx)
	}
	return nil
}

// Ref increments the handle's reference count and returns it, mirroring
// the teacher's GI-style refcounted handle idiom.
func (h *Handle) Ref() *Handle {
	atomic.AddInt32(&h.refs, 1)
	return h
}

// Unref decrements the reference count, closing the handle once it drops
// to zero.
func (h *Handle) Unref() error {
	if atomic.AddInt32(&h.refs, -1) > 0 {
		return nil
	}
	return h.Close()
}

// Close releases the underlying memory mapping, if any. Closing a handle
// that was constructed from NewFromBytes is a no-op beyond marking it
// closed.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.mm != nil {
		return h.mm.Unmap()
	}
	return nil
}
