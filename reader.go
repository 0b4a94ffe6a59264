// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import (
	"bytes"
	"encoding/binary"
)

// reader is a bounds-checked, read-only view over a typelib's byte buffer.
// Every read of N bytes verifies offset+N <= len(data) before touching the
// slice. Strings are borrowed from the buffer; callers never mutate them.
type reader struct {
	data []byte
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) len() uint32 {
	return uint32(len(r.data))
}

// fits reports whether a record of size n fits at offset without overflow.
func (r *reader) fits(offset, n uint32) bool {
	end := offset + n
	if end < offset { // overflow
		return false
	}
	return end <= r.len()
}

func (r *reader) uint8At(offset uint32) (uint8, error) {
	if !r.fits(offset, 1) {
		return 0, newErr(InvalidData, "the buffer is too short")
	}
	return r.data[offset], nil
}

func (r *reader) uint16At(offset uint32) (uint16, error) {
	if !r.fits(offset, 2) {
		return 0, newErr(InvalidData, "the buffer is too short")
	}
	return binary.LittleEndian.Uint16(r.data[offset:]), nil
}

func (r *reader) uint32At(offset uint32) (uint32, error) {
	if !r.fits(offset, 4) {
		return 0, newErr(InvalidData, "the buffer is too short")
	}
	return binary.LittleEndian.Uint32(r.data[offset:]), nil
}

func (r *reader) uint64At(offset uint32) (uint64, error) {
	if !r.fits(offset, 8) {
		return 0, newErr(InvalidData, "the buffer is too short")
	}
	return binary.LittleEndian.Uint64(r.data[offset:]), nil
}

func (r *reader) bytesAt(offset, n uint32) ([]byte, error) {
	if !r.fits(offset, n) {
		return nil, newErr(InvalidData, "the buffer is too short")
	}
	return r.data[offset : offset+n], nil
}

// stringAt returns the NUL-terminated string starting at offset, without
// bounding its length (the name validator applies the 2048-byte cap
// separately). It fails only if offset itself is out of range.
func (r *reader) stringAt(offset uint32) (string, error) {
	if offset > r.len() {
		return "", newErr(InvalidData, "buffer is too short while looking up name")
	}
	rest := r.data[offset:]
	n := bytes.IndexByte(rest, 0)
	if n < 0 {
		return string(rest), nil
	}
	return string(rest[:n]), nil
}

// aligned4 reports whether offset is 4-byte aligned.
func aligned4(offset uint32) bool {
	return offset%4 == 0
}

// align4 rounds offset up to the next 4-byte boundary.
func align4(offset uint32) uint32 {
	return (offset + 3) &^ 3
}
