// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// Fuzz is the legacy go-fuzz entry point: build with `go-fuzz-build`
// against this package and run the resulting corpus through `go-fuzz`. It
// is not imported by anything in this module; the external tool finds it
// by name and signature alone.
func Fuzz(data []byte) int {
	h, err := NewFromBytes(data, nil)
	if err != nil {
		return 0
	}
	if err := h.Validate(); err != nil {
		return 0
	}
	return 1
}
