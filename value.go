// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// ValueBlob layout (12 bytes): common(8) + value int32(4). The numeric
// value itself carries no further validity constraint (enum values may
// repeat, see SPEC_FULL.md §9).
func (v *validator) validateValueBlob(offset uint32) error {
	if !v.r.fits(offset, ValueSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	if _, err := v.r.validateName(nameOff, "value"); err != nil {
		return err
	}
	return nil
}
