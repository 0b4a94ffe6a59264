// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// PropertyBlob layout (16 bytes): common(8) + flags(1) + pad(3) + type(4).
const (
	propertyFlagsOffset = 8
	propertyTypeOffset  = 12

	propertyFlagReadable      = 1 << 0
	propertyFlagWritable      = 1 << 1
	propertyFlagConstruct     = 1 << 2
	propertyFlagConstructOnly = 1 << 3
)

func (v *validator) validatePropertyBlob(offset uint32) error {
	if !v.r.fits(offset, PropertySize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "property")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	return v.validateTypeBlob(offset+propertyTypeOffset, 0)
}
