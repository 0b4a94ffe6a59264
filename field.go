// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// FieldBlob layout (16 bytes):
//
//	0:  blobType  (1) (unused, fields have no tag of their own)
//	1:  flags     (1) bit0 readable, bit1 writable, bit2 hasEmbeddedType
//	2:  pad       (2)
//	4:  name      (4)
//	8:  typeOrCallback (4) SimpleTypeBlob, or an inline CallbackBlob offset
//	    when hasEmbeddedType is set
//	12: offset    (4) byte offset of the field within its containing struct
const (
	fieldFlagsOffset    = 1
	fieldNameOffset     = 4
	fieldTypeOffset     = 8
	fieldFlagReadable      = 1 << 0
	fieldFlagWritable      = 1 << 1
	fieldFlagEmbeddedType  = 1 << 2
)

func (v *validator) validateFieldBlob(offset uint32) error {
	if !v.r.fits(offset, FieldSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + fieldNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "field")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	flags, err := v.r.uint8At(offset + fieldFlagsOffset)
	if err != nil {
		return err
	}
	if flags&fieldFlagEmbeddedType != 0 {
		callbackOff, err := v.r.uint32At(offset + fieldTypeOffset)
		if err != nil {
			return err
		}
		return v.validateCallbackBlob(callbackOff)
	}
	return v.validateTypeBlob(offset+fieldTypeOffset, 0)
}
