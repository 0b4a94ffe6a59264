// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// StructBlob layout (32 bytes):
//
//	0:  blobType   (1)
//	1:  flags      (1)
//	2:  pad        (2)
//	4:  name       (4)
//	8:  gtypeName  (4)
//	12: gtypeInit  (4)
//	16: size       (4)
//	20: alignment  (4)
//	24: nFields    (2)
//	26: nMethods   (2)
//	28: pad        (4)
//
// Trailing arrays: nFields FieldBlobs, then nMethods FunctionBlobs.
const (
	structGTypeNameOffset = 8
	structGTypeInitOffset = 12
	structNFieldsOffset   = 24
	structNMethodsOffset  = 26
)

func (v *validator) validateStructBlob(offset uint32, kind BlobType) error {
	if !v.r.fits(offset, StructSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, kind.String())
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	gtypeNameOff, err := v.r.uint32At(offset + structGTypeNameOffset)
	if err != nil {
		return err
	}
	gtypeInitOff, err := v.r.uint32At(offset + structGTypeInitOffset)
	if err != nil {
		return err
	}
	if err := v.validateRegisteredTypePair(gtypeNameOff, gtypeInitOff); err != nil {
		return err
	}

	nFields, err := v.r.uint16At(offset + structNFieldsOffset)
	if err != nil {
		return err
	}
	nMethods, err := v.r.uint16At(offset + structNMethodsOffset)
	if err != nil {
		return err
	}

	cursor := offset + StructSize
	for i := uint16(0); i < nFields; i++ {
		if err := v.validateFieldBlob(cursor); err != nil {
			return err
		}
		cursor += FieldSize
	}
	for i := uint16(0); i < nMethods; i++ {
		if err := v.validateFunctionBlob(cursor, kind); err != nil {
			return err
		}
		cursor += FunctionSize
	}

	return nil
}
