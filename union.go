// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// UnionBlob layout (40 bytes):
//
//	0:  blobType          (1)
//	1:  flags             (1)
//	2:  pad               (2)
//	4:  name              (4)
//	8:  gtypeName         (4)
//	12: gtypeInit         (4)
//	16: size              (4)
//	20: nFields           (2)
//	22: nFunctions        (2)
//	24: discriminatorOffset (4) byte offset of the discriminator field, or 0
//	28: discriminatorType  (4) SimpleTypeBlob, only meaningful when
//	    discriminatorOffset != 0
//	32: pad               (8)
//
// Trailing arrays: nFields FieldBlobs, then nFunctions FunctionBlobs.
//
// Upstream's validator treats unions as effectively unchecked; this
// implementation applies the same struct-like checks it applies to
// StructBlob instead (SPEC_FULL.md §9).
const (
	unionGTypeNameOffset         = 8
	unionGTypeInitOffset         = 12
	unionNFieldsOffset             = 20
	unionNFunctionsOffset          = 22
	unionDiscriminatorOffsetOffset = 24
	unionDiscriminatorTypeOffset   = 28
)

func (v *validator) validateUnionBlob(offset uint32) error {
	if !v.r.fits(offset, UnionSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "union")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	gtypeNameOff, err := v.r.uint32At(offset + unionGTypeNameOffset)
	if err != nil {
		return err
	}
	gtypeInitOff, err := v.r.uint32At(offset + unionGTypeInitOffset)
	if err != nil {
		return err
	}
	if err := v.validateRegisteredTypePair(gtypeNameOff, gtypeInitOff); err != nil {
		return err
	}

	discOff, err := v.r.uint32At(offset + unionDiscriminatorOffsetOffset)
	if err != nil {
		return err
	}
	if discOff != 0 {
		if err := v.validateTypeBlob(offset+unionDiscriminatorTypeOffset, 0); err != nil {
			return err
		}
	}

	nFields, err := v.r.uint16At(offset + unionNFieldsOffset)
	if err != nil {
		return err
	}
	nFunctions, err := v.r.uint16At(offset + unionNFunctionsOffset)
	if err != nil {
		return err
	}

	cursor := offset + UnionSize
	for i := uint16(0); i < nFields; i++ {
		if err := v.validateFieldBlob(cursor); err != nil {
			return err
		}
		cursor += FieldSize
	}
	for i := uint16(0); i < nFunctions; i++ {
		if err := v.validateFunctionBlob(cursor, BlobTypeUnion); err != nil {
			return err
		}
		cursor += FunctionSize
	}

	return nil
}
