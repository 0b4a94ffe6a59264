// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// ConstantBlob layout (24 bytes): common(8) + type SimpleTypeBlob(4) +
// size(4) + offset(4) + reserved(4).
const (
	constantTypeOffset   = 8
	constantSizeOffset   = 12
	constantOffsetOffset = 16
)

func (v *validator) validateConstantBlob(offset uint32) error {
	if !v.r.fits(offset, ConstantSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	blobType, err := v.r.uint8At(offset)
	if err != nil {
		return err
	}
	if BlobType(blobType) != BlobTypeConstant {
		return newErr(InvalidBlob, "wrong blob type %d, expected constant", blobType)
	}

	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "constant")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	if err := v.validateTypeBlob(offset+constantTypeOffset, 0); err != nil {
		return err
	}

	simple, err := v.r.simpleTypeAt(offset + constantTypeOffset)
	if err != nil {
		return err
	}
	size, err := v.r.uint32At(offset + constantSizeOffset)
	if err != nil {
		return err
	}
	valueOffset, err := v.r.uint32At(offset + constantOffsetOffset)
	if err != nil {
		return err
	}

	if simple.isBasicBlob() {
		if width, ok := simple.tag.fixedWidth(); ok && size != width {
			return newErr(InvalidBlob, "constant size mismatch for type '%s'", simple.tag)
		}
	}
	if !aligned4(valueOffset) {
		return newErr(InvalidBlob, "misaligned constant value offset %d", valueOffset)
	}
	if !v.r.fits(valueOffset, size) {
		return newErr(InvalidData, "the buffer is too short")
	}

	return nil
}
