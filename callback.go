// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// CallbackBlob layout (12 bytes): common(8) + signature(4).
const callbackSignatureOffset = 8

func (v *validator) validateCallbackBlob(offset uint32) error {
	if !v.r.fits(offset, CallbackSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	blobType, err := v.r.uint8At(offset)
	if err != nil {
		return err
	}
	if BlobType(blobType) != BlobTypeCallback {
		return newErr(InvalidBlob, "wrong blob type %d, expected callback", blobType)
	}

	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "callback")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	signatureOff, err := v.r.uint32At(offset + callbackSignatureOffset)
	if err != nil {
		return err
	}
	return v.validateSignatureBlob(signatureOff)
}
