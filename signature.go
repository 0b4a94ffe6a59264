// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// SignatureBlob layout: returnType SimpleTypeBlob(4) + nArguments(2) +
// reserved(2) = 8 bytes.
const (
	signatureReturnTypeOffset = 0
	signatureNArgumentsOffset = 4
)

// ArgBlob layout: name offset(4) + argType SimpleTypeBlob(4) + reserved(8)
// = 16 bytes.
const (
	argNameOffset = 0
	argTypeOffset = 4
)

// validateSignatureBlob validates the return type (if present) and every
// argument of the signature at offset, in ascending argument order.
func (v *validator) validateSignatureBlob(offset uint32) error {
	if !v.r.fits(offset, SignatureSize) {
		return newErr(InvalidData, "the buffer is too short")
	}

	returnRaw, err := v.r.uint32At(offset + signatureReturnTypeOffset)
	if err != nil {
		return err
	}
	if returnRaw != 0 {
		if err := v.validateTypeBlob(offset+signatureReturnTypeOffset, 0); err != nil {
			return err
		}
	}

	nArgs, err := v.r.uint16At(offset + signatureNArgumentsOffset)
	if err != nil {
		return err
	}
	for i := uint16(0); i < nArgs; i++ {
		argOffset := offset + SignatureSize + uint32(i)*ArgSize
		if err := v.validateArgBlob(argOffset); err != nil {
			return err
		}
	}
	return nil
}

// returnTypeOf reads the return-type SimpleTypeBlob of the signature at
// offset, failing if no return type is present.
func (v *validator) returnTypeOf(signatureOffset uint32) (simpleType, error) {
	if !v.r.fits(signatureOffset, SignatureSize) {
		return simpleType{}, newErr(InvalidData, "the buffer is too short")
	}
	raw, err := v.r.uint32At(signatureOffset + signatureReturnTypeOffset)
	if err != nil {
		return simpleType{}, err
	}
	if raw == 0 {
		return simpleType{}, newErr(InvalidData, "no return type found in signature")
	}
	return decodeSimpleType(raw), nil
}

func (v *validator) validateArgBlob(offset uint32) error {
	if !v.r.fits(offset, ArgSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + argNameOffset)
	if err != nil {
		return err
	}
	if _, err := v.r.validateName(nameOff, "argument"); err != nil {
		return err
	}
	return v.validateTypeBlob(offset+argTypeOffset, 0)
}
