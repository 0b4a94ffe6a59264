// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// FunctionBlob layout (20 bytes):
//
//	0:  blobType   (1)
//	1:  reserved   (1)
//	2:  pad        (2)
//	4:  name       (4)
//	8:  symbol     (4)
//	12: flags      (1) bit0 constructor, bit1 setter, bit2 getter, bit3 wrapsVfunc
//	13: index      (1)
//	14: pad        (2)
//	16: signature  (4)
const (
	functionNameOffset      = 4
	functionSymbolOffset    = 8
	functionFlagsOffset     = 12
	functionIndexOffset     = 13
	functionSignatureOffset = 16

	functionFlagConstructor = 1 << 0
	functionFlagSetter      = 1 << 1
	functionFlagGetter      = 1 << 2
	functionFlagWrapsVFunc  = 1 << 3
)

// validateFunctionBlob validates the function record at offset. container
// is the blob type of the record the function is nested in (or
// BlobTypeInvalid for a top-level function), used to enforce invariant 7.
func (v *validator) validateFunctionBlob(offset uint32, container BlobType) error {
	if !v.r.fits(offset, FunctionSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	blobType, err := v.r.uint8At(offset)
	if err != nil {
		return err
	}
	if BlobType(blobType) != BlobTypeFunction {
		return newErr(InvalidBlob, "wrong blob type %d, expected function", blobType)
	}

	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "function")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	symbolOff, err := v.r.uint32At(offset + functionSymbolOffset)
	if err != nil {
		return err
	}
	if _, err := v.r.validateName(symbolOff, "function symbol"); err != nil {
		return err
	}

	flags, err := v.r.uint8At(offset + functionFlagsOffset)
	if err != nil {
		return err
	}
	index, err := v.r.uint8At(offset + functionIndexOffset)
	if err != nil {
		return err
	}

	isConstructor := flags&functionFlagConstructor != 0
	isSetter := flags&functionFlagSetter != 0
	isGetter := flags&functionFlagGetter != 0
	isWrapsVFunc := flags&functionFlagWrapsVFunc != 0

	if isConstructor {
		switch container {
		case BlobTypeBoxed, BlobTypeStruct, BlobTypeUnion, BlobTypeObject, BlobTypeInterface:
		default:
			return newErr(InvalidBlob, "constructor not allowed")
		}
	}

	if isSetter || isGetter || isWrapsVFunc {
		switch container {
		case BlobTypeObject, BlobTypeInterface:
		default:
			return newErr(InvalidBlob, "setter, getter or wrapper not allowed")
		}
	}

	if index != 0 && !(isSetter || isGetter || isWrapsVFunc) {
		return newErr(InvalidBlob, "must be setter, getter or wrapper")
	}

	signatureOff, err := v.r.uint32At(offset + functionSignatureOffset)
	if err != nil {
		return err
	}
	if err := v.validateSignatureBlob(signatureOff); err != nil {
		return err
	}

	if isConstructor {
		simple, err := v.returnTypeOf(signatureOff)
		if err != nil {
			return err
		}
		ifaceType, err := v.complexTagOf(simple)
		if err != nil {
			return err
		}
		if ifaceType != TypeTagInterface && (container == BlobTypeObject || container == BlobTypeInterface) {
			return newErr(InvalidData, "invalid return type '%s' for constructor '%s'", ifaceType, name)
		}
	}

	return nil
}

// complexTagOf returns the tag of the complex type blob a (non-basic)
// simpleType points at, or the word's own tag when it is a basic type; the
// caller decides whether that tag is acceptable.
func (v *validator) complexTagOf(s simpleType) (TypeTag, error) {
	if s.isBasicBlob() {
		return s.tag, nil
	}
	tagByte, err := v.r.uint8At(s.offset)
	if err != nil {
		return 0, err
	}
	return TypeTag(tagByte), nil
}
