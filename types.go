// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// simpleType is the decoded form of a 4-byte SimpleTypeBlob word. Its wire
// packing (this implementation's own, see SPEC_FULL.md §6.1) is:
//
//	bit 0:     reserved
//	bit 1:     reserved2
//	bits 2-7:  tag (6 bits), meaningful only when reserved == reserved2 == 0
//	bit 8:     pointer flag, meaningful only in the basic case
//	bits 9-31: zero in the basic case
//
// When reserved and reserved2 are not both zero, the entire 32-bit word
// is (offset<<2)|reservedBits: the low 2 bits still carry the reserved
// flags (at least one set, by construction) and the upper 30 bits carry a
// plain byte offset to a complex type blob. This keeps the two encodings
// unambiguous without requiring a separate discriminant byte.
type simpleType struct {
	reserved  bool
	reserved2 bool
	tag       TypeTag
	pointer   bool
	offset    uint32
}

func decodeSimpleType(raw uint32) simpleType {
	reserved := raw&1 != 0
	reserved2 := raw&2 != 0
	if !reserved && !reserved2 {
		return simpleType{
			tag:     TypeTag((raw >> 2) & 0x3F),
			pointer: raw&(1<<8) != 0,
		}
	}
	return simpleType{
		reserved:  reserved,
		reserved2: reserved2,
		offset:    raw >> 2,
	}
}

func (r *reader) simpleTypeAt(offset uint32) (simpleType, error) {
	raw, err := r.uint32At(offset)
	if err != nil {
		return simpleType{}, err
	}
	return decodeSimpleType(raw), nil
}

// isBasicBlob reports whether the word at offset is a basic (non-complex)
// type blob.
func (s simpleType) isBasicBlob() bool {
	return !s.reserved && !s.reserved2
}

// validateTypeBlob recursively validates the type blob at offset. depth
// guards against pathological nesting (arrays of lists of arrays...).
func (v *validator) validateTypeBlob(offset uint32, depth int) error {
	if depth > MaxTypeDepth {
		return newErr(InvalidBlob, "type nesting too deep")
	}

	simple, err := v.r.simpleTypeAt(offset)
	if err != nil {
		return err
	}

	if simple.isBasicBlob() {
		if !simple.tag.isBasic() {
			return newErr(InvalidBlob, "invalid non-basic tag %d in simple type", simple.tag)
		}
		if simple.tag >= TypeTagUTF8 && simple.tag != TypeTagUnichar && !simple.pointer {
			return newErr(InvalidBlob, "pointer type expected for tag %d", simple.tag)
		}
		return nil
	}

	return v.validateComplexTypeBlob(simple.offset, depth)
}

// validateComplexTypeBlob dispatches on the complex type blob's own tag
// byte (the first byte of every complex type blob, by convention).
func (v *validator) validateComplexTypeBlob(offset uint32, depth int) error {
	tagByte, err := v.r.uint8At(offset)
	if err != nil {
		return err
	}
	tag := TypeTag(tagByte)

	switch tag {
	case TypeTagArray:
		return v.validateArrayTypeBlob(offset, depth)
	case TypeTagInterface:
		return v.validateInterfaceTypeBlob(offset)
	case TypeTagGList, TypeTagGSList:
		return v.validateParamTypeBlob(offset, depth, 1)
	case TypeTagGHash:
		return v.validateParamTypeBlob(offset, depth, 2)
	case TypeTagError:
		return v.validateErrorTypeBlob(offset)
	default:
		return newErr(InvalidBlob, "wrong tag in complex type")
	}
}

// ArrayTypeBlob layout: tag(1) + pad(3) + element SimpleTypeBlob(4) = 8 bytes.
const arrayTypeElementOffset = 4

func (v *validator) validateArrayTypeBlob(offset uint32, depth int) error {
	if !v.r.fits(offset, ArrayTypeSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	return v.validateTypeBlob(offset+arrayTypeElementOffset, depth+1)
}

// InterfaceTypeBlob layout: tag(1) + pad(1) + interface index(2) = 4 bytes.
const interfaceTypeIndexOffset = 2

func (v *validator) validateInterfaceTypeBlob(offset uint32) error {
	if !v.r.fits(offset, InterfaceTypeSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	idx, err := v.r.uint16At(offset + interfaceTypeIndexOffset)
	if err != nil {
		return err
	}
	entry, err := v.getDirEntryChecked(idx)
	if err != nil {
		return err
	}
	if entry.BlobType == BlobTypeInvalid && !entry.Local {
		// Foreign entry: no further structural check is performed here.
		return nil
	}
	return nil
}

// ParamTypeBlob layout: tag(1) + pointerFlag(1) + nTypes(2) + params... The
// fixed header is 4 bytes; each parameter is a trailing SimpleTypeBlob.
const (
	paramTypePointerOffset = 1
	paramTypeNTypesOffset  = 2
)

func (v *validator) validateParamTypeBlob(offset uint32, depth int, nParams int) error {
	if !v.r.fits(offset, ParamTypeSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	pointerByte, err := v.r.uint8At(offset + paramTypePointerOffset)
	if err != nil {
		return err
	}
	if pointerByte == 0 {
		return newErr(InvalidBlob, "pointer type expected for parameterised type")
	}
	nTypes, err := v.r.uint16At(offset + paramTypeNTypesOffset)
	if err != nil {
		return err
	}
	if int(nTypes) != nParams {
		return newErr(InvalidBlob, "parameter type number mismatch")
	}
	for i := 0; i < nParams; i++ {
		paramOffset := offset + ParamTypeSize + uint32(i)*SimpleTypeSize
		if err := v.validateTypeBlob(paramOffset, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// ErrorTypeBlob layout: tag(1) + pointerFlag(1) + pad(2) = 4 bytes.
const errorTypePointerOffset = 1

func (v *validator) validateErrorTypeBlob(offset uint32) error {
	if !v.r.fits(offset, ErrorTypeSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	pointerByte, err := v.r.uint8At(offset + errorTypePointerOffset)
	if err != nil {
		return err
	}
	if pointerByte == 0 {
		return newErr(InvalidBlob, "pointer type expected for error type")
	}
	return nil
}
