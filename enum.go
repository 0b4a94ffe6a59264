// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// EnumBlob layout (24 bytes):
//
//	0:  blobType     (1)
//	1:  flags        (1)
//	2:  pad          (2)
//	4:  name         (4)
//	8:  gtypeName    (4)
//	12: gtypeInit    (4)
//	16: errorDomain  (4) nonzero for an enum usable as a GError domain
//	20: nValues      (2)
//	22: nMethods     (2)
//
// Trailing arrays: nValues ValueBlobs, then nMethods FunctionBlobs.
const (
	enumGTypeNameOffset   = 8
	enumGTypeInitOffset   = 12
	enumErrorDomainOffset = 16
	enumNValuesOffset     = 20
	enumNMethodsOffset    = 22
)

func (v *validator) validateEnumBlob(offset uint32, kind BlobType) error {
	if !v.r.fits(offset, EnumSize) {
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

	gtypeNameOff, err := v.r.uint32At(offset + enumGTypeNameOffset)
	if err != nil {
		return err
	}
	gtypeInitOff, err := v.r.uint32At(offset + enumGTypeInitOffset)
	if err != nil {
		return err
	}
	if err := v.validateRegisteredTypePair(gtypeNameOff, gtypeInitOff); err != nil {
		return err
	}

	nValues, err := v.r.uint16At(offset + enumNValuesOffset)
	if err != nil {
		return err
	}
	nMethods, err := v.r.uint16At(offset + enumNMethodsOffset)
	if err != nil {
		return err
	}

	cursor := offset + EnumSize
	for i := uint16(0); i < nValues; i++ {
		// Duplicate enum values are permitted (SPEC_FULL.md §9); only the
		// name of each value is checked here.
		if err := v.validateValueBlob(cursor); err != nil {
			return err
		}
		cursor += ValueSize
	}
	for i := uint16(0); i < nMethods; i++ {
		if err := v.validateFunctionBlob(cursor, kind); err != nil {
			return err
		}
		cursor += FunctionSize
	}

	return nil
}

// errorDomainOf reads the error_domain field of the enum at offset, used by
// the by-error-domain lookup path.
func (v *validator) errorDomainOf(offset uint32) (uint32, error) {
	return v.r.uint32At(offset + enumErrorDomainOffset)
}
