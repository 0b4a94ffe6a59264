// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// ObjectBlob layout (60 bytes):
//
//	0:  blobType       (1)
//	1:  flags          (1) bit0 abstract, bit1 fundamental
//	2:  pad            (2)
//	4:  name           (4)
//	8:  gtypeName      (4)
//	12: gtypeInit      (4)
//	16: parent         (2) directory index, 0 = none
//	18: gtypeStruct    (2) directory index of the local class-struct, 0 = none
//	20: nInterfaces    (2)
//	22: nFields        (2)
//	24: nProperties    (2)
//	26: nMethods       (2)
//	28: nSignals       (2)
//	30: nVFuncs        (2)
//	32: nConstants     (2)
//	34: nFieldCallbacks (2) count of nFields entries with an embedded callback
//	36: pad            (24)
//
// Trailing arrays, in order: nInterfaces directory indices (2 bytes each),
// nFields FieldBlobs, nProperties PropertyBlobs, nMethods FunctionBlobs,
// nSignals SignalBlobs, nVFuncs VFuncBlobs, nConstants ConstantBlobs.
const (
	objectGTypeNameOffset       = 8
	objectGTypeInitOffset       = 12
	objectParentOffset          = 16
	objectGTypeStructOffset     = 18
	objectNInterfacesOffset     = 20
	objectNFieldsOffset         = 22
	objectNPropertiesOffset     = 24
	objectNMethodsOffset        = 26
	objectNSignalsOffset        = 28
	objectNVFuncsOffset         = 30
	objectNConstantsOffset      = 32
	objectNFieldCallbacksOffset = 34
)

func (v *validator) validateObjectBlob(offset uint32) error {
	if !v.r.fits(offset, ObjectSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "object")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	gtypeNameOff, err := v.r.uint32At(offset + objectGTypeNameOffset)
	if err != nil {
		return err
	}
	gtypeInitOff, err := v.r.uint32At(offset + objectGTypeInitOffset)
	if err != nil {
		return err
	}
	if err := v.validateRegisteredTypePair(gtypeNameOff, gtypeInitOff); err != nil {
		return err
	}

	parent, err := v.r.uint16At(offset + objectParentOffset)
	if err != nil {
		return err
	}
	if parent != 0 {
		entry, err := v.getDirEntryChecked(parent)
		if err != nil {
			return err
		}
		if entry.Local && entry.BlobType != BlobTypeObject {
			return newErr(InvalidBlob, "parent is not an object")
		}
	}

	gtypeStruct, err := v.r.uint16At(offset + objectGTypeStructOffset)
	if err != nil {
		return err
	}
	if gtypeStruct != 0 {
		entry, err := v.getDirEntryChecked(gtypeStruct)
		if err != nil {
			return err
		}
		if !entry.Local || (entry.BlobType != BlobTypeStruct && entry.BlobType != BlobTypeBoxed) {
			return newErr(InvalidBlob, "class struct is not a local struct")
		}
	}

	nInterfaces, err := v.r.uint16At(offset + objectNInterfacesOffset)
	if err != nil {
		return err
	}
	nFields, err := v.r.uint16At(offset + objectNFieldsOffset)
	if err != nil {
		return err
	}
	nProperties, err := v.r.uint16At(offset + objectNPropertiesOffset)
	if err != nil {
		return err
	}
	nMethods, err := v.r.uint16At(offset + objectNMethodsOffset)
	if err != nil {
		return err
	}
	nSignals, err := v.r.uint16At(offset + objectNSignalsOffset)
	if err != nil {
		return err
	}
	nVFuncs, err := v.r.uint16At(offset + objectNVFuncsOffset)
	if err != nil {
		return err
	}
	nConstants, err := v.r.uint16At(offset + objectNConstantsOffset)
	if err != nil {
		return err
	}
	nFieldCallbacks, err := v.r.uint16At(offset + objectNFieldCallbacksOffset)
	if err != nil {
		return err
	}

	cursor := offset + ObjectSize
	for i := uint16(0); i < nInterfaces; i++ {
		idx, err := v.r.uint16At(cursor)
		if err != nil {
			return err
		}
		entry, err := v.getDirEntryChecked(idx)
		if err != nil {
			return err
		}
		if entry.Local && entry.BlobType != BlobTypeInterface {
			return newErr(InvalidBlob, "interface entry is not an interface")
		}
		cursor += 2
	}
	cursor += 2 * uint32(nInterfaces%2) // pad the 2-byte index list to a 4-byte boundary

	callbackFields := uint16(0)
	for i := uint16(0); i < nFields; i++ {
		if err := v.validateFieldBlob(cursor); err != nil {
			return err
		}
		flags, err := v.r.uint8At(cursor + fieldFlagsOffset)
		if err != nil {
			return err
		}
		if flags&fieldFlagEmbeddedType != 0 {
			callbackFields++
		}
		cursor += FieldSize
	}
	if callbackFields != nFieldCallbacks {
		return newErr(InvalidBlob, "field callback count mismatch")
	}

	for i := uint16(0); i < nProperties; i++ {
		if err := v.validatePropertyBlob(cursor); err != nil {
			return err
		}
		cursor += PropertySize
	}
	for i := uint16(0); i < nMethods; i++ {
		if err := v.validateFunctionBlob(cursor, BlobTypeObject); err != nil {
			return err
		}
		cursor += FunctionSize
	}
	for i := uint16(0); i < nSignals; i++ {
		if err := v.validateSignalBlob(cursor, nVFuncs); err != nil {
			return err
		}
		cursor += SignalSize
	}
	for i := uint16(0); i < nVFuncs; i++ {
		if err := v.validateVFuncBlob(cursor, nVFuncs); err != nil {
			return err
		}
		cursor += VFuncSize
	}
	for i := uint16(0); i < nConstants; i++ {
		if err := v.validateConstantBlob(cursor); err != nil {
			return err
		}
		cursor += ConstantSize
	}

	return nil
}
