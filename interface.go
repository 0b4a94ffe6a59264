// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// InterfaceBlob layout (40 bytes):
//
//	0:  blobType        (1)
//	1:  flags           (1)
//	2:  pad             (2)
//	4:  name            (4)
//	8:  gtypeName       (4)
//	12: gtypeInit       (4)
//	16: nPrerequisites  (2)
//	18: nProperties     (2)
//	20: nMethods        (2)
//	22: nSignals        (2)
//	24: nVFuncs         (2)
//	26: nConstants      (2)
//	28: pad             (12)
//
// Trailing arrays, in order: nPrerequisites directory indices (2 bytes
// each), nProperties PropertyBlobs, nMethods FunctionBlobs, nSignals
// SignalBlobs, nVFuncs VFuncBlobs, nConstants ConstantBlobs.
const (
	interfaceGTypeNameOffset  = 8
	interfaceGTypeInitOffset  = 12
	interfaceNPrereqsOffset   = 16
	interfaceNPropsOffset     = 18
	interfaceNMethodsOffset   = 20
	interfaceNSignalsOffset   = 22
	interfaceNVFuncsOffset    = 24
	interfaceNConstantsOffset = 26
)

func (v *validator) validateInterfaceBlob(offset uint32) error {
	if !v.r.fits(offset, InterfaceSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "interface")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	gtypeNameOff, err := v.r.uint32At(offset + interfaceGTypeNameOffset)
	if err != nil {
		return err
	}
	gtypeInitOff, err := v.r.uint32At(offset + interfaceGTypeInitOffset)
	if err != nil {
		return err
	}
	if err := v.validateRegisteredTypePair(gtypeNameOff, gtypeInitOff); err != nil {
		return err
	}

	nPrereqs, err := v.r.uint16At(offset + interfaceNPrereqsOffset)
	if err != nil {
		return err
	}
	nProps, err := v.r.uint16At(offset + interfaceNPropsOffset)
	if err != nil {
		return err
	}
	nMethods, err := v.r.uint16At(offset + interfaceNMethodsOffset)
	if err != nil {
		return err
	}
	nSignals, err := v.r.uint16At(offset + interfaceNSignalsOffset)
	if err != nil {
		return err
	}
	nVFuncs, err := v.r.uint16At(offset + interfaceNVFuncsOffset)
	if err != nil {
		return err
	}
	nConstants, err := v.r.uint16At(offset + interfaceNConstantsOffset)
	if err != nil {
		return err
	}

	cursor := offset + InterfaceSize
	for i := uint16(0); i < nPrereqs; i++ {
		idx, err := v.r.uint16At(cursor)
		if err != nil {
			return err
		}
		entry, err := v.getDirEntryChecked(idx)
		if err != nil {
			return err
		}
		if entry.Local && entry.BlobType != BlobTypeInterface && entry.BlobType != BlobTypeObject {
			return newErr(InvalidBlob, "prerequisite is not an interface or object")
		}
		cursor += 2
	}
	cursor += 2 * uint32(nPrereqs%2) // pad the 2-byte index list to a 4-byte boundary

	for i := uint16(0); i < nProps; i++ {
		if err := v.validatePropertyBlob(cursor); err != nil {
			return err
		}
		cursor += PropertySize
	}
	for i := uint16(0); i < nMethods; i++ {
		if err := v.validateFunctionBlob(cursor, BlobTypeInterface); err != nil {
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
