// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// VFuncBlob layout (20 bytes):
//
//	0: blobType      (1) (unused)
//	1: flags         (1)
//	2: classClosure  (2) 1-based vfunc index, 0 meaning none
//	4: name          (4)
//	8: structOffset  (4)
//	12: invokerOffset (4)
//	16: signature     (4)
const (
	vfuncClassClosureOffset  = 2
	vfuncStructOffsetOffset  = 8
	vfuncInvokerOffsetOffset = 12
	vfuncSignatureOffset     = 16
)

// validateVFuncBlob validates the vfunc record at offset. nVFuncs bounds the
// class-closure index against the containing object or interface's own
// vfunc count (invariant 10), mirroring validateSignalBlob.
func (v *validator) validateVFuncBlob(offset uint32, nVFuncs uint16) error {
	if !v.r.fits(offset, VFuncSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + functionNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "vfunc")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	classClosure, err := v.r.uint16At(offset + vfuncClassClosureOffset)
	if err != nil {
		return err
	}
	if classClosure != 0 && classClosure > nVFuncs {
		return newErr(InvalidBlob, "invalid class closure index %d", classClosure)
	}

	signatureOff, err := v.r.uint32At(offset + vfuncSignatureOffset)
	if err != nil {
		return err
	}
	return v.validateSignatureBlob(signatureOff)
}
