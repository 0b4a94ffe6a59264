// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// SignalBlob layout (16 bytes):
//
//	0: blobType (1) (unused)
//	1: flags    (1) exactly one of runFirst/runLast/runCleanup set
//	2: pad      (2)
//	4: name     (4)
//	8: classClosure (2) 1-based vfunc index, 0 meaning none
//	10: pad     (2)
//	12: signature (4)
const (
	signalFlagsOffset        = 1
	signalNameOffset         = 4
	signalClassClosureOffset = 8
	signalSignatureOffset    = 12

	signalFlagRunFirst   = 1 << 0
	signalFlagRunLast    = 1 << 1
	signalFlagRunCleanup = 1 << 2
)

// validateSignalBlob validates the signal record at offset. nVFuncs bounds
// the class-closure index against the containing object or interface's
// vfunc count (invariant 10); pass 0 when no vfunc table applies.
func (v *validator) validateSignalBlob(offset uint32, nVFuncs uint16) error {
	if !v.r.fits(offset, SignalSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	nameOff, err := v.r.uint32At(offset + signalNameOffset)
	if err != nil {
		return err
	}
	name, err := v.r.validateName(nameOff, "signal")
	if err != nil {
		return err
	}
	v.ctx.push(name)
	defer v.ctx.pop()

	flags, err := v.r.uint8At(offset + signalFlagsOffset)
	if err != nil {
		return err
	}
	runFlags := flags & (signalFlagRunFirst | signalFlagRunLast | signalFlagRunCleanup)
	if runFlags == 0 || runFlags&(runFlags-1) != 0 {
		return newErr(InvalidBlob, "signal must have exactly one of run-first, run-last or run-cleanup set")
	}

	classClosure, err := v.r.uint16At(offset + signalClassClosureOffset)
	if err != nil {
		return err
	}
	if classClosure != 0 && classClosure > nVFuncs {
		return newErr(InvalidBlob, "invalid class closure index %d", classClosure)
	}

	signatureOff, err := v.r.uint32At(offset + signalSignatureOffset)
	if err != nil {
		return err
	}
	return v.validateSignatureBlob(signatureOff)
}
