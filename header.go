// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import "bytes"

// Field offsets within the 112-byte Header, this implementation's own wire
// contract (see SPEC_FULL.md §6.1 for why the exact packing is ours to
// choose).
const (
	offMagic           = 0
	offMajorVersion     = 16
	offMinorVersion     = 17
	offReserved         = 18
	offNEntries         = 20
	offNLocalEntries    = 22
	offDirectory        = 24
	offSize             = 28
	offNamespace        = 32
	offCPrefix          = 36
	offSharedLibrary    = 40
	offEntryBlobSize    = 44
	offFunctionBlobSize = 46
	offCallbackBlobSize = 48
	offSignalBlobSize   = 50
	offVFuncBlobSize    = 52
	offArgBlobSize      = 54
	offPropertyBlobSize = 56
	offFieldBlobSize    = 58
	offValueBlobSize    = 60
	offConstantBlobSize = 62
	offAttributeBlobSize = 64
	offSignatureBlobSize = 66
	offEnumBlobSize     = 68
	offStructBlobSize   = 70
	offObjectBlobSize   = 72
	offInterfaceBlobSize = 74
	offUnionBlobSize    = 76
	offSections         = 78
	offAttributes       = 82
	offNAttributes      = 86
)

// Header mirrors the fixed 112-byte typelib header.
type Header struct {
	MajorVersion  uint8
	MinorVersion  uint8
	NEntries      uint16
	NLocalEntries uint16
	Directory     uint32
	Size          uint32
	Namespace     uint32
	CPrefix       uint32
	SharedLibrary uint32

	EntryBlobSize    uint16
	FunctionBlobSize uint16
	CallbackBlobSize uint16
	SignalBlobSize   uint16
	VFuncBlobSize    uint16
	ArgBlobSize      uint16
	PropertyBlobSize uint16
	FieldBlobSize    uint16
	ValueBlobSize    uint16
	ConstantBlobSize uint16
	AttributeBlobSize uint16
	SignatureBlobSize uint16
	EnumBlobSize     uint16
	StructBlobSize   uint16
	ObjectBlobSize   uint16
	InterfaceBlobSize uint16
	UnionBlobSize    uint16

	Sections    uint32
	Attributes  uint32
	NAttributes uint32
}

// readHeader decodes the fixed header fields without validating them.
func (r *reader) readHeader() (Header, error) {
	if !r.fits(0, HeaderSize) {
		return Header{}, newErr(InvalidHeader, "the specified typelib length %d is too short", r.len())
	}
	var h Header
	var err error
	read8 := func(off uint32) uint8 { v, _ := r.uint8At(off); return v }
	read16 := func(off uint32) uint16 { v, _ := r.uint16At(off); return v }
	read32 := func(off uint32) uint32 { v, _ := r.uint32At(off); return v }

	h.MajorVersion = read8(offMajorVersion)
	h.MinorVersion = read8(offMinorVersion)
	h.NEntries = read16(offNEntries)
	h.NLocalEntries = read16(offNLocalEntries)
	h.Directory = read32(offDirectory)
	h.Size = read32(offSize)
	h.Namespace = read32(offNamespace)
	h.CPrefix = read32(offCPrefix)
	h.SharedLibrary = read32(offSharedLibrary)

	h.EntryBlobSize = read16(offEntryBlobSize)
	h.FunctionBlobSize = read16(offFunctionBlobSize)
	h.CallbackBlobSize = read16(offCallbackBlobSize)
	h.SignalBlobSize = read16(offSignalBlobSize)
	h.VFuncBlobSize = read16(offVFuncBlobSize)
	h.ArgBlobSize = read16(offArgBlobSize)
	h.PropertyBlobSize = read16(offPropertyBlobSize)
	h.FieldBlobSize = read16(offFieldBlobSize)
	h.ValueBlobSize = read16(offValueBlobSize)
	h.ConstantBlobSize = read16(offConstantBlobSize)
	h.AttributeBlobSize = read16(offAttributeBlobSize)
	h.SignatureBlobSize = read16(offSignatureBlobSize)
	h.EnumBlobSize = read16(offEnumBlobSize)
	h.StructBlobSize = read16(offStructBlobSize)
	h.ObjectBlobSize = read16(offObjectBlobSize)
	h.InterfaceBlobSize = read16(offInterfaceBlobSize)
	h.UnionBlobSize = read16(offUnionBlobSize)

	h.Sections = read32(offSections)
	h.Attributes = read32(offAttributes)
	h.NAttributes = read32(offNAttributes)

	return h, err
}

// validateHeaderBasic runs the cheap, context-free checks used at
// construction time: length, magic, major version, entry-count
// consistency, self-reported size, per-record-size agreement, and section
// alignment. It does not validate the namespace name (that needs the full
// pass, since it touches the name validator's identifier rules).
func (r *reader) validateHeaderBasic() (Header, error) {
	if r.len() < HeaderSize {
		return Header{}, newErr(InvalidHeader, "the specified typelib length %d is too short", r.len())
	}
	if !bytes.Equal(r.data[offMagic:offMagic+16], Magic[:]) {
		return Header{}, newErr(InvalidHeader, "invalid magic header")
	}

	h, err := r.readHeader()
	if err != nil {
		return Header{}, err
	}

	if h.MajorVersion != MajorVersion {
		return Header{}, newErr(InvalidHeader, "typelib version mismatch; expected %d, found %d", MajorVersion, h.MajorVersion)
	}
	if h.NEntries < h.NLocalEntries {
		return Header{}, newErr(InvalidHeader, "inconsistent entry counts")
	}
	if h.Size != r.len() {
		return Header{}, newErr(InvalidHeader, "typelib size %d does not match %d", h.Size, r.len())
	}

	if h.EntryBlobSize != DirEntrySize ||
		h.FunctionBlobSize != FunctionSize ||
		h.CallbackBlobSize != CallbackSize ||
		h.SignalBlobSize != SignalSize ||
		h.VFuncBlobSize != VFuncSize ||
		h.ArgBlobSize != ArgSize ||
		h.PropertyBlobSize != PropertySize ||
		h.FieldBlobSize != FieldSize ||
		h.ValueBlobSize != ValueSize ||
		h.ConstantBlobSize != ConstantSize ||
		h.AttributeBlobSize != AttributeSize ||
		h.SignatureBlobSize != SignatureSize ||
		h.EnumBlobSize != EnumSize ||
		h.StructBlobSize != StructSize ||
		h.ObjectBlobSize != ObjectSize ||
		h.InterfaceBlobSize != InterfaceSize ||
		h.UnionBlobSize != UnionSize {
		return Header{}, newErr(InvalidHeader, "blob size mismatch")
	}

	if !aligned4(h.Directory) {
		return Header{}, newErr(InvalidHeader, "misaligned directory")
	}
	if !aligned4(h.Attributes) {
		return Header{}, newErr(InvalidHeader, "misaligned attributes")
	}
	if h.Attributes == 0 && h.NAttributes > 0 {
		return Header{}, newErr(InvalidHeader, "wrong number of attributes")
	}

	return h, nil
}

// validateHeaderFull extends validateHeaderBasic with the namespace name
// check, which only the full validation pass requires.
func (r *reader) validateHeaderFull() (Header, error) {
	h, err := r.validateHeaderBasic()
	if err != nil {
		return Header{}, err
	}
	if _, err := r.validateName(h.Namespace, "namespace"); err != nil {
		return Header{}, err
	}
	return h, nil
}
