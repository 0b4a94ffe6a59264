// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// Magic is the fixed 16-byte sentinel at offset 0 of every typelib.
var Magic = [16]byte{'G', 'O', 'B', 'J', 'E', 'C', 'T', '-', 'I', 'N', 'S', 'P', 'E', 'C', 'T', '\x00'}

// MajorVersion is the only typelib major version this implementation reads.
const MajorVersion = 4

// MaxNameLength is the upper bound (exclusive) on any identifier string,
// including the terminating NUL search window.
const MaxNameLength = 2048

// MaxTypeDepth bounds the recursion depth of nested type blobs (arrays of
// lists of arrays...) to defend against pathological typelibs.
const MaxTypeDepth = 64

// Fixed record sizes, in bytes. These are contract, not implementation
// detail: every header field declaring a per-record size must equal the
// corresponding constant here or the typelib is rejected.
const (
	HeaderSize         = 112
	DirEntrySize       = 12
	SimpleTypeSize     = 4
	ArgSize            = 16
	SignatureSize      = 8
	CommonSize         = 8
	FunctionSize       = 20
	CallbackSize       = 12
	InterfaceTypeSize  = 4
	ArrayTypeSize      = 8
	ParamTypeSize      = 4
	ErrorTypeSize      = 4
	ValueSize          = 12
	FieldSize          = 16
	RegisteredTypeSize = 16
	StructSize         = 32
	EnumSize           = 24
	PropertySize       = 16
	SignalSize         = 16
	VFuncSize          = 20
	ObjectSize         = 60
	InterfaceSize      = 40
	ConstantSize       = 24
	AttributeSize      = 12
	UnionSize          = 40
)

// BlobType identifies the kind of record a directory entry points to.
type BlobType uint8

// Blob kind tags. Order and values are part of the wire contract.
const (
	BlobTypeInvalid BlobType = iota
	BlobTypeFunction
	BlobTypeCallback
	BlobTypeStruct
	BlobTypeBoxed
	BlobTypeEnum
	BlobTypeFlags
	BlobTypeObject
	BlobTypeInterface
	BlobTypeConstant
	BlobTypeUnion
)

func (b BlobType) String() string {
	switch b {
	case BlobTypeInvalid:
		return "invalid"
	case BlobTypeFunction:
		return "function"
	case BlobTypeCallback:
		return "callback"
	case BlobTypeStruct:
		return "struct"
	case BlobTypeBoxed:
		return "boxed"
	case BlobTypeEnum:
		return "enum"
	case BlobTypeFlags:
		return "flags"
	case BlobTypeObject:
		return "object"
	case BlobTypeInterface:
		return "interface"
	case BlobTypeConstant:
		return "constant"
	case BlobTypeUnion:
		return "union"
	default:
		return "unknown"
	}
}

// IsRegisteredType reports whether b maps to a GType at runtime.
func (b BlobType) IsRegisteredType() bool {
	switch b {
	case BlobTypeBoxed, BlobTypeStruct, BlobTypeEnum, BlobTypeFlags, BlobTypeObject, BlobTypeInterface:
		return true
	default:
		return false
	}
}

// TypeTag identifies the basic (or complex-dispatch) kind of a type blob.
type TypeTag uint8

// Basic and complex type tags.
const (
	TypeTagVoid TypeTag = iota
	TypeTagBoolean
	TypeTagInt8
	TypeTagUint8
	TypeTagInt16
	TypeTagUint16
	TypeTagInt32
	TypeTagUint32
	TypeTagInt64
	TypeTagUint64
	TypeTagFloat
	TypeTagDouble
	TypeTagGType
	TypeTagUTF8
	TypeTagFilename
	TypeTagArray
	TypeTagInterface
	TypeTagGList
	TypeTagGSList
	TypeTagGHash
	TypeTagError
	TypeTagUnichar
)

func (t TypeTag) String() string {
	names := [...]string{
		"void", "boolean", "int8", "uint8", "int16", "uint16", "int32",
		"uint32", "int64", "uint64", "float", "double", "gtype", "utf8",
		"filename", "array", "interface", "glist", "gslist", "ghash",
		"error", "unichar",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// isBasic reports whether tag is one of the plain, non-dispatching basic
// types (everything except array/interface/glist/gslist/ghash/error, which
// only ever appear behind a complex type blob).
func (t TypeTag) isBasic() bool {
	switch t {
	case TypeTagArray, TypeTagInterface, TypeTagGList, TypeTagGSList, TypeTagGHash, TypeTagError:
		return false
	default:
		return t <= TypeTagUnichar
	}
}

// fixedWidth returns the fixed byte width of a basic type's value
// representation, and whether that tag has one at all (string-like and
// container tags do not).
func (t TypeTag) fixedWidth() (uint32, bool) {
	switch t {
	case TypeTagInt8, TypeTagUint8:
		return 1, true
	case TypeTagInt16, TypeTagUint16:
		return 2, true
	case TypeTagBoolean, TypeTagInt32, TypeTagUint32, TypeTagFloat, TypeTagUnichar:
		return 4, true
	case TypeTagInt64, TypeTagUint64, TypeTagDouble:
		return 8, true
	default:
		// GType (and every string-like/container tag) has no fixed-size
		// value representation to check against.
		return 0, false
	}
}

// SectionID identifies an entry in the header's optional sections table.
type SectionID uint16

// Known section ids.
const (
	SectionEnd SectionID = iota
	SectionDirectoryIndex
)

// sectionEntrySize is the byte size of one (id, offset) pair in the
// sections table.
const sectionEntrySize = 8
