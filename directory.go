// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// DirEntry mirrors one 12-byte directory entry.
type DirEntry struct {
	BlobType BlobType
	Local    bool
	Name     uint32
	// Offset is the local blob offset when Local is true, and the
	// namespace-name string offset (for a foreign cross-reference) when
	// Local is false.
	Offset uint32
}

const (
	dirEntryBlobTypeOffset = 0
	dirEntryLocalOffset    = 1
	dirEntryNameOffset     = 4
	dirEntryOffsetOffset   = 8
)

func (r *reader) dirEntryAt(offset uint32) (DirEntry, error) {
	if !r.fits(offset, DirEntrySize) {
		return DirEntry{}, newErr(InvalidData, "the buffer is too short")
	}
	blobType, err := r.uint8At(offset + dirEntryBlobTypeOffset)
	if err != nil {
		return DirEntry{}, err
	}
	localByte, err := r.uint8At(offset + dirEntryLocalOffset)
	if err != nil {
		return DirEntry{}, err
	}
	name, err := r.uint32At(offset + dirEntryNameOffset)
	if err != nil {
		return DirEntry{}, err
	}
	off, err := r.uint32At(offset + dirEntryOffsetOffset)
	if err != nil {
		return DirEntry{}, err
	}
	return DirEntry{
		BlobType: BlobType(blobType),
		Local:    localByte != 0,
		Name:     name,
		Offset:   off,
	}, nil
}

// validator carries the state threaded through a single full-validation
// pass: the bounds-checked reader, the parsed header, and the breadcrumb
// context stack used to decorate error messages.
type validator struct {
	r   *reader
	h   Header
	ctx contextStack
}

func newValidator(r *reader, h Header) *validator {
	return &validator{r: r, h: h}
}

// dirEntryOffset returns the byte offset of the 1-based directory entry
// index within the directory table, without bounds-checking the index
// itself (callers that need that check use getDirEntryChecked).
func (v *validator) dirEntryOffset(index uint16) uint32 {
	return v.h.Directory + (uint32(index)-1)*uint32(v.h.EntryBlobSize)
}

// getDirEntryUnchecked returns the directory entry at index (1-based),
// trusting the caller that index is in [1, n_entries]. Exposed as the hot
// path lookup API; callers operating on an unvalidated typelib should use
// getDirEntryChecked instead.
func (v *validator) getDirEntryUnchecked(index uint16) (DirEntry, error) {
	return v.r.dirEntryAt(v.dirEntryOffset(index))
}

// getDirEntryChecked validates index before dereferencing it, per
// invariant 6 (every internal index used to reference another directory
// entry must be in range).
func (v *validator) getDirEntryChecked(index uint16) (DirEntry, error) {
	if index == 0 || uint32(index) > uint32(v.h.NEntries) {
		return DirEntry{}, newErr(InvalidBlob, "invalid directory index %d", index)
	}
	entry, err := v.r.dirEntryAt(v.dirEntryOffset(index))
	if err != nil {
		return DirEntry{}, newErr(InvalidData, "the buffer is too short")
	}
	return entry, nil
}

// validateDirectory walks all n_entries directory entries in ascending
// index order, enforcing the local-before-foreign layout and dispatching
// local entries to the matching record validator.
func (v *validator) validateDirectory() error {
	if !v.r.fits(v.h.Directory, uint32(v.h.NEntries)*uint32(v.h.EntryBlobSize)) {
		return newErr(InvalidData, "the buffer is too short")
	}

	for i := uint16(1); i <= v.h.NEntries; i++ {
		entry, err := v.getDirEntryUnchecked(i)
		if err != nil {
			return err
		}

		if _, err := v.r.validateName(entry.Name, "entry"); err != nil {
			return err
		}

		if (entry.Local && entry.BlobType == BlobTypeInvalid) || entry.BlobType > BlobTypeUnion {
			return newErr(InvalidDirectory, "invalid entry type")
		}

		if i <= v.h.NLocalEntries {
			if !entry.Local {
				return newErr(InvalidDirectory, "too few local directory entries")
			}
			if !aligned4(entry.Offset) {
				return newErr(InvalidDirectory, "misaligned entry")
			}
			if err := v.validateBlob(entry.Offset); err != nil {
				return err
			}
		} else {
			if entry.Local {
				return newErr(InvalidDirectory, "too many local directory entries")
			}
			if _, err := v.r.validateName(entry.Offset, "namespace"); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateBlob reads the common 8-byte record header at offset and
// dispatches to the validator for its declared blob type.
func (v *validator) validateBlob(offset uint32) error {
	if !v.r.fits(offset, CommonSize) {
		return newErr(InvalidData, "the buffer is too short")
	}
	blobType, err := v.r.uint8At(offset)
	if err != nil {
		return err
	}

	switch BlobType(blobType) {
	case BlobTypeFunction:
		return v.validateFunctionBlob(offset, BlobTypeInvalid)
	case BlobTypeCallback:
		return v.validateCallbackBlob(offset)
	case BlobTypeStruct, BlobTypeBoxed:
		return v.validateStructBlob(offset, BlobType(blobType))
	case BlobTypeEnum, BlobTypeFlags:
		return v.validateEnumBlob(offset, BlobType(blobType))
	case BlobTypeObject:
		return v.validateObjectBlob(offset)
	case BlobTypeInterface:
		return v.validateInterfaceBlob(offset)
	case BlobTypeConstant:
		return v.validateConstantBlob(offset)
	case BlobTypeUnion:
		return v.validateUnionBlob(offset)
	default:
		return newErr(InvalidEntry, "invalid blob type")
	}
}

// validateAttributes bounds-checks the attribute section's declared
// extent; attribute contents themselves are opaque to this core (no
// attribute-kind record validator is specified).
func (v *validator) validateAttributes() error {
	need := v.h.Attributes + uint32(v.h.NAttributes)*AttributeSize
	if v.h.Size < need {
		return newErr(InvalidData, "the buffer is too short")
	}
	return nil
}
