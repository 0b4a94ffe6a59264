// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import "strings"

// GetNamespace returns the typelib's namespace name.
func (h *Handle) GetNamespace() (string, error) {
	return h.r.validateName(h.header.Namespace, "namespace")
}

// NEntries returns the total number of directory entries (local and
// foreign).
func (h *Handle) NEntries() uint16 {
	return h.header.NEntries
}

// EntryName resolves a directory entry's name string.
func (h *Handle) EntryName(entry DirEntry) (string, error) {
	return h.r.validateName(entry.Name, "entry")
}

// GetDirEntry returns the 1-based directory entry at index, without
// re-validating the typelib. Callers that have not called Validate should
// treat a non-nil error as meaning the typelib cannot be trusted, not just
// that this one lookup failed.
func (h *Handle) GetDirEntry(index uint16) (DirEntry, error) {
	v := newValidator(h.r, h.header)
	return v.getDirEntryChecked(index)
}

// GetDirEntryByName looks up a local directory entry by name, preferring
// the DIRECTORY_INDEX hash section when present (falling back to a linear
// scan only when no such section exists — the hash, once present, is
// authoritative and is never second-guessed by a linear scan).
func (h *Handle) GetDirEntryByName(name string) (DirEntry, bool, error) {
	if h.directoryIndexOffset != 0 {
		return h.lookupByNameHashed(name)
	}
	return h.lookupByNameLinear(name)
}

func (h *Handle) lookupByNameHashed(name string) (DirEntry, bool, error) {
	nBuckets, err := h.r.directoryIndexBucketCount(h.directoryIndexOffset)
	if err != nil {
		return DirEntry{}, false, err
	}
	if nBuckets == 0 {
		return DirEntry{}, false, nil
	}
	v := newValidator(h.r, h.header)
	hash := hashName(name)
	for probe := uint32(0); probe < nBuckets; probe++ {
		bucket := (hash + probe) % nBuckets
		idx, err := h.r.directoryIndexBucket(h.directoryIndexOffset, bucket)
		if err != nil {
			return DirEntry{}, false, err
		}
		if idx == 0 {
			return DirEntry{}, false, nil
		}
		entry, err := v.getDirEntryChecked(idx)
		if err != nil {
			return DirEntry{}, false, err
		}
		entryName, err := h.r.validateName(entry.Name, "entry")
		if err != nil {
			return DirEntry{}, false, err
		}
		if entryName == name {
			return entry, true, nil
		}
	}
	return DirEntry{}, false, nil
}

func (h *Handle) lookupByNameLinear(name string) (DirEntry, bool, error) {
	v := newValidator(h.r, h.header)
	for i := uint16(1); i <= h.header.NLocalEntries; i++ {
		entry, err := v.getDirEntryUnchecked(i)
		if err != nil {
			return DirEntry{}, false, err
		}
		entryName, err := h.r.validateName(entry.Name, "entry")
		if err != nil {
			return DirEntry{}, false, err
		}
		if entryName == name {
			return entry, true, nil
		}
	}
	return DirEntry{}, false, nil
}

// GetDirEntryByGTypeName linearly scans local registered-type entries for
// one whose gtype_name field matches name. Registered-type blobs share a
// GType-name offset at byte 8 of their record (see struct.go/enum.go/
// object.go/interface.go), which this walk reads directly rather than
// re-dispatching per blob kind.
func (h *Handle) GetDirEntryByGTypeName(name string) (DirEntry, bool, error) {
	v := newValidator(h.r, h.header)
	for i := uint16(1); i <= h.header.NLocalEntries; i++ {
		entry, err := v.getDirEntryUnchecked(i)
		if err != nil {
			return DirEntry{}, false, err
		}
		if !entry.BlobType.IsRegisteredType() {
			continue
		}
		gtypeNameOff, err := h.r.uint32At(entry.Offset + registeredTypeGTypeNameOffset)
		if err != nil {
			return DirEntry{}, false, err
		}
		if gtypeNameOff == 0 {
			continue
		}
		gotName, err := h.r.validateName(gtypeNameOff, "gtype name")
		if err != nil {
			return DirEntry{}, false, err
		}
		if gotName == name {
			return entry, true, nil
		}
	}
	return DirEntry{}, false, nil
}

// GetDirEntryByErrorDomain linearly scans local enum entries for one whose
// error_domain field equals domain.
func (h *Handle) GetDirEntryByErrorDomain(domain uint32) (DirEntry, bool, error) {
	if domain == 0 {
		return DirEntry{}, false, nil
	}
	v := newValidator(h.r, h.header)
	for i := uint16(1); i <= h.header.NLocalEntries; i++ {
		entry, err := v.getDirEntryUnchecked(i)
		if err != nil {
			return DirEntry{}, false, err
		}
		if entry.BlobType != BlobTypeEnum && entry.BlobType != BlobTypeFlags {
			continue
		}
		got, err := v.errorDomainOf(entry.Offset)
		if err != nil {
			return DirEntry{}, false, err
		}
		if got == domain {
			return entry, true, nil
		}
	}
	return DirEntry{}, false, nil
}

// MatchesGTypeNamePrefix reports whether gtypeName could plausibly belong
// to this namespace, per the c_prefix comma-separated list: a match
// requires gtypeName to start with one of the prefixes and for the
// following character to be an uppercase ASCII letter (so "Gtk" matches
// "GtkWidget" but not "gtk_widget", and an exact match with nothing
// trailing does not count — "Gtk" alone is not "prefixed by itself").
// Grounded on gi_typelib_matches_gtype_name_prefix.
func (h *Handle) MatchesGTypeNamePrefix(gtypeName string) (bool, error) {
	if h.header.CPrefix == 0 {
		return false, nil
	}
	cprefix, err := h.r.stringAt(h.header.CPrefix)
	if err != nil {
		return false, err
	}
	for _, prefix := range strings.Split(cprefix, ",") {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		if !strings.HasPrefix(gtypeName, prefix) {
			continue
		}
		rest := gtypeName[len(prefix):]
		if rest == "" {
			continue
		}
		c := rest[0]
		if c >= 'A' && c <= 'Z' {
			return true, nil
		}
	}
	return false, nil
}

// registeredTypeGTypeNameOffset is the byte offset of the gtype_name field
// shared by every registered-type record's fixed header (struct, enum,
// object, interface, union all place it at this position; see each
// record's layout comment).
const registeredTypeGTypeNameOffset = 8
