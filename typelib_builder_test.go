// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import "encoding/binary"

// No binary fixture .typelib files exist for this reader (there is no
// in-pack producer to generate them), so tests build synthetic images
// in-process. tlBuilder assembles a well-formed header + directory +
// string pool + blob section in one pass, then lets callers corrupt
// individual bytes to exercise specific failure paths.
//
// Every absolute offset in the wire format (string offsets, blob offsets,
// directory-entry offsets) is only known once the whole layout has been
// assembled, so tlBlobWriter records *patches* (a field offset plus a
// pool- or blob-relative target) instead of writing absolute addresses
// directly; build() resolves every patch in one final pass.
type tlBuilder struct {
	namespace     string
	cprefix       string
	sharedLibrary string

	entries []tlEntrySpec
}

type tlEntrySpec struct {
	name    string
	local   bool
	blob    func(w *tlBlobWriter)
	foreign string
}

func newTLBuilder(namespace string) *tlBuilder {
	return &tlBuilder{namespace: namespace, cprefix: "Tl"}
}

func (b *tlBuilder) addLocal(name string, write func(w *tlBlobWriter)) {
	b.entries = append(b.entries, tlEntrySpec{name: name, local: true, blob: write})
}

func (b *tlBuilder) addForeign(name, foreignNamespace string) {
	b.entries = append(b.entries, tlEntrySpec{name: name, local: false, foreign: foreignNamespace})
}

type tlPatchKind int

const (
	patchPool tlPatchKind = iota
	patchBlob
	// patchComplexTypeWord patches a SimpleTypeBlob word to point at a
	// complex type blob living at rel (blob-relative); see types.go's
	// decodeSimpleType for the bit layout this must match.
	patchComplexTypeWord
)

type tlPatch struct {
	fieldOffset int
	kind        tlPatchKind
	rel         uint32
}

// tlBlobWriter accumulates one record's bytes plus a set of deferred
// cross-reference patches, resolved once the enclosing buffer's layout is
// fixed.
type tlBlobWriter struct {
	buf     []byte
	pool    *tlStringPool
	patches []tlPatch
}

func newTLBlobWriter(pool *tlStringPool) *tlBlobWriter {
	return &tlBlobWriter{pool: pool}
}

func (w *tlBlobWriter) grow(n int) {
	for len(w.buf) < n {
		w.buf = append(w.buf, 0)
	}
}

func (w *tlBlobWriter) u8(off int, v uint8) {
	w.grow(off + 1)
	w.buf[off] = v
}

func (w *tlBlobWriter) u16(off int, v uint16) {
	w.grow(off + 2)
	binary.LittleEndian.PutUint16(w.buf[off:], v)
}

func (w *tlBlobWriter) u32(off int, v uint32) {
	w.grow(off + 4)
	binary.LittleEndian.PutUint32(w.buf[off:], v)
}

// name reserves a name string in the shared string pool and patches
// fieldOffset with its final absolute address.
func (w *tlBlobWriter) name(fieldOffset int, s string) {
	rel := w.pool.add(s)
	w.grow(fieldOffset + 4)
	w.patches = append(w.patches, tlPatch{fieldOffset: fieldOffset, kind: patchPool, rel: rel})
}

// embed appends raw bytes (e.g. a signature blob) at the end of this
// record's own buffer and patches fieldOffset to point at it.
func (w *tlBlobWriter) embed(fieldOffset int, data []byte) {
	w.grow(fieldOffset + 4)
	rel := uint32(len(w.buf))
	w.buf = append(w.buf, data...)
	w.patches = append(w.patches, tlPatch{fieldOffset: fieldOffset, kind: patchBlob, rel: rel})
}

func (w *tlBlobWriter) here() int {
	return len(w.buf)
}

// complexTypePointer patches the SimpleTypeBlob word at fieldOffset to
// point at the complex type blob located at targetRel within this same
// record's buffer.
func (w *tlBlobWriter) complexTypePointer(fieldOffset, targetRel int) {
	w.grow(fieldOffset + 4)
	w.patches = append(w.patches, tlPatch{fieldOffset: fieldOffset, kind: patchComplexTypeWord, rel: uint32(targetRel)})
}

// simpleTypeWord encodes a basic SimpleTypeBlob word (see types.go).
func simpleTypeWord(tag TypeTag, pointer bool) uint32 {
	v := uint32(tag&0x3F) << 2
	if pointer {
		v |= 1 << 8
	}
	return v
}

type argSpec struct {
	name    string
	tag     TypeTag
	pointer bool
}

// buildSignature returns the raw bytes of a SignatureBlob (8-byte header +
// one 16-byte ArgBlob per arg), with arg name strings registered in pool.
// Argument type words are always basic; tests needing complex argument
// types build them separately and reference them via embed.
func buildSignature(pool *tlStringPool, hasReturn bool, returnTag TypeTag, returnPointer bool, args []argSpec) ([]byte, []tlPatch) {
	buf := make([]byte, SignatureSize+len(args)*int(ArgSize))
	var patches []tlPatch
	if hasReturn {
		binary.LittleEndian.PutUint32(buf[signatureReturnTypeOffset:], simpleTypeWord(returnTag, returnPointer))
	}
	binary.LittleEndian.PutUint16(buf[signatureNArgumentsOffset:], uint16(len(args)))
	for i, a := range args {
		argOff := SignatureSize + i*int(ArgSize)
		rel := pool.add(a.name)
		patches = append(patches, tlPatch{fieldOffset: argOff + argNameOffset, kind: patchPool, rel: rel})
		binary.LittleEndian.PutUint32(buf[argOff+argTypeOffset:], simpleTypeWord(a.tag, a.pointer))
	}
	return buf, patches
}

// embedSignature appends a pre-built signature (from buildSignature) into
// w's own buffer, re-basing its patches to w's coordinate space, and
// patches fieldOffset to point at it.
func (w *tlBlobWriter) embedSignature(fieldOffset int, sig []byte, sigPatches []tlPatch) {
	w.grow(fieldOffset + 4)
	base := len(w.buf)
	w.buf = append(w.buf, sig...)
	for _, p := range sigPatches {
		w.patches = append(w.patches, tlPatch{fieldOffset: base + p.fieldOffset, kind: p.kind, rel: p.rel})
	}
	w.patches = append(w.patches, tlPatch{fieldOffset: fieldOffset, kind: patchBlob, rel: uint32(base)})
}

func (w *tlBlobWriter) size() int {
	return len(w.buf)
}

// tlStringPool collects NUL-terminated strings and assigns each a stable
// offset relative to the pool's own start.
type tlStringPool struct {
	data []byte
}

func (p *tlStringPool) add(s string) uint32 {
	off := uint32(len(p.data))
	p.data = append(p.data, []byte(s)...)
	p.data = append(p.data, 0)
	return off
}

// build assembles the final byte buffer: header, directory, string pool
// (4-byte aligned), then the blob section (each record 4-byte aligned).
func (b *tlBuilder) build() []byte {
	nEntries := uint32(len(b.entries))
	directoryOff := uint32(HeaderSize)
	poolStart := directoryOff + nEntries*DirEntrySize

	pool := &tlStringPool{}
	nsOff := pool.add(b.namespace)
	cprefixOff := pool.add(b.cprefix)
	var sharedLibOff uint32
	if b.sharedLibrary != "" {
		sharedLibOff = pool.add(b.sharedLibrary)
	}

	entryNameOffs := make([]uint32, nEntries)
	for i, e := range b.entries {
		entryNameOffs[i] = pool.add(e.name)
	}

	writers := make([]*tlBlobWriter, nEntries)
	foreignNSOffs := make([]uint32, nEntries)
	for i, e := range b.entries {
		if e.local {
			w := newTLBlobWriter(pool)
			e.blob(w)
			writers[i] = w
		} else {
			foreignNSOffs[i] = pool.add(e.foreign)
		}
	}

	for uint32(len(pool.data))%4 != 0 {
		pool.data = append(pool.data, 0)
	}
	poolLen := uint32(len(pool.data))
	blobsStart := poolStart + poolLen

	blobOffsets := make([]uint32, nEntries)
	var blobSection []byte
	for i, e := range b.entries {
		if !e.local {
			continue
		}
		base := blobsStart + uint32(len(blobSection))
		blobOffsets[i] = base
		wbuf := append([]byte(nil), writers[i].buf...)
		for _, p := range writers[i].patches {
			var abs uint32
			switch p.kind {
			case patchPool:
				abs = poolStart + p.rel
			case patchBlob:
				abs = base + p.rel
			case patchComplexTypeWord:
				abs = ((base + p.rel) << 2) | 1
			}
			binary.LittleEndian.PutUint32(wbuf[p.fieldOffset:], abs)
		}
		blobSection = append(blobSection, wbuf...)
		for len(blobSection)%4 != 0 {
			blobSection = append(blobSection, 0)
		}
	}

	total := blobsStart + uint32(len(blobSection))
	buf := make([]byte, total)
	copy(buf[offMagic:], Magic[:])
	buf[offMajorVersion] = MajorVersion
	buf[offMinorVersion] = 0
	binary.LittleEndian.PutUint16(buf[offNEntries:], uint16(nEntries))
	nLocal := uint16(0)
	for _, e := range b.entries {
		if e.local {
			nLocal++
		}
	}
	binary.LittleEndian.PutUint16(buf[offNLocalEntries:], nLocal)
	binary.LittleEndian.PutUint32(buf[offDirectory:], directoryOff)
	binary.LittleEndian.PutUint32(buf[offSize:], total)
	binary.LittleEndian.PutUint32(buf[offNamespace:], poolStart+nsOff)
	binary.LittleEndian.PutUint32(buf[offCPrefix:], poolStart+cprefixOff)
	if b.sharedLibrary != "" {
		binary.LittleEndian.PutUint32(buf[offSharedLibrary:], poolStart+sharedLibOff)
	}

	putSize := func(off uint32, v uint16) { binary.LittleEndian.PutUint16(buf[off:], v) }
	putSize(offEntryBlobSize, DirEntrySize)
	putSize(offFunctionBlobSize, FunctionSize)
	putSize(offCallbackBlobSize, CallbackSize)
	putSize(offSignalBlobSize, SignalSize)
	putSize(offVFuncBlobSize, VFuncSize)
	putSize(offArgBlobSize, ArgSize)
	putSize(offPropertyBlobSize, PropertySize)
	putSize(offFieldBlobSize, FieldSize)
	putSize(offValueBlobSize, ValueSize)
	putSize(offConstantBlobSize, ConstantSize)
	putSize(offAttributeBlobSize, AttributeSize)
	putSize(offSignatureBlobSize, SignatureSize)
	putSize(offEnumBlobSize, EnumSize)
	putSize(offStructBlobSize, StructSize)
	putSize(offObjectBlobSize, ObjectSize)
	putSize(offInterfaceBlobSize, InterfaceSize)
	putSize(offUnionBlobSize, UnionSize)

	binary.LittleEndian.PutUint32(buf[offSections:], 0)
	binary.LittleEndian.PutUint32(buf[offAttributes:], 0)
	binary.LittleEndian.PutUint32(buf[offNAttributes:], 0)

	copy(buf[poolStart:], pool.data)
	copy(buf[blobsStart:], blobSection)

	for i, e := range b.entries {
		entryOff := directoryOff + uint32(i)*DirEntrySize
		nameAbs := poolStart + entryNameOffs[i]
		binary.LittleEndian.PutUint32(buf[entryOff+dirEntryNameOffset:], nameAbs)
		if e.local {
			buf[entryOff+dirEntryBlobTypeOffset] = byte(blobTypeOf(writers[i]))
			buf[entryOff+dirEntryLocalOffset] = 1
			binary.LittleEndian.PutUint32(buf[entryOff+dirEntryOffsetOffset:], blobOffsets[i])
		} else {
			buf[entryOff+dirEntryBlobTypeOffset] = byte(BlobTypeInvalid)
			buf[entryOff+dirEntryLocalOffset] = 0
			binary.LittleEndian.PutUint32(buf[entryOff+dirEntryOffsetOffset:], poolStart+foreignNSOffs[i])
		}
	}

	return buf
}

// blobTypeOf recovers the blob type a writer was built for by reading back
// the first byte it wrote; every blob writer (typelib_blobs_test.go and the
// inline writers in the tests) sets byte 0 first.
func blobTypeOf(w *tlBlobWriter) BlobType {
	if len(w.buf) == 0 {
		return BlobTypeInvalid
	}
	return BlobType(w.buf[0])
}
