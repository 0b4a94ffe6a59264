// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// Per-blob-kind writer helpers built on top of tlBlobWriter, used by the
// test files alongside each validator. Each sets its own blob-type byte
// first so blobTypeOf can recover it for the directory entry.

func writeFunctionBlob(w *tlBlobWriter, name, symbol string, flags, index uint8, sig []byte, sigPatches []tlPatch) {
	w.u8(0, uint8(BlobTypeFunction))
	w.name(functionNameOffset, name)
	w.name(functionSymbolOffset, symbol)
	w.u8(functionFlagsOffset, flags)
	w.u8(functionIndexOffset, index)
	w.embedSignature(functionSignatureOffset, sig, sigPatches)
}

func writeCallbackBlob(w *tlBlobWriter, name string, sig []byte, sigPatches []tlPatch) {
	w.u8(0, uint8(BlobTypeCallback))
	w.name(functionNameOffset, name)
	w.embedSignature(callbackSignatureOffset, sig, sigPatches)
}

func writeConstantBlob(w *tlBlobWriter, name string, tag TypeTag, pointer bool, size uint32, value []byte) {
	w.u8(0, uint8(BlobTypeConstant))
	w.name(functionNameOffset, name)
	w.u32(constantTypeOffset, simpleTypeWord(tag, pointer))
	w.u32(constantSizeOffset, size)
	for len(w.buf) < ConstantSize {
		w.buf = append(w.buf, 0)
	}
	valOff := w.here()
	w.buf = append(w.buf, value...)
	w.patches = append(w.patches, tlPatch{fieldOffset: constantOffsetOffset, kind: patchBlob, rel: uint32(valOff)})
}

type valueSpec struct {
	name  string
	value int32
}

func writeEnumBlob(w *tlBlobWriter, name string, registered bool, errorDomain uint32, values []valueSpec) {
	w.u8(0, uint8(BlobTypeEnum))
	w.name(functionNameOffset, name)
	if registered {
		w.name(enumGTypeNameOffset, name+"Type")
		w.name(enumGTypeInitOffset, name+"_get_type")
	}
	w.u32(enumErrorDomainOffset, errorDomain)
	w.u16(enumNValuesOffset, uint16(len(values)))
	w.u16(enumNMethodsOffset, 0)
	for _, v := range values {
		valOff := w.here()
		w.buf = append(w.buf, make([]byte, ValueSize)...)
		rel := w.pool.add(v.name)
		w.patches = append(w.patches, tlPatch{fieldOffset: valOff + functionNameOffset, kind: patchPool, rel: rel})
		w.u32(valOff+8, uint32(v.value))
	}
}

type fieldSpec struct {
	name    string
	tag     TypeTag
	pointer bool
}

func writeFieldInto(w *tlBlobWriter, f fieldSpec) {
	fieldOff := w.here()
	w.buf = append(w.buf, make([]byte, FieldSize)...)
	rel := w.pool.add(f.name)
	w.patches = append(w.patches, tlPatch{fieldOffset: fieldOff + fieldNameOffset, kind: patchPool, rel: rel})
	w.u32(fieldOff+fieldTypeOffset, simpleTypeWord(f.tag, f.pointer))
	w.u32(fieldOff+12, 0)
}

func writeStructBlob(w *tlBlobWriter, name string, registered bool, fields []fieldSpec) {
	w.u8(0, uint8(BlobTypeStruct))
	w.name(functionNameOffset, name)
	if registered {
		w.name(structGTypeNameOffset, name+"Type")
		w.name(structGTypeInitOffset, name+"_get_type")
	}
	w.u32(16, 0)
	w.u32(20, 0)
	w.u16(structNFieldsOffset, uint16(len(fields)))
	w.u16(structNMethodsOffset, 0)
	for len(w.buf) < StructSize {
		w.buf = append(w.buf, 0)
	}
	for _, f := range fields {
		writeFieldInto(w, f)
	}
}

func writeObjectBlob(w *tlBlobWriter, name string, registered bool, parent uint16, nFields uint16, fieldWrite func(w *tlBlobWriter)) {
	w.u8(0, uint8(BlobTypeObject))
	w.name(functionNameOffset, name)
	if registered {
		w.name(objectGTypeNameOffset, name+"Type")
		w.name(objectGTypeInitOffset, name+"_get_type")
	}
	w.u16(objectParentOffset, parent)
	w.u16(objectGTypeStructOffset, 0)
	w.u16(objectNInterfacesOffset, 0)
	w.u16(objectNFieldsOffset, nFields)
	w.u16(objectNPropertiesOffset, 0)
	w.u16(objectNMethodsOffset, 0)
	w.u16(objectNSignalsOffset, 0)
	w.u16(objectNVFuncsOffset, 0)
	w.u16(objectNConstantsOffset, 0)
	w.u16(objectNFieldCallbacksOffset, 0)
	for len(w.buf) < ObjectSize {
		w.buf = append(w.buf, 0)
	}
	if fieldWrite != nil {
		fieldWrite(w)
	}
}
