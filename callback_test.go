// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTopLevelCallback(t *testing.T, name string, args []argSpec) []byte {
	t.Helper()
	b := newTLBuilder("Tl")
	b.addLocal(name, func(w *tlBlobWriter) {
		sig, sigPatches := buildSignature(w.pool, false, 0, false, args)
		writeCallbackBlob(w, name, sig, sigPatches)
	})
	return b.build()
}

func TestValidateCallbackBlob_OK(t *testing.T) {
	data := buildTopLevelCallback(t, "on_done", []argSpec{{name: "result", tag: TypeTagInt32}})
	h, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	require.NoError(t, h.Validate())
}

func TestValidateCallbackBlob_WrongBlobTypeRejected(t *testing.T) {
	data := buildTopLevelCallback(t, "on_done", nil)
	dirEntry, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	entry, err := dirEntry.GetDirEntry(1)
	require.NoError(t, err)
	data[entry.Offset] = byte(BlobTypeFunction) // not BlobTypeCallback
	h2, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	require.Error(t, h2.Validate())
}

func TestValidateCallbackBlob_BadArgNameRejected(t *testing.T) {
	data := buildTopLevelCallback(t, "on_done", []argSpec{{name: "result", tag: TypeTagInt32}})
	dirEntry, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	entry, err := dirEntry.GetDirEntry(1)
	require.NoError(t, err)
	// The callback's signature sits right after its common(8)+signature
	// pointer(4) header; its single arg starts right after the 8-byte
	// SignatureBlob header. Corrupt the arg's name pointer.
	argNameOff := entry.Offset + CallbackSize + SignatureSize + uint32(argNameOffset)
	data[argNameOff] = 0xFF
	data[argNameOff+1] = 0xFF
	h2, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	require.Error(t, h2.Validate())
}
