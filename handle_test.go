// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFromBytes_ValidateIdempotent(t *testing.T) {
	data := buildMultiEntry(t)
	h, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	require.NoError(t, h.Validate())
	require.NoError(t, h.Validate())
}

func TestNewFromBytes_RejectsGarbage(t *testing.T) {
	_, err := NewFromBytes([]byte{1, 2, 3}, nil)
	require.Error(t, err)
}

func TestHandle_RefUnref(t *testing.T) {
	data := buildMultiEntry(t)
	h, err := NewFromBytes(data, nil)
	require.NoError(t, err)

	h2 := h.Ref()
	require.Same(t, h, h2)
	require.NoError(t, h.Unref()) // drops to 1, handle stays open
	require.False(t, h.closed)
	require.NoError(t, h.Unref()) // drops to 0, closes
	require.True(t, h.closed)
}

func TestHandle_CloseIsIdempotent(t *testing.T) {
	data := buildMultiEntry(t)
	h, err := NewFromBytes(data, nil)
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}

func TestNewFromFile_MapsAndValidates(t *testing.T) {
	data := buildMultiEntry(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.typelib")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	h, err := NewFromFile(path, nil)
	require.NoError(t, err)
	defer h.Close()
	require.NoError(t, h.Validate())

	name, err := h.GetNamespace()
	require.NoError(t, err)
	require.Equal(t, "Tl", name)
}
