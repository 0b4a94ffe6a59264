// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// isNameByte reports whether b is a valid identifier byte: [A-Za-z0-9_-].
func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	default:
		return false
	}
}

// validateName checks that offset points to a NUL-terminated identifier of
// bounded length over [A-Za-z0-9_-]. role is embedded into error messages
// (e.g. "function", "object", "namespace").
func (r *reader) validateName(offset uint32, role string) (string, error) {
	if offset > r.len() {
		return "", newErr(InvalidData, "buffer is too short while looking up name")
	}
	rest := r.data[offset:]
	window := rest
	if uint32(len(window)) > MaxNameLength {
		window = window[:MaxNameLength]
	}

	nul := -1
	for i, b := range window {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return "", newErr(InvalidData, "the %s is too long", role)
	}
	name := string(window[:nul])
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return "", newErr(InvalidData, "the %s contains invalid characters: '%s'", role, name)
		}
	}
	return name, nil
}
