// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

// validateRegisteredTypePair enforces invariant 11: a registered type's
// GType name and GType init function symbol must be present together or
// absent together, never just one of the two.
//
// This infers registration from the two offsets rather than from a
// separate "unregistered" flag bit on the blob, so a blob with both
// offsets zero is accepted as a deliberately-unregistered type rather than
// rejected outright; see DESIGN.md.
func (v *validator) validateRegisteredTypePair(gtypeNameOff, gtypeInitOff uint32) error {
	if (gtypeNameOff == 0) != (gtypeInitOff == 0) {
		return newErr(InvalidBlob, "inconsistent GType registration")
	}
	if gtypeNameOff != 0 {
		if _, err := v.r.validateName(gtypeNameOff, "gtype name"); err != nil {
			return err
		}
		if _, err := v.r.validateName(gtypeInitOff, "gtype init"); err != nil {
			return err
		}
	}
	return nil
}
