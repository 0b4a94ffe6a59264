// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package typelib

import "strings"

// contextStack is the breadcrumb trail of named records (function, callback,
// struct, enum, object, interface) used to decorate error messages with a
// ns/Type/member path. Pushed on entering a named record, popped on exit; on
// a validation failure the remaining entries are simply discarded by the
// caller unwinding.
type contextStack struct {
	frames []string
}

func (c *contextStack) push(name string) {
	c.frames = append(c.frames, name)
}

func (c *contextStack) pop() {
	if len(c.frames) == 0 {
		return
	}
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *contextStack) empty() bool {
	return len(c.frames) == 0
}

func (c *contextStack) String() string {
	return strings.Join(c.frames, "/")
}
