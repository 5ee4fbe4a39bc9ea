package relief

import "errors"

// ErrNonPlanarFace reports a target face whose underlying surface is
// not a plane. The operation aborts before any geometry is built.
var ErrNonPlanarFace = errors.New("target face is not planar")

// ErrBoolean reports a failed kernel cut/fuse/extrude step. No partial
// relief is ever returned; the kernel's diagnostic text is preserved
// in the wrap chain.
var ErrBoolean = errors.New("boolean operation failed")
