package limb

import "unsafe"

// Overlaps reports whether the elements of x and y share any memory.
// Slices that merely share a backing array without overlapping in
// [0, len) do not count.
func Overlaps(x, y []Limb) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	const size = unsafe.Sizeof(Limb(0))
	x0 := uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	y0 := uintptr(unsafe.Pointer(unsafe.SliceData(y)))
	return x0 < y0+uintptr(len(y))*size && y0 < x0+uintptr(len(x))*size
}
