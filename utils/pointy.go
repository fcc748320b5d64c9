package utils

// Pointy creates a new T variable and returns its pointer.
func Pointy[T any](x T) *T {
	return &x
}

// PointyInt creates a new int variable and returns its pointer.
func PointyInt(x int) *int {
	return &x
}

// PointyUint creates a new uint variable and returns its pointer.
func PointyUint(x uint) *uint {
	return &x
}
