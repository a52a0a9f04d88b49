//go:build !amd64

package hwy

func init() {
	// Non-amd64 architectures run the 256-bit shaped kernels in pure Go.
	setLevel(DispatchScalar)
}

// HasFMA reports false; the x86 feature bits are not probed here.
func HasFMA() bool {
	return false
}
