package serial

import "slices"

// SupportedBauds lists the rates Open accepts, slowest first.
var SupportedBauds = []int{4800, 9600, 19200, 38400, 57600, 115200}

// Supported reports whether baud is one of SupportedBauds.
func Supported(baud int) bool {
	return slices.Contains(SupportedBauds, baud)
}
