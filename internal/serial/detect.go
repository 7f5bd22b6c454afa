package serial

import (
	"fmt"
	"os"
)

var statFn = os.Stat

// AutoDetect returns the first serial device present, or "" when none is.
// On-board UARTs are preferred over USB adapters.
func AutoDetect() string {
	candidates := []string{"/dev/serial0", "/dev/ttyAMA0", "/dev/ttyS0"}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := statFn(p); err == nil {
			return p
		}
	}
	return ""
}
