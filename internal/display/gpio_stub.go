//go:build !linux

package display

import "fmt"

func openGPIO(p Pins) (Bus, error) {
	return nil, fmt.Errorf("display: gpio unsupported on this platform")
}
