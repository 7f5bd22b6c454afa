//go:build linux

package display

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// openGPIO requests the three pins as outputs on the first gpiochip that
// exposes all of them by name (GPIO<n>).
func openGPIO(p Pins) (Bus, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	chipCandidates := []string{"/dev/gpiochip0", "/dev/gpiochip4"}
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		bus, err := requestBus(chip, p)
		if err != nil {
			_ = chip.Close()
			continue
		}
		return bus, nil
	}
	return nil, fmt.Errorf("display: gpio lines din=%d clk=%d load=%d not found (or busy)", p.DIN, p.CLK, p.LOAD)
}

func requestBus(chip *gpiocdev.Chip, p Pins) (*bitBangBus, error) {
	bus := &bitBangBus{release: chip.Close}
	var lines []*gpiocdev.Line
	for _, pin := range []int{p.DIN, p.CLK, p.LOAD} {
		offset, err := chip.FindLine(fmt.Sprintf("GPIO%d", pin))
		if err != nil {
			closeLines(lines)
			return nil, err
		}
		// LOAD idles high (active low chip select); the others idle low.
		initial := 0
		if pin == p.LOAD {
			initial = 1
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(initial), gpiocdev.WithConsumer("gpsclock-display"))
		if err != nil {
			closeLines(lines)
			return nil, err
		}
		lines = append(lines, line)
	}
	bus.din, bus.clk, bus.load = lines[0], lines[1], lines[2]
	return bus, nil
}

func closeLines(lines []*gpiocdev.Line) {
	for _, l := range lines {
		_ = l.Close()
	}
}
