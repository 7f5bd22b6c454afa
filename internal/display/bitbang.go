package display

import (
	"errors"
	"fmt"
)

// Pins are BCM GPIO numbers for the MAX7219 serial interface.
type Pins struct {
	DIN  int
	CLK  int
	LOAD int
}

func (p Pins) validate() error {
	if p.DIN <= 0 || p.CLK <= 0 || p.LOAD <= 0 {
		return fmt.Errorf("display: invalid pins din=%d clk=%d load=%d", p.DIN, p.CLK, p.LOAD)
	}
	if p.DIN == p.CLK || p.DIN == p.LOAD || p.CLK == p.LOAD {
		return fmt.Errorf("display: pins must be distinct")
	}
	return nil
}

// outputLine is the part of a GPIO line the bus needs.
type outputLine interface {
	SetValue(v int) error
	Close() error
}

// bitBangBus clocks 16-bit register writes out MSB first. LOAD is held low
// for the transfer and the rising edge latches the word.
type bitBangBus struct {
	din, clk, load outputLine
	release        func() error
}

func (b *bitBangBus) Send(reg, data byte) error {
	if err := b.load.SetValue(0); err != nil {
		return err
	}
	if err := b.shift(reg); err != nil {
		return err
	}
	if err := b.shift(data); err != nil {
		return err
	}
	return b.load.SetValue(1)
}

func (b *bitBangBus) shift(v byte) error {
	for i := 0; i < 8; i++ {
		if err := b.clk.SetValue(0); err != nil {
			return err
		}
		bit := 0
		if v&0x80 != 0 {
			bit = 1
		}
		if err := b.din.SetValue(bit); err != nil {
			return err
		}
		if err := b.clk.SetValue(1); err != nil {
			return err
		}
		v <<= 1
	}
	return nil
}

func (b *bitBangBus) Close() error {
	var errs []error
	for _, l := range []outputLine{b.din, b.clk, b.load} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.release != nil {
		if err := b.release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NullBus discards every write. Used when no display is attached.
type NullBus struct{}

func (NullBus) Send(reg, data byte) error { return nil }
func (NullBus) Close() error              { return nil }
