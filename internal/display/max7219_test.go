package display

import (
	"errors"
	"testing"
)

type write struct {
	reg, data byte
}

type recordingBus struct {
	writes []write
	failAt int
	closed bool
}

func (b *recordingBus) Send(reg, data byte) error {
	if b.failAt > 0 && len(b.writes)+1 == b.failAt {
		return errors.New("bus down")
	}
	b.writes = append(b.writes, write{reg, data})
	return nil
}

func (b *recordingBus) Close() error {
	b.closed = true
	return nil
}

// digits returns the last value written to each digit register.
func (b *recordingBus) digits() [NumDigits]byte {
	var out [NumDigits]byte
	for _, w := range b.writes {
		if w.reg >= regDigit0 && w.reg < regDigit0+NumDigits {
			out[w.reg-regDigit0] = w.data
		}
	}
	return out
}

func (b *recordingBus) last(reg byte) (byte, bool) {
	for i := len(b.writes) - 1; i >= 0; i-- {
		if b.writes[i].reg == reg {
			return b.writes[i].data, true
		}
	}
	return 0, false
}

func TestInit_ConfiguresDriver(t *testing.T) {
	bus := &recordingBus{}
	d := NewMax7219(bus)
	if err := d.Init(12); err != nil {
		t.Fatalf("Init: %v", err)
	}
	checks := map[byte]byte{
		regScanLimit:   NumDigits - 1,
		regDisplayTest: 0,
		regDecodeMode:  0xFF,
		regIntensity:   12,
		regShutdown:    1,
	}
	for reg, want := range checks {
		got, ok := bus.last(reg)
		if !ok || got != want {
			t.Fatalf("reg 0x%02X=0x%02X (set=%v) want 0x%02X", reg, got, ok, want)
		}
	}
	for i, v := range bus.digits() {
		if v != codeBlank {
			t.Fatalf("digit %d=0x%02X want blank", i, v)
		}
	}
}

func TestShowTime_BCDDigits(t *testing.T) {
	bus := &recordingBus{}
	d := NewMax7219(bus)
	if err := d.ShowTime(8, 18, 36); err != nil {
		t.Fatalf("ShowTime: %v", err)
	}
	want := [NumDigits]byte{0, 8, 1, 8, 3, 6}
	if got := bus.digits(); got != want {
		t.Fatalf("digits=%v want %v", got, want)
	}
}

func TestShowNoSignal_WalksDecimalPoint(t *testing.T) {
	bus := &recordingBus{}
	d := NewMax7219(bus)
	for call := 0; call < NumDigits+1; call++ {
		if err := d.ShowNoSignal(); err != nil {
			t.Fatalf("ShowNoSignal: %v", err)
		}
		wantPos := call % NumDigits
		for i, v := range bus.digits() {
			lit := v&dpBit != 0
			if lit != (i == wantPos) {
				t.Fatalf("call %d digit %d=0x%02X, dp expected at %d", call, i, v, wantPos)
			}
		}
	}
}

func TestShowError_Code(t *testing.T) {
	bus := &recordingBus{}
	d := NewMax7219(bus)
	if err := d.ShowError(2); err != nil {
		t.Fatalf("ShowError: %v", err)
	}
	want := [NumDigits]byte{codeE, 2, codeBlank, codeBlank, codeBlank, codeBlank}
	if got := bus.digits(); got != want {
		t.Fatalf("digits=%v want %v", got, want)
	}
}

func TestInit_ClampsIntensity(t *testing.T) {
	bus := &recordingBus{}
	if err := NewMax7219(bus).Init(40); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got, _ := bus.last(regIntensity); got != MaxIntensity {
		t.Fatalf("intensity=%d want %d", got, MaxIntensity)
	}

	bus = &recordingBus{}
	if err := NewMax7219(bus).Init(-3); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got, _ := bus.last(regIntensity); got != 0 {
		t.Fatalf("intensity=%d want 0", got)
	}
}

func TestBusErrorIsWrapped(t *testing.T) {
	bus := &recordingBus{failAt: 3}
	d := NewMax7219(bus)
	err := d.ShowTime(1, 2, 3)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "display: digit 2: bus down" {
		t.Fatalf("err=%q", err.Error())
	}
}

func TestClose_ShutsDownAndReleases(t *testing.T) {
	bus := &recordingBus{}
	d := NewMax7219(bus)
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got, ok := bus.last(regShutdown); !ok || got != 0 {
		t.Fatalf("shutdown=%d set=%v", got, ok)
	}
	if !bus.closed {
		t.Fatalf("bus not closed")
	}
}
