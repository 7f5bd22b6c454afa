package display

import "fmt"

// MAX7219 registers.
const (
	regDigit0      = 0x01
	regDecodeMode  = 0x09
	regIntensity   = 0x0A
	regScanLimit   = 0x0B
	regShutdown    = 0x0C
	regDisplayTest = 0x0F
)

// Code B font values (decode mode). Bit 7 lights the decimal point.
const (
	codeDash  = 0x0A
	codeE     = 0x0B
	codeBlank = 0x0F
	dpBit     = 0x80
)

// NumDigits is the number of 7-segment digits wired to the driver.
const NumDigits = 6

// MaxIntensity is the brightest MAX7219 intensity step.
const MaxIntensity = 15

// Bus sends one register write to the display driver.
type Bus interface {
	Send(reg, data byte) error
	Close() error
}

// Max7219 drives a six digit hh mm ss display.
//
// Not safe for concurrent use.
type Max7219 struct {
	bus     Bus
	waitPos int
}

func NewMax7219(bus Bus) *Max7219 {
	return &Max7219{bus: bus}
}

// Init blanks all digits and brings the driver out of shutdown.
func (d *Max7219) Init(intensity int) error {
	if err := d.blank(0); err != nil {
		return err
	}
	steps := []struct {
		reg, val byte
	}{
		{regScanLimit, NumDigits - 1},
		{regDisplayTest, 0},
		{regDecodeMode, 0xFF},
		{regIntensity, clampIntensity(intensity)},
		{regShutdown, 1},
	}
	for _, s := range steps {
		if err := d.bus.Send(s.reg, s.val); err != nil {
			return fmt.Errorf("display: init reg 0x%02X: %w", s.reg, err)
		}
	}
	return nil
}

// ShowTime writes h, m and s as pairs of BCD digits, left to right.
func (d *Max7219) ShowTime(h, m, s uint8) error {
	digit := 0
	for _, v := range [3]uint8{h, m, s} {
		tens, ones := (v/10)%10, v%10
		if err := d.setDigit(digit, tens); err != nil {
			return err
		}
		if err := d.setDigit(digit+1, ones); err != nil {
			return err
		}
		digit += 2
	}
	return nil
}

// ShowNoSignal blanks the display and lights one decimal point, moving it
// one digit to the right on every call.
func (d *Max7219) ShowNoSignal() error {
	for i := 0; i < NumDigits; i++ {
		v := byte(codeBlank)
		if i == d.waitPos {
			v |= dpBit
		}
		if err := d.setDigit(i, v); err != nil {
			return err
		}
	}
	d.waitPos = (d.waitPos + 1) % NumDigits
	return nil
}

// ShowError displays "E<code>" with the remaining digits blank.
func (d *Max7219) ShowError(code uint8) error {
	if err := d.setDigit(0, codeE); err != nil {
		return err
	}
	if err := d.setDigit(1, code%10); err != nil {
		return err
	}
	return d.blank(2)
}

// ShowDashes is shown while waiting for the first byte from the receiver.
func (d *Max7219) ShowDashes() error {
	for i := 0; i < NumDigits; i++ {
		if err := d.setDigit(i, codeDash); err != nil {
			return err
		}
	}
	return nil
}

// Close puts the driver into shutdown and releases the bus.
func (d *Max7219) Close() error {
	serr := d.bus.Send(regShutdown, 0)
	cerr := d.bus.Close()
	if serr != nil {
		return fmt.Errorf("display: shutdown: %w", serr)
	}
	return cerr
}

func (d *Max7219) blank(from int) error {
	for i := from; i < NumDigits; i++ {
		if err := d.setDigit(i, codeBlank); err != nil {
			return err
		}
	}
	return nil
}

func (d *Max7219) setDigit(i int, v byte) error {
	if err := d.bus.Send(byte(regDigit0+i), v); err != nil {
		return fmt.Errorf("display: digit %d: %w", i, err)
	}
	return nil
}

func clampIntensity(v int) byte {
	if v < 0 {
		return 0
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return byte(v)
}
