package nmea

import (
	"fmt"
	"math"
)

// MaxSentenceLen is the longest legal NMEA 0183 sentence including the
// leading '$' and trailing "\r\n". Decode never pulls more bytes than this.
const MaxSentenceLen = 79

// TargetType is the talker+sentence identifier Decode extracts data from.
const TargetType = "GPRMC"

// ByteSource yields one byte per call, blocking until it is available.
// It never reports end of stream.
type ByteSource interface {
	NextByte() byte
}

// ByteSourceFunc adapts a plain function to ByteSource.
type ByteSourceFunc func() byte

func (f ByteSourceFunc) NextByte() byte { return f() }

// Status is the outcome of one Decode call.
type Status uint8

const (
	// Success: RMC sentence with a valid checksum and a non-empty time field.
	Success Status = iota
	// NoSignal: RMC sentence with a valid checksum but an empty time field.
	// Receivers emit these while acquiring a fix.
	NoSignal
	// NoMatch: some other sentence type, or a line ended before any '$'.
	NoMatch
	// InvalidChecksum: the RMC sentence was read but its checksum did not match.
	InvalidChecksum
	// BadFormat: no verdict within MaxSentenceLen bytes.
	BadFormat
)

var statusNames = [...]string{
	Success:         "success",
	NoSignal:        "no_signal",
	NoMatch:         "no_match",
	InvalidChecksum: "invalid_checksum",
	BadFormat:       "bad_format",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// AllStatuses lists every Status in declaration order.
func AllStatuses() []Status {
	return []Status{Success, NoSignal, NoMatch, InvalidChecksum, BadFormat}
}

type phase uint8

const (
	searchStart phase = iota
	readType
	skipSentence
	readFields
	checksumVerify
)

// RMC field positions (field 0 is the talker+type).
//
//	1: UTC time (hhmmss[.sss])
//	2: status (A/V)
//	3-6: latitude, N/S, longitude, E/W
//	7: speed over ground (knots)
//	8: track made good (deg)
//	9: UTC date (ddmmyy)
//	10-11: magnetic variation, E/W
const (
	fieldTime uint8 = 1
	fieldDate uint8 = 9
)

type digitPair struct {
	buf [2]byte
	n   uint8
}

// push stores b and reports whether the pair is now complete.
// A complete pair is consumed: the next push starts a new one.
func (p *digitPair) push(b byte) bool {
	p.buf[p.n] = b
	p.n++
	if p.n < 2 {
		return false
	}
	p.n = 0
	return true
}

func (p *digitPair) reset() { p.n = 0 }

// decodeState lives for exactly one Decode call.
type decodeState struct {
	phase   phase
	typeIdx int
	field   uint8
	sum     byte
	pair    digitPair

	timeOut  cursor
	dateOut  cursor
	withDate bool

	hitDecimal bool
	sawTime    bool
}

// Decode scans src for the next RMC sentence and writes its time (and date,
// for a TimeAndDate record) into out.
//
// out is only valid when Success is returned. Decode keeps no state between
// calls; call it again after any status to continue scanning the stream.
func Decode(out *Record, src ByteSource) Status {
	st := decodeState{
		timeOut:  cursor{rec: out, next: 0, end: timeSlots},
		dateOut:  cursor{rec: out, next: timeSlots, end: timeSlots + dateSlots},
		withDate: out.HasDate(),
	}

	for i := MaxSentenceLen; i != 0; i-- {
		if status, done := st.step(src.NextByte()); done {
			return status
		}
	}

	// Sentence longer than NMEA allows, or no sentence at all.
	return BadFormat
}

func (st *decodeState) step(b byte) (Status, bool) {
	switch st.phase {
	case searchStart:
		switch b {
		case '\n':
			return NoMatch, true
		case '$':
			st.phase = readType
		}

	case skipSentence:
		if b == '\n' {
			return NoMatch, true
		}

	case readType:
		st.sum ^= b
		if b != TargetType[st.typeIdx] {
			st.phase = skipSentence
			break
		}
		st.typeIdx++
		if st.typeIdx == len(TargetType) {
			st.phase = readFields
		}

	case readFields:
		if b == '*' {
			st.phase = checksumVerify
			st.pair.reset()
			break
		}
		st.sum ^= b
		if b == ',' {
			st.field = nextField(st.field)
			st.pair.reset()
			break
		}
		st.readField(b)

	case checksumVerify:
		if !st.pair.push(b) {
			break
		}
		if hex2(st.pair.buf[0], st.pair.buf[1]) != st.sum {
			return InvalidChecksum, true
		}
		if st.sawTime {
			return Success, true
		}
		return NoSignal, true
	}
	return Success, false
}

func (st *decodeState) readField(b byte) {
	switch {
	case st.field == fieldTime:
		if st.collectDigits(b, &st.timeOut, true) {
			st.sawTime = true
		}
	case st.field == fieldDate && st.withDate:
		st.collectDigits(b, &st.dateOut, false)
	}
}

// collectDigits pairs up ASCII digits and writes each completed pair to out.
// With skipFraction set, everything from a '.' to the end of the field is
// dropped. It reports whether a value was written.
func (st *decodeState) collectDigits(b byte, out *cursor, skipFraction bool) bool {
	if skipFraction && (st.hitDecimal || b == '.') {
		st.hitDecimal = true
		return false
	}
	if !st.pair.push(b) {
		return false
	}
	out.write(atoi2(st.pair.buf[0], st.pair.buf[1]))
	return true
}

// nextField saturates rather than wrapping back onto the time field.
func nextField(f uint8) uint8 {
	if f == math.MaxUint8 {
		return f
	}
	return f + 1
}

// atoi2 converts two ASCII decimal digits. Non-digits are not rejected and
// produce a meaningless value.
func atoi2(tens, ones byte) uint8 {
	return (tens-'0')*10 + (ones - '0')
}

// hex2 converts two uppercase ASCII hex digits. Any other byte contributes a
// zero nibble.
func hex2(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
