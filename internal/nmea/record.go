package nmea

import "fmt"

// Layout selects which slots a Record carries.
type Layout uint8

const (
	// TimeOnly records hour, minute, second.
	TimeOnly Layout = iota
	// TimeAndDate records hour, minute, second, day, month, year.
	TimeAndDate
)

const (
	timeSlots = 3
	dateSlots = 3
	maxSlots  = timeSlots + dateSlots
)

func (l Layout) slots() int {
	if l == TimeAndDate {
		return maxSlots
	}
	return timeSlots
}

func (l Layout) String() string {
	switch l {
	case TimeOnly:
		return "time"
	case TimeAndDate:
		return "time+date"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Record is the decoder's output: consecutive two-digit values in the order
// hour, minute, second[, day, month, year].
//
// Contents are only meaningful after Decode returned Success. Any other status
// may leave some slots overwritten.
type Record struct {
	layout Layout
	slots  [maxSlots]uint8
}

// NewRecord returns a zeroed record for the given layout.
func NewRecord(l Layout) *Record {
	if l != TimeAndDate {
		l = TimeOnly
	}
	return &Record{layout: l}
}

func (r *Record) Layout() Layout { return r.layout }

// Len is the number of usable slots.
func (r *Record) Len() int { return r.layout.slots() }

// Values returns a copy of the usable slots.
func (r *Record) Values() []uint8 {
	out := make([]uint8, r.Len())
	copy(out, r.slots[:r.Len()])
	return out
}

func (r *Record) Hour() uint8   { return r.slots[0] }
func (r *Record) Minute() uint8 { return r.slots[1] }
func (r *Record) Second() uint8 { return r.slots[2] }

// Day, Month and Year are zero unless the layout is TimeAndDate.
func (r *Record) Day() uint8   { return r.slot(3) }
func (r *Record) Month() uint8 { return r.slot(4) }
func (r *Record) Year() uint8  { return r.slot(5) }

// HasDate reports whether the record carries date slots.
func (r *Record) HasDate() bool { return r.layout == TimeAndDate }

func (r *Record) slot(i int) uint8 {
	if i >= r.Len() {
		return 0
	}
	return r.slots[i]
}

// TimeString formats the time slots as hh:mm:ss.
func (r *Record) TimeString() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hour(), r.Minute(), r.Second())
}

// DateString formats the date slots as dd/mm/yy, or "" without date slots.
func (r *Record) DateString() string {
	if !r.HasDate() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%02d", r.Day(), r.Month(), r.Year())
}

// cursor writes a run of slots left to right, dropping anything past its end.
type cursor struct {
	rec  *Record
	next int
	end  int
}

func (c *cursor) write(v uint8) {
	if c.next >= c.end {
		return
	}
	c.rec.slots[c.next] = v
	c.next++
}
