package nmea

import "testing"

func TestNewRecord_Layouts(t *testing.T) {
	if n := NewRecord(TimeOnly).Len(); n != 3 {
		t.Fatalf("time-only len=%d", n)
	}
	if n := NewRecord(TimeAndDate).Len(); n != 6 {
		t.Fatalf("time+date len=%d", n)
	}
	// Unknown layouts fall back to the smallest record.
	if r := NewRecord(Layout(9)); r.Layout() != TimeOnly {
		t.Fatalf("layout=%s", r.Layout())
	}
}

func TestCursor_DropsPastEnd(t *testing.T) {
	r := NewRecord(TimeOnly)
	c := cursor{rec: r, end: timeSlots}
	for v := uint8(1); v <= 5; v++ {
		c.write(v)
	}
	if got := r.Values(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("values=%v", got)
	}
	if r.Day() != 0 {
		t.Fatalf("day=%d want 0 on time-only record", r.Day())
	}
}

func TestRecord_Strings(t *testing.T) {
	r := NewRecord(TimeAndDate)
	copy(r.slots[:], []uint8{7, 5, 3, 24, 12, 9})
	if r.TimeString() != "07:05:03" {
		t.Fatalf("time=%q", r.TimeString())
	}
	if r.DateString() != "24/12/09" {
		t.Fatalf("date=%q", r.DateString())
	}
}
