package nmea

import (
	"strings"
	"testing"
	"time"
)

func TestChecksum_KnownSentence(t *testing.T) {
	if got := Checksum("GPVTG,,,,,,,,,N"); got != 0x30 {
		t.Fatalf("checksum=0x%02X want 0x30", got)
	}
}

func TestSentence_Framing(t *testing.T) {
	got := Sentence("GPRMC,091502.00,V,,,,,,,040219,,,N")
	if got != "$GPRMC,091502.00,V,,,,,,,040219,,,N*7C\r\n" {
		t.Fatalf("sentence=%q", got)
	}
}

func TestFormatRMC_DecodesBack(t *testing.T) {
	at := time.Date(2024, time.March, 7, 21, 4, 59, 780*int(time.Millisecond), time.UTC)
	line := FormatRMC(at, true)
	if len(line) > MaxSentenceLen {
		t.Fatalf("sentence too long: %d", len(line))
	}

	rec := NewRecord(TimeAndDate)
	if st := Decode(rec, newStream(line)); st != Success {
		t.Fatalf("status=%s line=%q", st, line)
	}
	if rec.TimeString() != "21:04:59" || rec.DateString() != "07/03/24" {
		t.Fatalf("decoded %s %s from %q", rec.TimeString(), rec.DateString(), line)
	}
}

func TestFormatRMC_NoFix(t *testing.T) {
	line := FormatRMC(time.Now(), false)
	if !strings.HasPrefix(line, "$GPRMC,,V,") {
		t.Fatalf("line=%q", line)
	}
	if st := Decode(NewRecord(TimeAndDate), newStream(line)); st != NoSignal {
		t.Fatalf("status=%s want no_signal", st)
	}
}
