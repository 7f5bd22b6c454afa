package nmea

import (
	"fmt"
	"time"
)

// Checksum is the XOR of every payload byte (everything between '$' and '*').
func Checksum(payload string) byte {
	var ck byte
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return ck
}

// Sentence frames payload as "$<payload>*HH\r\n".
func Sentence(payload string) string {
	return fmt.Sprintf("$%s*%02X\r\n", payload, Checksum(payload))
}

// FormatRMC builds a GPRMC sentence for t. Without a fix the time and date
// fields are left empty and the status is V, the way receivers report while
// acquiring.
func FormatRMC(t time.Time, fix bool) string {
	if !fix {
		return Sentence("GPRMC,,V,,,,,,,,,,N")
	}
	t = t.UTC()
	payload := fmt.Sprintf("GPRMC,%02d%02d%02d.%02d,A,,,,,,,%02d%02d%02d,,,A",
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(10*time.Millisecond),
		t.Day(), int(t.Month()), t.Year()%100,
	)
	return Sentence(payload)
}
