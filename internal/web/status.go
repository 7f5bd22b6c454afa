package web

import (
	"sync/atomic"
	"time"

	"gpsclock/internal/clock"
)

// ClockSource is the part of the clock service the status API reads.
type ClockSource interface {
	Snapshot() clock.Snapshot
}

type Status struct {
	startUnixNano int64
	device        atomic.Value // string
	baud          atomic.Int64
	bytesFn       atomic.Value // func() uint64
	clk           ClockSource
}

func NewStatus(clk ClockSource) *Status {
	s := &Status{clk: clk}
	atomic.StoreInt64(&s.startUnixNano, time.Now().UTC().UnixNano())
	s.device.Store("")
	s.bytesFn.Store(func() uint64 { return 0 })
	return s
}

// SetSerial records the receiver link and a counter of bytes read from it.
func (s *Status) SetSerial(device string, baud int, bytesRead func() uint64) {
	s.device.Store(device)
	s.baud.Store(int64(baud))
	if bytesRead != nil {
		s.bytesFn.Store(bytesRead)
	}
}

type StatusSnapshot struct {
	Service   string         `json:"service"`
	NowUTC    string         `json:"now_utc"`
	UptimeSec int64          `json:"uptime_sec"`
	Device    string         `json:"device,omitempty"`
	Baud      int            `json:"baud,omitempty"`
	BytesRead uint64         `json:"bytes_read"`
	Clock     clock.Snapshot `json:"clock"`
}

func (s *Status) Snapshot(nowUTC time.Time) StatusSnapshot {
	if nowUTC.IsZero() {
		nowUTC = time.Now().UTC()
	}
	start := time.Unix(0, atomic.LoadInt64(&s.startUnixNano)).UTC()
	snap := StatusSnapshot{
		Service:   "gpsclock",
		NowUTC:    nowUTC.UTC().Format(time.RFC3339Nano),
		UptimeSec: int64(nowUTC.Sub(start).Seconds()),
		Device:    s.device.Load().(string),
		Baud:      int(s.baud.Load()),
		BytesRead: s.bytesFn.Load().(func() uint64)(),
	}
	if s.clk != nil {
		snap.Clock = s.clk.Snapshot()
	}
	return snap
}
