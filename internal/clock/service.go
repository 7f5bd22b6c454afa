// Package clock runs the decode loop and drives the display from each result.
package clock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"gpsclock/internal/nmea"
)

// Error codes shown on the display as "E<n>".
const (
	ErrCodeChecksum = 1
	ErrCodeFormat   = 2
	ErrCodeSource   = 3
)

// Source is the receiver byte stream. Err reports why the stream ended;
// until then it must be nil.
type Source interface {
	nmea.ByteSource
	Err() error
}

// Display is what the loop shows results on.
type Display interface {
	ShowTime(h, m, s uint8) error
	ShowNoSignal() error
	ShowError(code uint8) error
}

type Config struct {
	// Layout is fixed for the life of the service.
	Layout nmea.Layout
	// UTCOffsetHours shifts the displayed hour; the date is left as UTC.
	UTCOffsetHours int
}

type Snapshot struct {
	Layout     string            `json:"layout"`
	LastStatus string            `json:"last_status,omitempty"`
	Valid      bool              `json:"valid"`
	TimeUTC    string            `json:"time_utc,omitempty"`
	DateUTC    string            `json:"date_utc,omitempty"`
	LocalTime  string            `json:"local_time,omitempty"`
	LastFixAt  string            `json:"last_fix_at,omitempty"`
	Counts     map[string]uint64 `json:"counts"`
	LastError  string            `json:"last_error,omitempty"`
}

type Service struct {
	cfg  Config
	src  Source
	disp Display
	log  logrus.FieldLogger

	rec  *nmea.Record
	prev nmea.Status

	counts [5]atomic.Uint64
	last   atomic.Value // Snapshot

	nowFn func() time.Time
}

func New(cfg Config, src Source, disp Display, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Service{
		cfg:   cfg,
		src:   src,
		disp:  disp,
		log:   log.WithField("component", "clock"),
		rec:   nmea.NewRecord(cfg.Layout),
		prev:  nmea.Status(0xFF),
		nowFn: time.Now,
	}
	s.last.Store(Snapshot{Layout: s.rec.Layout().String(), Counts: map[string]uint64{}})
	return s
}

// Run decodes until ctx is done or the source fails. A source failure is
// shown as E3 and returned.
func (s *Service) Run(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("clock service is nil")
	}
	s.log.WithField("layout", s.rec.Layout()).Info("clock loop started")
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.Step()

		if err := s.src.Err(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.setError(err.Error())
			s.show(func() error { return s.disp.ShowError(ErrCodeSource) })
			s.log.WithError(err).Error("gps source stopped")
			return fmt.Errorf("gps source: %w", err)
		}
	}
}

// Step runs one decode attempt and updates the display for its status.
func (s *Service) Step() nmea.Status {
	st := nmea.Decode(s.rec, s.src)
	if int(st) < len(s.counts) {
		s.counts[st].Add(1)
	}

	// A decode cut short by the source ending says nothing about the receiver.
	if s.src.Err() != nil {
		return st
	}

	switch st {
	case nmea.Success:
		h := LocalHour(s.rec.Hour(), s.cfg.UTCOffsetHours)
		s.show(func() error { return s.disp.ShowTime(h, s.rec.Minute(), s.rec.Second()) })
		s.publish(st, true)
	case nmea.NoMatch:
		// Other sentence types are expected; nothing to show.
		return st
	case nmea.NoSignal:
		s.show(func() error { return s.disp.ShowNoSignal() })
		s.publish(st, false)
	case nmea.InvalidChecksum:
		s.show(func() error { return s.disp.ShowError(ErrCodeChecksum) })
		s.publish(st, false)
	case nmea.BadFormat:
		s.show(func() error { return s.disp.ShowError(ErrCodeFormat) })
		s.publish(st, false)
	}

	if st != s.prev {
		s.logTransition(st)
		s.prev = st
	}
	return st
}

func (s *Service) logTransition(st nmea.Status) {
	entry := s.log.WithField("status", st.String())
	switch st {
	case nmea.Success:
		entry.WithField("utc", s.rec.TimeString()).Info("gps time acquired")
	case nmea.NoSignal:
		entry.Info("gps waiting for fix")
	case nmea.InvalidChecksum:
		entry.Warn("gps sentence failed checksum")
	case nmea.BadFormat:
		entry.Warn("gps stream unreadable (is the receiver connected?)")
	}
}

func (s *Service) show(fn func() error) {
	if s.disp == nil {
		return
	}
	if err := fn(); err != nil {
		s.setError(err.Error())
		s.log.WithError(err).Debug("display update failed")
	}
}

func (s *Service) publish(st nmea.Status, ok bool) {
	cur := s.Snapshot()
	cur.LastStatus = st.String()
	cur.Valid = ok
	if ok {
		cur.TimeUTC = s.rec.TimeString()
		cur.DateUTC = s.rec.DateString()
		cur.LocalTime = fmt.Sprintf("%02d:%02d:%02d", LocalHour(s.rec.Hour(), s.cfg.UTCOffsetHours), s.rec.Minute(), s.rec.Second())
		cur.LastFixAt = s.nowFn().UTC().Format(time.RFC3339Nano)
	}
	s.last.Store(cur)
}

func (s *Service) setError(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	s.last.Store(cur)
}

// Snapshot returns the latest published state with current counters.
func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	snap := v.(Snapshot)
	counts := make(map[string]uint64, len(s.counts))
	for _, st := range nmea.AllStatuses() {
		counts[st.String()] = s.counts[st].Load()
	}
	snap.Counts = counts
	return snap
}

// LocalHour applies a whole-hour offset to a UTC hour, wrapping into 0..23.
func LocalHour(utc uint8, offset int) uint8 {
	h := (int(utc) + offset) % 24
	if h < 0 {
		h += 24
	}
	return uint8(h)
}
