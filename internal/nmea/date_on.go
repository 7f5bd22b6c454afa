//go:build gpsdate

package nmea

// DefaultLayout is selected at build time; this build extracts the date.
const DefaultLayout = TimeAndDate
