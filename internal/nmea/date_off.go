//go:build !gpsdate

package nmea

// DefaultLayout is selected at build time. Build with -tags gpsdate to
// extract the date as well.
const DefaultLayout = TimeOnly
