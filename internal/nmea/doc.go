// Package nmea decodes the time (and optionally date) out of NMEA 0183 RMC
// sentences, one byte at a time.
//
// The decoder never buffers a sentence. Each call to Decode pulls bytes from a
// ByteSource until it reaches a verdict or has pulled MaxSentenceLen bytes,
// whichever comes first.
package nmea
