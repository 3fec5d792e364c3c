package core

import "time"

// TimestampLen is the length of the formatted timestamp
// "YYYY-MM-DD HH:MM:SS.mmm".
const TimestampLen = 23

// reconstruct derives the current instant from the baseline plus elapsed
// local time. Both query operations go through here so the string and the
// epoch-millisecond forms can never disagree.
//
// The elapsed subtraction is wraparound-correct uint32 arithmetic; it holds
// as long as the baseline is resynced far more often than the counter's
// ~49.7-day wrap period, which a 1 Hz resync cadence satisfies by six orders
// of magnitude.
func (e *Engine) reconstruct() (seconds int64, ms uint32) {
	if !e.initialized {
		// Never synced: a coarse direct read with the millisecond
		// field zeroed beats no answer at all.
		t, err := e.rtc.ReadTime()
		if err != nil {
			return 0, 0
		}
		return t.Unix(), 0
	}
	elapsed := e.local.Millis() - e.base.millis
	return e.base.seconds + int64(elapsed/1000), elapsed % 1000
}

// EpochMillis returns the reconstructed current time as Unix epoch
// milliseconds.
func (e *Engine) EpochMillis() uint64 {
	seconds, ms := e.reconstruct()
	return uint64(seconds)*1000 + uint64(ms)
}

// AppendTimestamp appends the reconstructed current time formatted as
// "YYYY-MM-DD HH:MM:SS.mmm" and returns the extended slice. It allocates
// nothing when dst has TimestampLen spare capacity, so it is safe in a
// tight telemetry loop.
func (e *Engine) AppendTimestamp(dst []byte) []byte {
	seconds, ms := e.reconstruct()
	return appendDateTime(dst, seconds, ms)
}

// appendDateTime formats epoch seconds plus a millisecond remainder.
func appendDateTime(dst []byte, seconds int64, ms uint32) []byte {
	t := time.Unix(seconds, 0).UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	dst = appendPadded(dst, uint32(year), 4)
	dst = append(dst, '-')
	dst = appendPadded(dst, uint32(month), 2)
	dst = append(dst, '-')
	dst = appendPadded(dst, uint32(day), 2)
	dst = append(dst, ' ')
	dst = appendPadded(dst, uint32(hour), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, uint32(min), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, uint32(sec), 2)
	dst = append(dst, '.')
	dst = appendPadded(dst, ms, 3)
	return dst
}

// appendPadded appends n as zero-padded decimal of the given width.
// Values wider than width keep all their digits.
func appendPadded(dst []byte, n uint32, width int) []byte {
	var buf [10]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	for len(buf)-pos < width {
		pos--
		buf[pos] = '0'
	}
	return append(dst, buf[pos:]...)
}

// AppendUint appends n in decimal. Lightweight alternative to fmt for
// firmware telemetry paths.
func AppendUint(dst []byte, n uint64) []byte {
	var buf [20]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, buf[pos:]...)
}

// utoa converts an unsigned integer to a string without fmt.
func utoa(n uint32) string {
	return string(AppendUint(nil, uint64(n)))
}
