package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

var boot = time.Now()

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Elapsed returns the monotonic duration since the kernel clock was booted.
// Readings before boot (possible when NowFunc is stubbed) are clamped to zero.
func Elapsed() time.Duration {
	d := Now().Sub(boot)
	if d < 0 {
		return 0
	}
	return d
}

// Millis returns milliseconds elapsed since boot.
func Millis() uint64 { return uint64(Elapsed() / time.Millisecond) }

// Ticks returns the number of cycles of a counter running at freq Hz since boot.
func Ticks(freq uint64) uint64 {
	ns := uint64(Elapsed())
	sec, rem := ns/uint64(time.Second), ns%uint64(time.Second)
	return sec*freq + rem*freq/uint64(time.Second)
}

// Reset moves the boot reference to the current NowFunc reading.
func Reset() { boot = NowFunc() }
