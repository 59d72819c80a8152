package clock

import "time"

// NowFunc returns the current time. Tests override it to pin task and
// registry timestamps.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
