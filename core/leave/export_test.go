package leave

import "time"

// SetNow freezes the service clock during tests; the returned func
// restores it.
func SetNow(now time.Time) (restore func()) {
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	return func() { nowFunc = orig }
}
