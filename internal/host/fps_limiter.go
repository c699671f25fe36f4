package host

import "time"

// spinWindow is how close to the deadline Wait stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	// Limit is the target frames per second; 0 disables limiting.
	Limit int

	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{Limit: limit}
}

// Wait blocks until the next frame should be rendered based on Limit.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait() {
	if f.Limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.Limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// late by more than a frame (hitch): resync to avoid a burst of catch-up frames
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
