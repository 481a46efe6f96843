package dispatcher

import "math/rand/v2"

// Request ids are 10-digit integers.
const (
	MinRequestID int64 = 1_000_000_000
	MaxRequestID int64 = 9_999_999_999
)

// RequestIDSource produces request ids.
type RequestIDSource func() int64

// RandomRequestID returns a uniformly random id in [MinRequestID, MaxRequestID].
func RandomRequestID() int64 {
	return MinRequestID + rand.Int64N(MaxRequestID-MinRequestID+1)
}

// GetRequestID returns the dispatcher's cached request id, generating one
// when none is cached yet or renew is true. Request does not consume this
// value; pass it with WithRequestID to correlate calls under one id.
func (d *Dispatcher) GetRequestID(renew bool) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.requestID == 0 || renew {
		d.requestID = d.newID()
	}
	return d.requestID
}
