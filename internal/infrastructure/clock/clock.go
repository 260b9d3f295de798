package clock

import (
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// SystemClock implements domain.Clock with wall-clock time
type SystemClock struct{}

// NewSystemClock creates the production clock
func NewSystemClock() domain.Clock {
	return SystemClock{}
}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}
