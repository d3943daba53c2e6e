// Package clock provides the wall-clock implementation of the Clock port.
package clock

import (
	"time"

	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
)

// SystemClock reads the real wall clock.
type SystemClock struct{}

var _ portssvc.Clock = SystemClock{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
