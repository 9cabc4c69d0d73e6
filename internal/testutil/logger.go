package testutil

import (
	"io"
	"math"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, math.MaxInt32)
}
