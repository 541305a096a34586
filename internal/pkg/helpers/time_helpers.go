package helpers

import (
	"time"

	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// ParseDuration parses durationStr and falls back to defaultDuration when it is
// empty, malformed or not positive.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}

	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		logger.Warn().Err(err).Str("value", durationStr).Dur("default", defaultDuration).Msg("Invalid duration, using default")
		return defaultDuration
	}
	return duration
}
