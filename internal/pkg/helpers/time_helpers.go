package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses s, falling back to def when s is empty or malformed.
// Config validation rejects bad values first, so the fallback only guards direct callers.
func ParseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}

// NowUTC returns the current time truncated to microseconds, the precision Postgres stores.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
