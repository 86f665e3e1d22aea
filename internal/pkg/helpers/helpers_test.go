package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.14, Round2(400.0/56.0))
	assert.Equal(t, 3.57, Round2(25.0/7.0))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 2.5, Round2(2.5))
	assert.Equal(t, 2.12, Round2(2.125))
	assert.Equal(t, 90.62, Round2(90.625))
	// 1.005 is stored slightly below the half
	assert.Equal(t, 1.0, Round2(1.005))
	assert.Equal(t, -1.24, Round2(-1.235))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 168*time.Hour, ParseDuration("168h", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("seven days", time.Hour))
}

func TestNowUTC(t *testing.T) {
	now := NowUTC()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%1000)
	assert.Equal(t, 5*time.Second, ParseDuration("", 5*time.Second))
}
