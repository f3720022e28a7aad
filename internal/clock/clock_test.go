package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishCutoffIsStartOfNextUTCDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	cutoff := PublishCutoff(now)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), cutoff)

	// Midnight still rolls to the following day.
	midnight := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), PublishCutoff(midnight))
}

func TestPublishCutoffNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*3600)
	local := time.Date(2025, 3, 15, 2, 0, 0, 0, zone) // 2025-03-14 19:00 UTC
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), PublishCutoff(local))
}

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := NewFakeClock(start)
	assert.Equal(t, start, fake.Now())

	fake.Advance(36 * time.Hour)
	assert.Equal(t, start.Add(36*time.Hour), fake.Now())
}
