package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now; Reset() }()
	Reset()

	assert.EqualValues(t, 0, Ticks(12_500_000))
	now = start.Add(1500 * time.Millisecond)
	assert.EqualValues(t, 18_750_000, Ticks(12_500_000))
	assert.EqualValues(t, 1500, Millis())

	now = start.Add(-time.Second)
	assert.EqualValues(t, 0, Elapsed())
}
