package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	assert.Equal(t, "portfolio:views:day:2024-03-09", dayKey(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
}
