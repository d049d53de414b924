package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := NowFunc
	NowFunc = func() time.Time { return fixed }
	defer func() { NowFunc = prev }()
	assert.Equal(t, fixed, Now())
}

func TestTickerAndTimer(t *testing.T) {
	tk := NewTicker(5 * time.Millisecond)
	defer tk.Stop()
	tm := NewTimer(20 * time.Millisecond)
	defer tm.Stop()

	ticks := 0
	for {
		select {
		case <-tk.C():
			ticks++
			continue
		case <-tm.C():
		}
		break
	}
	assert.GreaterOrEqual(t, ticks, 1)
}
