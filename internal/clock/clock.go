package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Ticker delivers ticks at a fixed interval until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer fires once after its duration elapsed.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// NewTickerFunc creates tickers. Override in tests to drive polling manually.
var NewTickerFunc = func(d time.Duration) Ticker { return &ticker{t: time.NewTicker(d)} }

// NewTimerFunc creates timers. Override in tests to drive deadlines manually.
var NewTimerFunc = func(d time.Duration) Timer { return &timer{t: time.NewTimer(d)} }

// NewTicker is a thin wrapper around NewTickerFunc.
func NewTicker(d time.Duration) Ticker { return NewTickerFunc(d) }

// NewTimer is a thin wrapper around NewTimerFunc.
func NewTimer(d time.Duration) Timer { return NewTimerFunc(d) }

type ticker struct{ t *time.Ticker }

func (t *ticker) C() <-chan time.Time { return t.t.C }
func (t *ticker) Stop()               { t.t.Stop() }

type timer struct{ t *time.Timer }

func (t *timer) C() <-chan time.Time { return t.t.C }
func (t *timer) Stop() bool          { return t.t.Stop() }
