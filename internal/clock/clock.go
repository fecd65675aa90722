package clock

import "time"

// Clock provides the current time so expiry logic can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func New() Real { return Real{} }

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns T. Tests move T forward to simulate elapsed time.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }
