package resilience

import (
	"context"
	"sync"
	"time"
)

// LimiterConfig configures a Limiter.
type LimiterConfig struct {
	// Rate is the number of requests allowed per second. 0 disables limiting.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	// Burst is the maximum burst size. Defaults to ceil(Rate), at least 1.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// Enabled reports whether the config limits anything.
func (c LimiterConfig) Enabled() bool {
	return c.Rate > 0
}

// Limiter is a token bucket. It is safe for concurrent use.
type Limiter struct {
	rate  float64
	burst int

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	onWait     func(time.Duration)
}

// NewLimiter creates a limiter with a full bucket. It returns nil when cfg is
// disabled; a nil *Limiter allows everything.
func NewLimiter(cfg LimiterConfig) *Limiter {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.Rate)
		if float64(cfg.Burst) < cfg.Rate {
			cfg.Burst++
		}
	}
	l := &Limiter{
		rate:  cfg.Rate,
		burst: cfg.Burst,
		now:   time.Now,
	}
	l.tokens = float64(cfg.Burst)
	l.lastRefill = l.now()
	return l
}

// OnWait registers a callback invoked with the delay whenever Wait has to block.
func (l *Limiter) OnWait(fn func(time.Duration)) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.onWait = fn
	l.mu.Unlock()
}

// Allow takes a token if one is available.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or ctx is done. A token reserved
// by a cancelled Wait is not returned to the bucket.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	delay, onWait := l.reserve()
	if delay <= 0 {
		return ctx.Err()
	}
	if onWait != nil {
		onWait(delay)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve takes a token, going into debt when the bucket is empty, and
// returns how long the caller must wait for it.
func (l *Limiter) reserve() (time.Duration, func(time.Duration)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	l.tokens--
	if l.tokens >= 0 {
		return 0, l.onWait
	}
	wait := -l.tokens / l.rate
	return time.Duration(wait * float64(time.Second)), l.onWait
}

func (l *Limiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	l.lastRefill = now

	l.tokens += elapsed * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}
}

// Tokens returns the number of available tokens. It is negative while
// waiters are queued.
func (l *Limiter) Tokens() float64 {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.tokens
}

// Rate returns the configured requests per second.
func (l *Limiter) Rate() float64 {
	if l == nil {
		return 0
	}
	return l.rate
}

// Burst returns the bucket size.
func (l *Limiter) Burst() int {
	if l == nil {
		return 0
	}
	return l.burst
}
