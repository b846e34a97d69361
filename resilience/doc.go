// Package resilience throttles outbound requests with a token bucket.
//
//	l := resilience.NewLimiter(resilience.LimiterConfig{Rate: 5, Burst: 10})
//	if err := l.Wait(ctx); err != nil {
//	    return err
//	}
package resilience
