package ratelimiter

import "time"

type Limiter interface {
	// Allow reports whether key may proceed and, if not, how long to wait.
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
