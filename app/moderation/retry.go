package moderation

import "time"

// backoff returns the delay before the retry following failed attempt i,
// doubling from base: base, 2*base, 4*base, ...
func backoff(base time.Duration, i int) time.Duration {
	return base << i
}

// retry runs fn up to attempts times, sleeping with exponential backoff
// between failures. No sleep happens after the last attempt. The sleep
// function is injected so tests run without waiting.
func retry(attempts int, base time.Duration, sleep func(time.Duration), fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			sleep(backoff(base, i))
		}
	}
	return err
}
