package common

import (
	"context"
	"log"
	"time"

	"github.com/rs/zerolog"
)

type RetryConfig struct {
	ShouldRetry func(attemptNumber uint32, err error) bool
	NextDelay   func(attemptNumber uint32) time.Duration
}

type RetryRunner struct {
	config RetryConfig
	logger zerolog.Logger
}

func NewRetryRunner(config RetryConfig, logger zerolog.Logger) RetryRunner {
	return RetryRunner{
		config: config,
		logger: logger,
	}
}

func (r *RetryRunner) Do(ctx context.Context, action func(ctx context.Context) error) error {
	attemptNumber := uint32(0)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		attemptNumber++
		err := action(ctx)
		if err == nil || !r.config.ShouldRetry(attemptNumber, err) {
			return err
		}

		delay := r.config.NextDelay(attemptNumber)
		r.logger.Debug().Err(err).Uint32("attempt", attemptNumber).Msgf("not ready yet, retrying in %s", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func LimitRetries(maxRetries uint32) func(attemptNumber uint32, err error) bool {
	return func(attemptNumber uint32, _ error) bool {
		return attemptNumber < maxRetries
	}
}

// RetryOn retries only errors accepted by match, up to maxRetries attempts.
func RetryOn(maxRetries uint32, match func(error) bool) func(attemptNumber uint32, err error) bool {
	return func(attemptNumber uint32, err error) bool {
		return attemptNumber < maxRetries && match(err)
	}
}

func FixedDelay(delay time.Duration) func(attemptNumber uint32) time.Duration {
	if delay < 0 {
		log.Panicf("negative delay %s", delay)
	}
	return func(uint32) time.Duration {
		return delay
	}
}

func ExponentialDelay(baseDelay, maxDelay time.Duration) func(attemptNumber uint32) time.Duration {
	if baseDelay > maxDelay {
		log.Panicf("baseDelay %s > maxDelay %s", baseDelay, maxDelay)
	}

	return func(attemptNumber uint32) time.Duration {
		result := baseDelay
		for i := uint32(1); i < attemptNumber; i++ {
			result *= 2
			if result >= maxDelay {
				return maxDelay
			}
		}
		return result
	}
}
