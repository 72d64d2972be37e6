package scheduler

import "time"

const (
	defaultDelayLoop  = 10 * time.Second // default delay between jobs
	defaultRetries    = 1                // default number of retry attempts
	defaultRetryDelay = time.Second      // default delay before retrying
)

// Config holds the configuration for scheduling jobs.
type Config struct {
	// Delay between job executions in seconds.
	DelayLoop *float64 `yaml:"delay_loop"`
	// Number of retry attempts.
	Retries *int `yaml:"retries"`
	// Delay before retrying in seconds.
	RetryDelay *float64 `yaml:"retry_delay"`
}

// GetDelayLoop returns the delay loop duration.
// If the delay loop is not set, it returns the default delay loop value.
func (m Config) GetDelayLoop() time.Duration {
	if m.DelayLoop == nil {
		return defaultDelayLoop
	}
	return time.Duration(*m.DelayLoop * float64(time.Second))
}

// GetRetries returns the number of retry attempts.
// If retries are not set, it returns the default number of retries.
func (m Config) GetRetries() int {
	if m.Retries == nil {
		return defaultRetries
	}
	return *m.Retries
}

// GetRetryDelay returns the retry delay duration.
// If retry delay is not set, it returns the default retry delay value.
func (m Config) GetRetryDelay() time.Duration {
	if m.RetryDelay == nil {
		return defaultRetryDelay
	}
	return time.Duration(*m.RetryDelay * float64(time.Second))
}
