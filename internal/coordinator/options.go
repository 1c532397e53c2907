package coordinator

import (
	"fmt"
	"time"
)

const (
	// DefaultTTL is the crash-recovery safety bound applied when a lock
	// option does not set one.
	DefaultTTL = 60 * time.Second

	// DefaultRetryDelay is the wait between refused acquire attempts when
	// retries are enabled without an explicit delay.
	DefaultRetryDelay = 100 * time.Millisecond
)

// LockOptions is the static per-operation lock configuration bound to a
// guarded unit of work at setup time.
type LockOptions struct {
	// Key uniquely identifies the mutually exclusive resource or job.
	Key string

	// TTL bounds how long an unreleased lock can leak if the holding
	// instance dies mid-execution. It does not bound execution time.
	TTL time.Duration

	// MaxRetries is the number of additional acquire attempts after a
	// refused first attempt. Zero means a single attempt.
	MaxRetries int

	// RetryDelay is the wait between attempts.
	RetryDelay time.Duration
}

// Validate reports whether the options can identify and bound a lock.
func (o LockOptions) Validate() error {
	if o.Key == "" {
		return fmt.Errorf("empty lock key not allowed")
	}
	if o.TTL < 0 {
		return fmt.Errorf("negative ttl not allowed for lock %q", o.Key)
	}
	if o.MaxRetries < 0 {
		return fmt.Errorf("negative max retries not allowed for lock %q", o.Key)
	}
	if o.RetryDelay < 0 {
		return fmt.Errorf("negative retry delay not allowed for lock %q", o.Key)
	}
	return nil
}

// WithDefaults fills unset fields with the package defaults.
func (o LockOptions) WithDefaults() LockOptions {
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}
