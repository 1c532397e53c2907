package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AcquiredCounter tracks successful lock acquisitions.
	AcquiredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_lock_acquired_total",
		Help: "Total number of successful lock acquisitions",
	})
	// ContentionCounter tracks acquire attempts refused because another
	// owner held the lock.
	ContentionCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_lock_contention_total",
		Help: "Total number of acquire attempts refused due to contention",
	})
	// DegradedCounter tracks store operations served by the local fallback
	// because the remote store was unreachable.
	DegradedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_store_degraded_total",
		Help: "Total number of operations degraded to the local fallback store",
	})
	// ReleasedCounter tracks owner-confirmed lock releases.
	ReleasedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_lock_released_total",
		Help: "Total number of lock releases confirmed by ownership",
	})
	// SkippedRunsCounter tracks guarded runs skipped because the lock was
	// held by another instance.
	SkippedRunsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_runs_skipped_total",
		Help: "Total number of guarded runs skipped due to a held lock",
	})
	// FailedRunsCounter tracks guarded runs whose unit of work failed.
	FailedRunsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_runs_failed_total",
		Help: "Total number of guarded runs that returned an error",
	})
	// CompletedRunsCounter tracks guarded runs that finished without error.
	CompletedRunsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobguard_runs_completed_total",
		Help: "Total number of guarded runs completed successfully",
	})
)

// NewRegistry creates a registry with all jobguard metrics registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	Register(reg)
	return reg
}

// Register registers the jobguard metrics on the provided registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		AcquiredCounter,
		ContentionCounter,
		DegradedCounter,
		ReleasedCounter,
		SkippedRunsCounter,
		FailedRunsCounter,
		CompletedRunsCounter,
	)
}
