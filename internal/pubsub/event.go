package pubsub

import "time"

// TopicJobRuns is the topic carrying guarded run lifecycle events.
const TopicJobRuns = "jobguard.job-runs"

// Run lifecycle actions.
const (
	ActionStarted   = "started"
	ActionSkipped   = "skipped"
	ActionCompleted = "completed"
	ActionFailed    = "failed"
)

// JobRunEvent describes one observation of a guarded run. Events are
// published best effort; they are not a delivery guarantee and carry no
// execution history the system depends on.
type JobRunEvent struct {
	Key      string    `json:"key"`
	Instance string    `json:"instance"`
	Action   string    `json:"action"`
	At       time.Time `json:"at"`
	Error    string    `json:"error,omitempty"`
}
