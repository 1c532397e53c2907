package coordinator

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// NewIdentity generates the opaque owner id for this process. It combines
// host, pid, start time and a random component so that two instances of the
// fleet cannot collide even when started in the same nanosecond on the same
// host after a pid reuse.
func NewIdentity() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown-host"
	}
	return fmt.Sprintf("%s-%d-%d-%s", host, os.Getpid(), time.Now().UnixNano(), uuid.NewString())
}
