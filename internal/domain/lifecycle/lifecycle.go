// Package lifecycle holds shared settings for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start-up probes and graceful shutdown of long-lived components.
const DefaultTimeout = 10 * time.Second
