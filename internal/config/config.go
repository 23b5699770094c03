// Package config holds application-wide configuration defaults.
package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultNATSURL is empty; live notification push is disabled unless set.
	DefaultNATSURL = ""

	// DefaultNotifyQueueSize bounds the notification dispatch queue.
	DefaultNotifyQueueSize = 256

	// DBMaxConns and DBMinConns size the pgx pool. The shop staff is a
	// handful of users; a small pool covers it.
	DBMaxConns = 10
	DBMinConns = 2
)
