package constants

import "time"

// Inactivity timer defaults
const (
	// TickInterval is the polling period while a run is active
	TickInterval = 100 * time.Millisecond

	// InactivityTimeout is the pause length that wipes the entry.
	// Compared with strict greater-than against wall-clock delta.
	InactivityTimeout = 1 * time.Second
)
