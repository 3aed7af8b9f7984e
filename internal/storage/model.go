package storage

import "time"

// ScanRecord is one row of the scan history log: the summary of a single
// completed cache scan. Snapshots themselves are never persisted; the log
// only keeps enough to show how the cache evolved over time.
type ScanRecord struct {
	ID         string
	ScannedAt  time.Time
	Root       string
	OrgCount   int
	ModelCount int
	TotalBytes int64
	Duration   time.Duration
}
