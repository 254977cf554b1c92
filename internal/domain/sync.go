package domain

import "time"

// Feed origins reported in SyncStats.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
)

// SyncStats holds statistics about a sync operation.
type SyncStats struct {
	FeedURL   string
	Source    string
	Fetched   int
	Served    int
	Saved     int
	Published int
	Errors    int
	RemoteErr error
	Duration  time.Duration
}
