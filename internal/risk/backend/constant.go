package backend

import "time"

const (
	SourceFile   = "file"
	SourceMinIO  = "minio"
	SourceRemote = "remote"

	DefaultRemoteTimeout = 5 * time.Second
	DefaultRemoteVersion = "remote"
	DefaultVersion       = "1.0.0"

	breakerName        = "risk-model-remote"
	breakerMaxRequests = 3
	breakerInterval    = 30 * time.Second
	breakerTimeout     = 30 * time.Second
	breakerMinRequests = 5
	breakerFailRatio   = 0.6

	maxResponseBytes = 1 << 20
)
