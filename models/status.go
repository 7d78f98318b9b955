package models

import "time"

// ConnectionStatus describes database reachability and pool health at the time of the call.
// When Connected is false only Error is set.
type ConnectionStatus struct {
	Connected       bool       `json:"connected"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	Version         string     `json:"version,omitempty"`
	PoolSize        *int       `json:"poolSize,omitempty"`
	IdleConnections *int       `json:"idleConnections,omitempty"`
	WaitingRequests *int       `json:"waitingRequests,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Stats are aggregate counts computed per request.
type Stats struct {
	TotalVisits   int64 `json:"totalVisits"`
	TotalUsers    int64 `json:"totalUsers"`
	VisitsLast24h int64 `json:"visitsLast24h"`
}
