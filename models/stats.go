package models

import "time"

// SiteStats is the dashboard summary. Visit counters are not tracked and
// always report zero.
type SiteStats struct {
	TotalVisits     int64     `json:"total_visits"`
	DailyVisits     int64     `json:"daily_visits"`
	TotalUsers      int64     `json:"total_users"`
	TotalNews       int64     `json:"total_news"`
	TotalComments   int64     `json:"total_comments"`
	PendingComments int64     `json:"pending_comments"`
	Date            time.Time `json:"date"`
}

// StatusCheck is a client heartbeat kept by the legacy /status endpoint.
type StatusCheck struct {
	ID         string    `bson:"_id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
