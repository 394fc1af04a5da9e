// Package storage holds the durable key-value adapters.
// Every value is a JSON snapshot overwritten wholesale.
package storage

const (
	ProfileKey  = "nr_user"
	TodayKey    = "nr_today"
	MessagesKey = "nr_msgs"
)
