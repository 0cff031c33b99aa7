package services

import "time"

// StartOfDay returns midnight of t's day in t's location. It is the
// past/future boundary for scheduled-training filters; truncating to UTC
// instead would misclassify today's earlier sessions on non-UTC servers.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
