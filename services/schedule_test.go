package services

import (
	"testing"
	"time"
)

func TestStartOfDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 8, 29, 8, 30, 45, 0, loc)

	got := StartOfDay(now)

	want := time.Date(2026, 8, 29, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", now, got, want)
	}
	if got.Location() != loc {
		t.Errorf("StartOfDay location = %v, want %v", got.Location(), loc)
	}
}

func TestStartOfDaySessionEarlierTodayIsNotPast(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	// A session from 1am local time must stay on today's side of the
	// boundary even when the server clock reads late evening.
	session := time.Date(2026, 8, 29, 1, 0, 0, 0, loc)
	boundary := StartOfDay(time.Date(2026, 8, 29, 23, 0, 0, 0, loc))

	if session.Before(boundary) {
		t.Errorf("session %v classified before boundary %v", session, boundary)
	}
}
