package main

import (
	"testing"
	"time"
)

func TestNextDigest(t *testing.T) {
	loc := time.FixedZone("SAMT", 4*60*60)
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, 9, 2, 6, 59, 0, 0, loc), time.Date(2024, 9, 2, 7, 0, 0, 0, loc)},
		{time.Date(2024, 9, 2, 7, 0, 0, 0, loc), time.Date(2024, 9, 3, 7, 0, 0, 0, loc)},
		{time.Date(2024, 9, 30, 23, 0, 0, 0, loc), time.Date(2024, 10, 1, 7, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		if got := nextDigest(tt.now, 7); !got.Equal(tt.want) {
			t.Errorf("nextDigest(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestIsAdminCommand(t *testing.T) {
	for text, want := range map[string]bool{
		"/update":       true,
		"/update force": true,
		"/add_excel":    true,
		"/stat":         true,
		"/today":        false,
		"":              false,
	} {
		if got := isAdminCommand(text); got != want {
			t.Errorf("isAdminCommand(%q) = %v, want %v", text, got, want)
		}
	}
}
