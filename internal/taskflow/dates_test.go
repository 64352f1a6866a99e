package taskflow

import (
	"testing"
	"time"
)

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name       string
		recurrence string
		runDate    string
		want       string
		ok         bool
	}{
		{"daily is tomorrow", "daily", "2026-08-30", "2026-08-31", true},
		{"daily across month end", "daily", "2026-08-31", "2026-09-01", true},
		{"weekly is a week after tomorrow", "weekly", "2026-08-30", "2026-09-07", true},
		{"monthly is a month after tomorrow", "monthly", "2026-08-29", "2026-09-30", true},
		{"monthly normalizes overflow", "monthly", "2026-01-30", "2026-03-03", true},
		{"none generates nothing", "none", "2026-08-30", "", false},
		{"unknown generates nothing", "fortnightly", "2026-08-30", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runDate, err := time.Parse(DateLayout, tt.runDate)
			if err != nil {
				t.Fatalf("parse run date: %v", err)
			}
			got, ok := NextDueDate(tt.recurrence, runDate)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("due date = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	d := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	if got := DateOf(d); got != "2026-08-30" {
		t.Errorf("DateOf = %q, want 2026-08-30", got)
	}
}
