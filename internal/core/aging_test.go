package core_test

import (
	"testing"

	"finpulse/internal/core"
)

func TestClassifyAging_Boundaries(t *testing.T) {
	tests := []struct {
		days      int
		wantLabel string
		wantTier  core.Severity
	}{
		{-30, "Current", core.SeverityNeutral},
		{-1, "Current", core.SeverityNeutral},
		{0, "Current", core.SeverityNeutral},
		{15, "Current", core.SeverityNeutral},
		{16, "Due Soon", core.SeverityWarning},
		{30, "Due Soon", core.SeverityWarning},
		{31, "Overdue", core.SeverityDestructive},
		{45, "Overdue", core.SeverityDestructive},
		{60, "Overdue", core.SeverityDestructive}, // exactly 60 is NOT Critical
		{61, "Critical", core.SeverityDestructive},
		{365, "Critical", core.SeverityDestructive},
	}

	for _, tt := range tests {
		got := core.ClassifyAging(tt.days)
		if got.Label != tt.wantLabel || got.Tier != tt.wantTier {
			t.Errorf("ClassifyAging(%d) = {%s, %s}, want {%s, %s}",
				tt.days, got.Label, got.Tier, tt.wantLabel, tt.wantTier)
		}
	}
}

func TestClassifyAging_LadderIsExhaustive(t *testing.T) {
	// Every day value maps to exactly one of the four labels, and the label
	// changes only at the 15/30/60 strict thresholds.
	for d := -100; d <= 100; d++ {
		got := core.ClassifyAging(d)
		var want string
		switch {
		case d > 60:
			want = "Critical"
		case d > 30:
			want = "Overdue"
		case d > 15:
			want = "Due Soon"
		default:
			want = "Current"
		}
		if got.Label != want {
			t.Fatalf("ClassifyAging(%d) = %s, want %s", d, got.Label, want)
		}
	}
}

func TestAgingBucket_Boundaries(t *testing.T) {
	tests := []struct {
		days int
		want core.Bucket
	}{
		{-10, core.Bucket0To30},
		{0, core.Bucket0To30},
		{30, core.Bucket0To30},
		{31, core.Bucket31To45},
		{45, core.Bucket31To45},
		{46, core.Bucket46Plus},
		{120, core.Bucket46Plus},
	}

	for _, tt := range tests {
		if got := core.AgingBucket(tt.days); got != tt.want {
			t.Errorf("AgingBucket(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestAgingBucket_ExactlyOneBucket(t *testing.T) {
	for d := 0; d <= 200; d++ {
		matches := 0
		for _, b := range []core.Bucket{core.Bucket0To30, core.Bucket31To45, core.Bucket46Plus} {
			if core.AgingBucket(d) == b {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("AgingBucket(%d) matched %d buckets", d, matches)
		}
	}
}
