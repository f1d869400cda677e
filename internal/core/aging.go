package core

// Severity is the UI tier attached to an aging label.
type Severity string

const (
	SeverityNeutral     Severity = "neutral"
	SeverityWarning     Severity = "warning"
	SeverityDestructive Severity = "destructive"
)

// AgingLabel pairs the human label with its severity tier.
type AgingLabel struct {
	Label string   `json:"label"`
	Tier  Severity `json:"tier"`
}

// ClassifyAging maps days outstanding onto the 4-way risk ladder.
// Thresholds are strict greater-than comparisons evaluated high to low:
// exactly 60 days is Overdue, not Critical; exactly 30 is Due Soon, not
// Overdue. Negative days (not yet due) fall through to Current.
func ClassifyAging(daysOutstanding int) AgingLabel {
	switch {
	case daysOutstanding > 60:
		return AgingLabel{Label: "Critical", Tier: SeverityDestructive}
	case daysOutstanding > 30:
		return AgingLabel{Label: "Overdue", Tier: SeverityDestructive}
	case daysOutstanding > 15:
		return AgingLabel{Label: "Due Soon", Tier: SeverityWarning}
	default:
		return AgingLabel{Label: "Current", Tier: SeverityNeutral}
	}
}

// Bucket is the 3-way aging bucket used by the locked-cash panels. It is a
// separate policy from ClassifyAging and must stay that way: the two ladders
// cut the same axis at different points.
type Bucket string

const (
	Bucket0To30  Bucket = "0_30"
	Bucket31To45 Bucket = "30_45"
	Bucket46Plus Bucket = "46_plus"
)

// AgingBucket maps days outstanding onto the 3-way bucket. Exactly 30 stays
// in the first bucket, 31-45 in the second, 46 and beyond in the third.
// Negative days land in the first bucket.
func AgingBucket(daysOutstanding int) Bucket {
	switch {
	case daysOutstanding <= 30:
		return Bucket0To30
	case daysOutstanding <= 45:
		return Bucket31To45
	default:
		return Bucket46Plus
	}
}
