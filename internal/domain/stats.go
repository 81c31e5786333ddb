package domain

import "time"

// StatRange selects the aggregation window for reporting queries.
type StatRange string

const (
	StatRangeDaily   StatRange = "daily"
	StatRangeWeekly  StatRange = "weekly"
	StatRangeMonthly StatRange = "monthly"
)

// ParseStatRange maps a request parameter to a StatRange, defaulting to daily.
func ParseStatRange(s string) StatRange {
	switch StatRange(s) {
	case StatRangeWeekly:
		return StatRangeWeekly
	case StatRangeMonthly:
		return StatRangeMonthly
	default:
		return StatRangeDaily
	}
}

// StatRecord is one append-only row written at the end of every sync run.
// Rows are recorded at per-run granularity, so RangeType is daily; the
// coarser ranges are rolled up at read time.
type StatRecord struct {
	StatDate        time.Time `json:"stat_date" db:"stat_date"`
	RangeType       StatRange `json:"range_type" db:"range_type"`
	CreatedProducts int       `json:"created_products" db:"created_products"`
	UpdatedProducts int       `json:"updated_products" db:"updated_products"`
	ErrorCount      int       `json:"error_count" db:"error_count"`
	DurationSeconds int       `json:"duration" db:"duration"`
}

// StatBucket is one aggregated reporting row. For the daily range Period is
// the row date; for weekly/monthly it is the ISO year-week or year-month key.
type StatBucket struct {
	Period          string    `json:"stat_period"`
	StatDate        time.Time `json:"stat_date"`
	CreatedProducts int       `json:"created_products"`
	UpdatedProducts int       `json:"updated_products"`
	ErrorCount      int       `json:"error_count"`
	DurationSeconds int       `json:"duration"`
}
