package models

type intervalKey struct {
	Interval string
	Count    int64
}

var intervalTable = map[intervalKey]BillingInterval{
	{"week", 2}:  IntervalEveryTwoWeeks,
	{"month", 1}: IntervalMonthly,
	{"month", 3}: IntervalEveryThreeMonths,
}

// IntervalFrom maps the provider's interval/interval_count pair onto the
// plans the shop actually sells. Unknown pairs fall back to monthly.
func IntervalFrom(interval string, count int64) BillingInterval {
	if v, ok := intervalTable[intervalKey{interval, count}]; ok {
		return v
	}
	return IntervalMonthly
}
