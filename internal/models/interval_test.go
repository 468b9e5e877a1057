package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval string
		count    int64
		want     BillingInterval
	}{
		{"week", 2, IntervalEveryTwoWeeks},
		{"month", 1, IntervalMonthly},
		{"month", 3, IntervalEveryThreeMonths},
		{"week", 1, IntervalMonthly},
		{"year", 1, IntervalMonthly},
		{"", 0, IntervalMonthly},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IntervalFrom(tt.interval, tt.count), "interval=%s count=%d", tt.interval, tt.count)
	}
}
