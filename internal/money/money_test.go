package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMinorUnits_Exact(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		1999:   "19.99",
		0:      "0",
		1:      "0.01",
		100:    "1",
		2100:   "21",
		999999: "9999.99",
	}

	for in, want := range cases {
		got := FromMinorUnits(in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "FromMinorUnits(%d) = %s, want %s", in, got, want)
	}
}

func TestToMinorUnits_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{0, 1, 99, 100, 1999, 123456} {
		require.Equal(t, n, ToMinorUnits(FromMinorUnits(n)))
	}
}
