package calculation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var cent = decimal.NewFromFloat(0.01)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// assertNear checks that got is within tol of want.
func assertNear(t *testing.T, want, got, tol decimal.Decimal, msg ...string) bool {
	t.Helper()
	return assert.Truef(t, got.Sub(want).Abs().LessThanOrEqual(tol),
		"expected %s, got %s %s", want.StringFixed(4), got.StringFixed(4), strings.Join(msg, " "))
}
