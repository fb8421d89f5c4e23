package scenario

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is PHP's default precision ini value.
const DefaultPrecision = 14

// FormatFloat renders v the way PHP echoes a float: precision significant
// digits, trailing zeros dropped, scientific form as 1.0E+25 once the
// exponent is below -4 or at least precision.
func FormatFloat(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	}
	if precision < 1 {
		precision = DefaultPrecision
	}

	sign := ""
	if math.Signbit(v) {
		sign = "-"
		v = -v
	}

	// d.ddde±XX
	mant, expStr, _ := strings.Cut(strconv.FormatFloat(v, 'e', precision-1, 64), "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")
	if digits == "" {
		return sign + "0"
	}

	if exp < -4 || exp >= precision {
		frac := digits[1:]
		if frac == "" {
			frac = "0"
		}
		expSign := "+"
		if exp < 0 {
			expSign = "-"
			exp = -exp
		}
		return sign + digits[:1] + "." + frac + "E" + expSign + strconv.Itoa(exp)
	}

	switch {
	case exp < 0:
		return sign + "0." + strings.Repeat("0", -exp-1) + digits
	case len(digits) <= exp+1:
		return sign + digits + strings.Repeat("0", exp+1-len(digits))
	default:
		return sign + digits[:exp+1] + "." + digits[exp+1:]
	}
}
