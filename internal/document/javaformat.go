package document

import (
	"math"
	"strconv"
	"strings"
)

// formatFloat renders f the way the JVM prints a float or double, so that
// documents written here stay readable by older clients:
// "1.0", "0.001", "1.0E7", "1.5E-4", "NaN", "Infinity".
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(f)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, bitSize)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)

	return mantissa + "E" + strconv.Itoa(n)
}

// parseFloat accepts what the JVM float parser accepts: surrounding
// whitespace, an optional f/F/d/D suffix, and the exact spellings
// "NaN" and "Infinity".
func parseFloat(s string, bitSize int) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "NaN", "+NaN", "-NaN":
		return math.NaN(), true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if n := len(s); n > 1 {
		switch s[n-1] {
		case 'f', 'F', 'd', 'D':
			s = s[:n-1]
		}
	}

	// strconv also accepts "inf", "nan" and underscores; the JVM does not.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseInt(s string, bitSize int) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, false
	}
	return n, true
}
