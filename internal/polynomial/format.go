package polynomial

import (
	"math"
	"strconv"
	"strings"
)

// String renders p in display form, e.g. "5.0-3.0x^2+7.0x^8". Terms keep
// their stored order and the zero polynomial renders as "0".
func (p Polynomial) String() string {
	return p.render("x^", false)
}

// Text renders p in the line format used by files, e.g. "5.0-3.0x2+7.0x8".
// Every term after the first starts with a sign, so zero and NaN
// coefficients survive ParseText.
func (p Polynomial) Text() string {
	return p.render("x", true)
}

// Pretty renders p with the shortest decimal for each coefficient and
// without unit coefficients on non-constant terms, e.g. "-1+x^3".
func (p Polynomial) Pretty() string {
	if len(p.terms) == 0 {
		return "0"
	}

	var sb strings.Builder
	for i, t := range p.terms {
		var coeff string
		switch c := t.Coefficient; {
		case t.Exponent != 0 && c == 1:
		case t.Exponent != 0 && c == -1:
			coeff = "-"
		default:
			coeff = strconv.FormatFloat(c, 'g', -1, 64)
		}
		if i > 0 && !strings.HasPrefix(coeff, "-") {
			sb.WriteByte('+')
		}
		sb.WriteString(coeff)
		if t.Exponent != 0 {
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(t.Exponent))
		}
	}
	return sb.String()
}

// render joins the terms. Display form only puts '+' before positive
// coefficients; with signAll every later term that does not already start
// with '-' gets one.
func (p Polynomial) render(marker string, signAll bool) string {
	if len(p.terms) == 0 {
		return "0"
	}

	var sb strings.Builder
	for i, t := range p.terms {
		coeff := formatDouble(t.Coefficient)
		if i > 0 && (t.Coefficient > 0 || signAll && !strings.HasPrefix(coeff, "-")) {
			sb.WriteByte('+')
		}
		sb.WriteString(coeff)
		if t.Exponent != 0 {
			sb.WriteString(marker)
			sb.WriteString(strconv.Itoa(t.Exponent))
		}
	}
	return sb.String()
}

// formatDouble writes v the way a JVM prints a double: plain decimal with
// at least one fractional digit for magnitudes in [1e-3, 1e7), otherwise
// scientific notation such as "1.0E7" or "-2.5E-4".
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
