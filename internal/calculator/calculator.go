// Package calculator evaluates scientific calculator expressions.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// AngleMode selects the unit trigonometric functions take.
type AngleMode string

const (
	Degrees AngleMode = "deg"
	Radians AngleMode = "rad"
)

// ErrorDisplay is what the display shows for any failed evaluation.
const ErrorDisplay = "Error"

const (
	zeroThreshold = 1e-10
	roundFactor   = 1e10
	// Beyond this magnitude a float64 has no digits past the tenth decimal.
	roundLimit = 1e15
)

var (
	digitThenConst = regexp.MustCompile(`(\d)(pi|e)`)
	constThenDigit = regexp.MustCompile(`(pi|e)(\d)`)
)

var errNotFinite = errors.New("result is not finite")

// ParseAngleMode defaults to degrees.
func ParseAngleMode(s string) AngleMode {
	if AngleMode(strings.ToLower(s)) == Radians {
		return Radians
	}
	return Degrees
}

// Normalize rewrites calculator input into an expr program: unbalanced
// brackets are closed, π becomes pi, a digit next to pi or e multiplies
// and integer literals become floats so arithmetic never wraps.
func Normalize(input string) string {
	s := CloseBrackets(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "π", "pi")
	s = strings.ReplaceAll(s, "×", "*")
	s = strings.ReplaceAll(s, "÷", "/")
	s = digitThenConst.ReplaceAllString(s, "${1}*${2}")
	s = constThenDigit.ReplaceAllString(s, "${1}*${2}")
	return floatLiterals(s)
}

// floatLiterals appends ".0" to every integer literal. Digits inside
// identifiers such as log10 and fractional parts are left alone.
func floatLiterals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		if !isDigit(s[i]) || (i > 0 && continuesToken(s[i-1])) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		b.WriteString(s[i:j])
		if j >= len(s) || s[j] != '.' {
			b.WriteString(".0")
		}
		i = j
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func continuesToken(c byte) bool {
	return isDigit(c) || c == '.' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// CloseBrackets appends one ")" for every unmatched "(".
func CloseBrackets(s string) string {
	open := 0
	for _, r := range s {
		switch r {
		case '(':
			open++
		case ')':
			open--
		}
	}
	if open <= 0 {
		return s
	}
	return s + strings.Repeat(")", open)
}

// Compute evaluates input and returns the rounded numeric result.
func Compute(input string, mode AngleMode) (float64, error) {
	program, err := expr.Compile(Normalize(input), options(mode)...)
	if err != nil {
		return 0, err
	}
	out, err := expr.Run(program, constants)
	if err != nil {
		return 0, err
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	if math.Abs(v) < zeroThreshold {
		return 0, nil
	}
	if math.Abs(v) >= roundLimit {
		return v, nil
	}
	return math.Round(v*roundFactor) / roundFactor, nil
}

// Evaluate is Compute formatted for the display; failures render "Error".
func Evaluate(input string, mode AngleMode) string {
	v, err := Compute(input, mode)
	if err != nil {
		return ErrorDisplay
	}
	return FormatNumber(v)
}

// FormatNumber prints v with the shortest representation that round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var constants = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

func options(mode AngleMode) []expr.Option {
	toRad := func(x float64) float64 { return x }
	if mode == Degrees {
		toRad = func(x float64) float64 { return x * math.Pi / 180 }
	}

	return []expr.Option{
		expr.Env(constants),
		unary("sin", func(x float64) float64 { return math.Sin(toRad(x)) }),
		unary("cos", func(x float64) float64 { return math.Cos(toRad(x)) }),
		unary("tan", func(x float64) float64 { return math.Tan(toRad(x)) }),
		unary("log", math.Log10),
		unary("log10", math.Log10),
		unary("ln", math.Log),
		unary("sqrt", math.Sqrt),
	}
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects one argument", name)
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	})
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
