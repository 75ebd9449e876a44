// Package calculator evaluates arithmetic instant-answer queries.
// A query that looks like a math expression is evaluated locally and
// surfaced above the search results; everything else is left to the
// search engine.
package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Answer is an evaluated expression and its formatted result
type Answer struct {
	Expression string
	Result     string
}

const invalidExpression = "Invalid expression"

var mathPattern = regexp.MustCompile(`(?i)^[\d\s+\-*/().^√πe×÷,]+$|^(sqrt|sin|cos|tan|log|ln|abs|ceil|floor|round)\s*\(`)

// Calculate evaluates query as an arithmetic expression.
// The second return value reports whether the query looked like math at
// all; a malformed math expression still counts as math and yields an
// "Invalid expression" result.
func Calculate(query string) (Answer, bool) {
	expr := strings.TrimSpace(query)
	if expr == "" || !mathPattern.MatchString(expr) {
		return Answer{}, false
	}

	value, err := evaluate(expr)
	if err != nil {
		return Answer{Expression: expr, Result: invalidExpression}, true
	}

	return Answer{Expression: expr, Result: formatResult(value)}, true
}

// Suggestions returns example expressions matching the typed prefix
func Suggestions(query string) []string {
	all := []string{
		"2 + 2",
		"sqrt(16)",
		"sin(90)",
		"log(100)",
		"2^3",
		"π * 2",
		"abs(-5)",
		"ceil(4.2)",
		"floor(4.8)",
		"round(4.6)",
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all[:5]
	}

	var matches []string
	for _, s := range all {
		if strings.Contains(strings.ToLower(s), query) {
			matches = append(matches, s)
		}
		if len(matches) == 5 {
			break
		}
	}
	return matches
}

func formatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidExpression
	}

	abs := math.Abs(v)
	if abs >= 1e12 || (abs < 0.001 && v != 0) {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}

	if v == math.Trunc(v) {
		return addThousands(strconv.FormatFloat(v, 'f', -1, 64))
	}

	// Trim float noise to ten decimal places before formatting
	rounded := math.Round(v*1e10) / 1e10
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot != -1 {
		return addThousands(s[:dot]) + s[dot:]
	}
	return addThousands(s)
}

// addThousands inserts comma separators into a formatted integer
func addThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Expression evaluation: a small recursive-descent parser over
// +, -, *, /, ^, parentheses, constants (π, e) and the function set of
// the original search box.

type parser struct {
	input []rune
	pos   int
}

func evaluate(expr string) (float64, error) {
	// Normalize presentation symbols before parsing
	expr = strings.ReplaceAll(expr, "×", "*")
	expr = strings.ReplaceAll(expr, "÷", "/")
	expr = strings.ReplaceAll(expr, "√", "sqrt")

	p := &parser{input: []rune(expr)}
	value, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character at position %d", p.pos)
	}
	return value, nil
}

func (p *parser) parseExpression() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	value, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	p.skipSpaces()
	if p.peek() == '-' {
		p.pos++
		value, err := p.parseUnary()
		return -value, err
	}
	return p.parsePower()
}

// parsePower handles ^ with right associativity
func (p *parser) parsePower() (float64, error) {
	base, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.peek() == '^' {
		p.pos++
		exponent, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exponent), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (float64, error) {
	p.skipSpaces()
	switch r := p.peek(); {
	case r == '(':
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case unicode.IsDigit(r) || r == '.':
		return p.parseNumber()
	case unicode.IsLetter(r) || r == 'π':
		return p.parseIdentifier()
	default:
		return 0, fmt.Errorf("unexpected character %q", r)
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	value, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", string(p.input[start:p.pos]))
	}
	return value, nil
}

func (p *parser) parseIdentifier() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsLetter(p.input[p.pos]) || p.input[p.pos] == 'π') {
		p.pos++
	}
	name := strings.ToLower(string(p.input[start:p.pos]))

	switch name {
	case "π", "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}

	fn, ok := functions[name]
	if !ok {
		return 0, fmt.Errorf("unknown identifier %q", name)
	}

	p.skipSpaces()
	if p.peek() != '(' {
		return 0, fmt.Errorf("expected ( after %s", name)
	}
	p.pos++
	arg, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.peek() != ')' {
		return 0, fmt.Errorf("missing closing parenthesis after %s", name)
	}
	p.pos++
	return fn(arg), nil
}

var functions = map[string]func(float64) float64{
	"sqrt":  math.Sqrt,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"log":   math.Log10,
	"ln":    math.Log,
	"abs":   math.Abs,
	"ceil":  math.Ceil,
	"floor": math.Floor,
	"round": math.Round,
}

func (p *parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}
