package colors

import (
	"regexp"
	"strings"
)

var calcNaNRe = regexp.MustCompile(`calc\(\s*nan\s*\)`)
var commaRe = regexp.MustCompile(`\s*,\s*`)
var spaceAfterOpenRe = regexp.MustCompile(`\(\s+`)
var spaceBeforeCloseRe = regexp.MustCompile(`\s+\)`)

// clean normalizes a color string before any type is probed against
// it: trims, collapses whitespace, tightens paren spacing, pads
// commas to ", ", rewrites calc(NaN) to 0, and lower-cases.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = spaceAfterOpenRe.ReplaceAllString(s, "(")
	s = spaceBeforeCloseRe.ReplaceAllString(s, ")")
	s = commaRe.ReplaceAllString(s, ", ")
	s = calcNaNRe.ReplaceAllString(s, "0")
	return s
}

func isBalancedChar(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '-' || r == '%' || r == '#' || r == '.'
}

// extractBalancedExpression returns the slice of input starting at
// start: if input[start] is '(', the full parenthesized run
// (including the outer parens) tracked by paren depth; otherwise a
// contiguous run of [A-Za-z0-9-%#.]. It also returns the index just
// past the extracted slice.
func extractBalancedExpression(input string, start int) (string, int) {
	if start >= len(input) {
		return "", start
	}
	if input[start] == '(' {
		depth := 0
		i := start
		for i < len(input) {
			switch input[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			i++
			if depth == 0 {
				break
			}
		}
		return input[start:i], i
	}
	i := start
	for i < len(input) && isBalancedChar(input[i]) {
		i++
	}
	return input[start:i], i
}
