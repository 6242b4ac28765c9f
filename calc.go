package colors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// calcEnv is the evaluation environment for one calc(...) expression:
// the origin color's named components (relative syntax only) plus the
// active component's [min,max] range for percent remapping.
type calcEnv struct {
	vars          map[string]float64
	min, max      float64
	isPercentType bool
	relative      bool // presence of "from" forbids % and angle units
}

var calcConstants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

var calcFuncs1 = map[string]func(float64) float64{
	"sqrt": math.Sqrt, "sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
	"asin": math.Asin, "acos": math.Acos, "atan": math.Atan, "exp": math.Exp,
	"log": math.Log, "log10": math.Log10, "log2": math.Log2, "abs": math.Abs,
	"round": math.Round, "ceil": math.Ceil, "floor": math.Floor, "trunc": math.Trunc,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	},
}

var calcFuncs2 = map[string]func(float64, float64) float64{
	"pow": math.Pow, "atan2": math.Atan2, "hypot": math.Hypot,
	"min": math.Min, "max": math.Max,
}

// calcLexer tokenizes a calc(...) inner expression.
type calcLexer struct {
	s   string
	pos int
}

type calcTok struct {
	kind string // "num", "ident", "op", "lparen", "rparen", "comma", "eof"
	text string
	num  float64
}

func (l *calcLexer) skipSpace() {
	for l.pos < len(l.s) && unicode.IsSpace(rune(l.s[l.pos])) {
		l.pos++
	}
}

func (l *calcLexer) next() calcTok {
	l.skipSpace()
	if l.pos >= len(l.s) {
		return calcTok{kind: "eof"}
	}
	c := l.s[l.pos]
	switch c {
	case '(':
		l.pos++
		return calcTok{kind: "lparen"}
	case ')':
		l.pos++
		return calcTok{kind: "rparen"}
	case ',':
		l.pos++
		return calcTok{kind: "comma"}
	case '+', '-', '*', '/':
		// unary sign vs operator is disambiguated by the parser.
		l.pos++
		return calcTok{kind: "op", text: string(c)}
	}
	if c == '%' {
		l.pos++
		return calcTok{kind: "op", text: "%"}
	}
	if unicode.IsDigit(rune(c)) || c == '.' {
		start := l.pos
		for l.pos < len(l.s) && (unicode.IsDigit(rune(l.s[l.pos])) || l.s[l.pos] == '.') {
			l.pos++
		}
		// optional unit or percent suffix handled by caller via
		// lookahead; here we just grab the numeric literal.
		text := l.s[start:l.pos]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return calcTok{kind: "badnum", text: text}
		}
		return calcTok{kind: "num", text: text, num: v}
	}
	if unicode.IsLetter(rune(c)) || c == '_' {
		start := l.pos
		for l.pos < len(l.s) && (unicode.IsLetter(rune(l.s[l.pos])) || unicode.IsDigit(rune(l.s[l.pos])) || l.s[l.pos] == '_') {
			l.pos++
		}
		return calcTok{kind: "ident", text: l.s[start:l.pos]}
	}
	return calcTok{kind: "bad", text: string(c)}
}

// calcParser is a recursive-descent parser/evaluator:
// additive -> multiplicative -> power -> unary -> primary.
type calcParser struct {
	lex  *calcLexer
	tok  calcTok
	env  *calcEnv
	unit string // not read: applySuffix takes the suffix from the lexer
}

func newCalcParser(expr string, env *calcEnv) *calcParser {
	p := &calcParser{lex: &calcLexer{s: expr}, env: env}
	p.advance()
	return p
}

func (p *calcParser) advance() { p.tok = p.lex.next() }

func evalCalc(expr string, env *calcEnv) (float64, error) {
	p := newCalcParser(expr, env)
	v, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != "eof" {
		return 0, newErr(KindCalc, p.tok.text, "extra tokens after expression")
	}
	return v, nil
}

func (p *calcParser) parseAdditive() (float64, error) {
	v, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == "op" && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (p *calcParser) parseMultiplicative() (float64, error) {
	v, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == "op" && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text
		p.advance()
		rhs, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			v *= rhs
		} else {
			v /= rhs // division by zero yields IEEE infinities, not intercepted
		}
	}
	return v, nil
}

// parsePower implements right-associative exponentiation via the
// pow() function token only; raw "^" is not part of the calc grammar
// here (CSS calc() has no exponent operator), so this delegates
// straight to unary.
func (p *calcParser) parsePower() (float64, error) {
	return p.parseUnary()
}

func (p *calcParser) parseUnary() (float64, error) {
	if p.tok.kind == "op" && p.tok.text == "-" {
		p.advance()
		// "-infinity" short-circuits to the component's min rather than
		// the arithmetic negation of "infinity" (env.max); the lexer
		// never produces a combined "-infinity" identifier, so this has
		// to be caught here, before the generic unary negation below.
		if p.tok.kind == "ident" && p.tok.text == "infinity" {
			p.advance()
			return p.env.min, nil
		}
		v, err := p.parseUnary()
		return -v, err
	}
	if p.tok.kind == "op" && p.tok.text == "+" {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *calcParser) parsePrimary() (float64, error) {
	switch p.tok.kind {
	case "num":
		v, err := p.applySuffix(p.tok.num)
		if err != nil {
			return 0, err
		}
		p.advance()
		return v, nil
	case "lparen":
		p.advance()
		v, err := p.parseAdditive()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != "rparen" {
			return 0, newErr(KindCalc, p.tok.text, "mismatched parens")
		}
		p.advance()
		return v, nil
	case "ident":
		name := p.tok.text
		p.advance()
		if p.tok.kind == "lparen" {
			return p.parseCall(name)
		}
		return p.resolveIdent(name)
	case "badnum":
		return 0, newErr(KindCalc, p.tok.text, "malformed numeric literal")
	default:
		return 0, newErr(KindCalc, p.tok.text, "unexpected token")
	}
}

func (p *calcParser) resolveIdent(name string) (float64, error) {
	if v, ok := p.env.vars[name]; ok {
		return v, nil
	}
	if v, ok := calcConstants[name]; ok {
		return v, nil
	}
	switch name {
	case "infinity":
		return p.env.max, nil
	case "nan":
		return 0, nil
	}
	return 0, newErr(KindCalc, name, "unknown identifier")
}

func (p *calcParser) parseCall(name string) (float64, error) {
	if name == "-" { // no-op: the lexer never yields "-" as an identifier
	}
	p.advance() // consume '('
	var args []float64
	if p.tok.kind != "rparen" {
		for {
			v, err := p.parseAdditive()
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if p.tok.kind == "comma" {
				p.advance()
				continue
			}
			break
		}
	}
	if p.tok.kind != "rparen" {
		return 0, newErr(KindCalc, name, "mismatched parens")
	}
	p.advance()

	if f1, ok := calcFuncs1[name]; ok && len(args) == 1 {
		return f1(args[0]), nil
	}
	if f2, ok := calcFuncs2[name]; ok {
		if name == "min" || name == "max" {
			v := args[0]
			for _, a := range args[1:] {
				v = f2(v, a)
			}
			return v, nil
		}
		if len(args) == 2 {
			return f2(args[0], args[1]), nil
		}
	}
	if name == "random" {
		return randomSource.Float64(), nil
	}
	return 0, newErr(KindCalc, name, "unknown function")
}

// applySuffix inspects the lexer's raw text just consumed for a
// trailing %, or a deg/rad/grad/turn unit, remapping per §4.3.
func (p *calcParser) applySuffix(v float64) (float64, error) {
	// peek raw characters right after the number in the source text
	l := p.lex
	start := l.pos
	if start < len(l.s) && l.s[start] == '%' {
		if p.env.relative {
			return 0, newErr(KindCalc, "%", "percent is not allowed inside calc() in relative color syntax")
		}
		l.pos++
		return remapPercent(v, p.env), nil
	}
	for _, unit := range []string{"deg", "grad", "rad", "turn"} {
		if strings.HasPrefix(l.s[start:], unit) {
			if p.env.relative {
				return 0, newErr(KindCalc, unit, "angle units are not allowed inside calc() in relative color syntax")
			}
			l.pos += len(unit)
			return degreesForUnit(v, unit), nil
		}
	}
	return v, nil
}

func degreesForUnit(v float64, unit string) float64 {
	switch unit {
	case "grad":
		return v * 0.9
	case "rad":
		return v * 180 / math.Pi
	case "turn":
		return v * 360
	default:
		return v
	}
}

// remapPercent implements §4.3's percent-to-range rule.
func remapPercent(p float64, env *calcEnv) float64 {
	if env.isPercentType {
		return p
	}
	min, max := env.min, env.max
	if min < 0 && max > 0 {
		return p / 100 * (max - min) / 2
	}
	return p/100*(max-min) + min
}
