package edit

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
	"unicode"
)

// ErrParse reports text that is not a complex-number expression this
// package accepts.
var ErrParse = errors.New("edit: cannot parse expression")

// functions is the complete set of callable names. Nothing outside this
// table can be evaluated.
var functions = map[string]func(complex128) complex128{
	"sqrt": cmplx.Sqrt,
	"sin":  cmplx.Sin,
	"cos":  cmplx.Cos,
	"tan":  cmplx.Tan,
	"exp":  cmplx.Exp,
}

var constants = map[string]complex128{
	"pi": complex(math.Pi, 0),
	"e":  complex(math.E, 0),
	"i":  1i,
	"j":  1i,
}

// ParseComplex evaluates a complex-number expression.
//
// Supported:
//   - Numbers: "1", "-0.5", "3.14e-2"
//   - Imaginary unit: "i", "j", "2i", "3.5j"
//   - Constants: "pi", "e"
//   - Operators: + - * / ^ ** and parentheses
//   - Implicit products: "2pi", "3sqrt(2)", "(1+i)(1-i)", "1/sqrt(2)i"
//   - Functions: sqrt, sin, cos, tan, exp
//
// Names are case-insensitive. Empty input and non-finite results are
// errors.
func ParseComplex(s string) (complex128, error) {
	toks, err := lex(s)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return 0, fmt.Errorf("%w: empty input", ErrParse)
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrParse, t.text, t.pos)
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrParse, s)
	}
	return v, nil
}

// ──────────────────────────── Lexer ────────────────────────────

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokName
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	num  float64
	pos  int
}

func lex(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			// An exponent only when digits follow, so "2e" stays 2·e.
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				k := i + 1
				if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
					k++
				}
				if k < len(rs) && unicode.IsDigit(rs[k]) {
					for k < len(rs) && unicode.IsDigit(rs[k]) {
						k++
					}
					i = k
				}
			}
			text := string(rs[start:i])
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at %d", ErrParse, text, start)
			}
			toks = append(toks, token{kind: tokNum, text: text, num: f, pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(rs) && unicode.IsLetter(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokName, text: strings.ToLower(string(rs[start:i])), pos: start})
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.ContainsRune("+-*/^", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrParse, r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

// ──────────────────────────── Parser ────────────────────────────
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary | implicit }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | name | name "(" expr ")" | "(" expr ")"
//
// implicit is a product with a following name or "(" and no operator.

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (complex128, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return v, nil
		}
		p.next()
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if t.text == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) term() (complex128, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tokOp && (t.text == "*" || t.text == "/"):
			p.next()
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			if t.text == "*" {
				v *= rhs
			} else {
				if rhs == 0 {
					return 0, fmt.Errorf("%w: division by zero at %d", ErrParse, t.pos)
				}
				v /= rhs
			}
		case t.kind == tokName || t.kind == tokLParen:
			rhs, err := p.power()
			if err != nil {
				return 0, err
			}
			v *= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) unary() (complex128, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "+" || t.text == "-") {
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if t.text == "-" {
			// 0-v keeps a zero imaginary part at +0, which the branch cuts
			// of sqrt and pow depend on.
			return 0 - v, nil
		}
		return v, nil
	}
	return p.power()
}

func (p *parser) power() (complex128, error) {
	base, err := p.primary()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind == tokOp && t.text == "^" {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) primary() (complex128, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		v := complex(t.num, 0)
		// A unit glued to the number: "2i", "3.5j".
		if n := p.peek(); n.kind == tokName && (n.text == "i" || n.text == "j") && n.pos == t.pos+len([]rune(t.text)) {
			p.next()
			v = complex(0, t.num)
		}
		return v, nil
	case tokName:
		if fn, ok := functions[t.text]; ok {
			if p.peek().kind != tokLParen {
				return 0, fmt.Errorf("%w: %s needs an argument at %d", ErrParse, t.text, t.pos)
			}
			arg, err := p.group()
			if err != nil {
				return 0, err
			}
			return fn(arg), nil
		}
		if c, ok := constants[t.text]; ok {
			return c, nil
		}
		return 0, fmt.Errorf("%w: unknown name %q at %d", ErrParse, t.text, t.pos)
	case tokLParen:
		p.pos--
		return p.group()
	case tokEOF:
		return 0, fmt.Errorf("%w: unexpected end of input", ErrParse)
	default:
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrParse, t.text, t.pos)
	}
}

func (p *parser) group() (complex128, error) {
	open := p.next()
	if open.kind != tokLParen {
		return 0, fmt.Errorf("%w: expected ( at %d", ErrParse, open.pos)
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if c := p.next(); c.kind != tokRParen {
		return 0, fmt.Errorf("%w: expected ) at %d", ErrParse, c.pos)
	}
	return v, nil
}

// pow keeps real powers of real bases real, so "2^2" is exactly 4.
func pow(base, exp complex128) complex128 {
	if imag(base) == 0 && imag(exp) == 0 && (real(base) >= 0 || real(exp) == math.Trunc(real(exp))) {
		return complex(math.Pow(real(base), real(exp)), 0)
	}
	return cmplx.Pow(base, exp)
}
