package typecheck

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type mqKind uint8

const (
	mqIdent mqKind = iota
	mqNumber
	mqDimension
	mqPercent
	mqFunction
	mqLParen
	mqRParen
	mqColon
	mqSlash
	mqComma
	mqCompare
)

type mqToken struct {
	kind mqKind
	text string
	unit string // dimension unit, function name
}

var errMediaQuery = errors.New("invalid media query")

// tokenizeMedia splits CSS-like text into the tokens media queries and
// source sizes use. Functions are kept whole with balanced parentheses.
func tokenizeMedia(s string) ([]mqToken, error) {
	var toks []mqToken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isCSSSpace(c):
			i++
		case c == '(':
			toks = append(toks, mqToken{kind: mqLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, mqToken{kind: mqRParen, text: ")"})
			i++
		case c == ':':
			toks = append(toks, mqToken{kind: mqColon, text: ":"})
			i++
		case c == '/':
			toks = append(toks, mqToken{kind: mqSlash, text: "/"})
			i++
		case c == ',':
			toks = append(toks, mqToken{kind: mqComma, text: ","})
			i++
		case c == '<' || c == '>' || c == '=':
			op := string(c)
			if c != '=' && i+1 < len(s) && s[i+1] == '=' {
				op += "="
			}
			toks = append(toks, mqToken{kind: mqCompare, text: op})
			i += len(op)
		case isDigit(c) || c == '.' || ((c == '+' || c == '-') && i+1 < len(s) && (isDigit(s[i+1]) || s[i+1] == '.')):
			start := i
			i++
			for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
				i++
			}
			num := s[start:i]
			if !isFloat(strings.TrimPrefix(num, "+")) {
				return nil, fmt.Errorf("%w: bad number %q", errMediaQuery, num)
			}
			switch {
			case i < len(s) && s[i] == '%':
				toks = append(toks, mqToken{kind: mqPercent, text: num + "%"})
				i++
			case i < len(s) && isIdentStart(s[i]):
				u := i
				for i < len(s) && isIdentChar(s[i]) {
					i++
				}
				toks = append(toks, mqToken{kind: mqDimension, text: s[start:i], unit: strings.ToLower(s[u:i])})
			default:
				toks = append(toks, mqToken{kind: mqNumber, text: num})
			}
		case isIdentStart(c) || c == '-':
			start := i
			for i < len(s) && isIdentChar(s[i]) {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("%w: unexpected %q", errMediaQuery, c)
			}
			name := s[start:i]
			if i < len(s) && s[i] == '(' {
				depth := 0
				j := i
				for ; j < len(s); j++ {
					if s[j] == '(' {
						depth++
					} else if s[j] == ')' {
						depth--
						if depth == 0 {
							break
						}
					}
				}
				if j == len(s) {
					return nil, fmt.Errorf("%w: unclosed function %s(", errMediaQuery, name)
				}
				toks = append(toks, mqToken{kind: mqFunction, text: s[start : j+1], unit: strings.ToLower(name)})
				i = j + 1
				continue
			}
			toks = append(toks, mqToken{kind: mqIdent, text: name})
		default:
			return nil, fmt.Errorf("%w: unexpected %q", errMediaQuery, c)
		}
	}
	return toks, nil
}

func isCSSSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '-' }

// splitTopLevel splits tokens on commas outside parentheses.
func splitTopLevel(toks []mqToken) [][]mqToken {
	var out [][]mqToken
	depth, start := 0, 0
	for i, t := range toks {
		switch t.kind {
		case mqLParen:
			depth++
		case mqRParen:
			depth--
		case mqComma:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(out, toks[start:])
}

type mqParser struct {
	toks []mqToken
	pos  int
}

func (p *mqParser) peek() (mqToken, bool) {
	if p.pos >= len(p.toks) {
		return mqToken{}, false
	}
	return p.toks[p.pos], true
}

func (p *mqParser) next() (mqToken, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *mqParser) done() bool { return p.pos >= len(p.toks) }

func (p *mqParser) expect(k mqKind) error {
	t, ok := p.next()
	if !ok || t.kind != k {
		return fmt.Errorf("%w: unexpected %q", errMediaQuery, t.text)
	}
	return nil
}

func (p *mqParser) keyword(kw string) bool {
	t, ok := p.peek()
	if ok && t.kind == mqIdent && strings.EqualFold(t.text, kw) {
		p.pos++
		return true
	}
	return false
}

var reservedMediaTypes = []string{"not", "and", "or", "only", "layer"}

// query parses [not|only] media-type [and condition] | condition.
func (p *mqParser) query() error {
	t, ok := p.peek()
	if !ok {
		return fmt.Errorf("%w: empty query", errMediaQuery)
	}
	if t.kind != mqIdent {
		return p.condition(true)
	}
	if strings.EqualFold(t.text, "not") && p.pos+1 < len(p.toks) && p.toks[p.pos+1].kind == mqLParen {
		return p.condition(true)
	}
	if !p.keyword("not") {
		p.keyword("only")
	}
	mt, ok := p.next()
	if !ok || mt.kind != mqIdent || slices.Contains(reservedMediaTypes, strings.ToLower(mt.text)) {
		return fmt.Errorf("%w: expected media type", errMediaQuery)
	}
	if p.done() {
		return nil
	}
	if !p.keyword("and") {
		return fmt.Errorf("%w: expected \"and\"", errMediaQuery)
	}
	return p.condition(false)
}

// condition parses not <in-parens> or <in-parens> joined by a single kind
// of combinator.
func (p *mqParser) condition(allowOr bool) error {
	if p.keyword("not") {
		return p.inParens()
	}
	if err := p.inParens(); err != nil {
		return err
	}
	var combinator string
	for {
		t, ok := p.peek()
		if !ok || t.kind != mqIdent {
			return nil
		}
		kw := strings.ToLower(t.text)
		if kw != "and" && (kw != "or" || !allowOr) {
			return nil
		}
		if combinator != "" && combinator != kw {
			return fmt.Errorf("%w: cannot mix \"and\" and \"or\"", errMediaQuery)
		}
		combinator = kw
		p.pos++
		if err := p.inParens(); err != nil {
			return err
		}
	}
}

func (p *mqParser) inParens() error {
	if err := p.expect(mqLParen); err != nil {
		return err
	}
	t, ok := p.peek()
	if !ok {
		return fmt.Errorf("%w: unclosed parenthesis", errMediaQuery)
	}
	if t.kind == mqLParen || (t.kind == mqIdent && strings.EqualFold(t.text, "not")) {
		if err := p.condition(true); err != nil {
			return err
		}
	} else if err := p.feature(); err != nil {
		return err
	}
	return p.expect(mqRParen)
}

// feature parses a plain, boolean or range media feature.
func (p *mqParser) feature() error {
	t, ok := p.peek()
	if !ok {
		return fmt.Errorf("%w: expected media feature", errMediaQuery)
	}
	if t.kind == mqIdent {
		p.pos++
		n, ok := p.peek()
		switch {
		case !ok || n.kind == mqRParen:
			return nil
		case n.kind == mqColon:
			p.pos++
			return p.value()
		case n.kind == mqCompare:
			p.pos++
			return p.value()
		}
		return fmt.Errorf("%w: unexpected %q after %s", errMediaQuery, n.text, t.text)
	}

	// value op name [op value]
	if err := p.value(); err != nil {
		return err
	}
	op, ok := p.next()
	if !ok || op.kind != mqCompare {
		return fmt.Errorf("%w: expected comparison", errMediaQuery)
	}
	if name, ok := p.next(); !ok || name.kind != mqIdent {
		return fmt.Errorf("%w: expected feature name", errMediaQuery)
	}
	op2, ok := p.peek()
	if !ok || op2.kind != mqCompare {
		return nil
	}
	if op.text[0] != op2.text[0] || op.text == "=" {
		return fmt.Errorf("%w: range comparisons must point the same way", errMediaQuery)
	}
	p.pos++
	return p.value()
}

// value parses a number, ratio, dimension or keyword.
func (p *mqParser) value() error {
	t, ok := p.next()
	if !ok {
		return fmt.Errorf("%w: expected value", errMediaQuery)
	}
	switch t.kind {
	case mqIdent, mqDimension:
		return nil
	case mqNumber:
		if n, ok := p.peek(); ok && n.kind == mqSlash {
			p.pos++
			d, ok := p.next()
			if !ok || d.kind != mqNumber {
				return fmt.Errorf("%w: bad ratio", errMediaQuery)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unexpected %q", errMediaQuery, t.text)
}

func parseMediaQuery(toks []mqToken) error {
	p := &mqParser{toks: toks}
	if err := p.query(); err != nil {
		return err
	}
	if !p.done() {
		return fmt.Errorf("%w: trailing %q", errMediaQuery, p.toks[p.pos].text)
	}
	return nil
}

func parseMediaCondition(toks []mqToken) error {
	p := &mqParser{toks: toks}
	if err := p.condition(true); err != nil {
		return err
	}
	if !p.done() {
		return fmt.Errorf("%w: trailing %q", errMediaQuery, p.toks[p.pos].text)
	}
	return nil
}

// IsMediaQuery reports whether v is a single valid media query.
func IsMediaQuery(v string) bool {
	toks, err := tokenizeMedia(v)
	if err != nil || len(toks) == 0 {
		return false
	}
	return parseMediaQuery(toks) == nil
}

// IsMediaQueryList reports whether v is a comma-separated media query
// list. The empty list is valid.
func IsMediaQueryList(v string) bool {
	toks, err := tokenizeMedia(v)
	if err != nil {
		return false
	}
	if len(toks) == 0 {
		return true
	}
	for _, q := range splitTopLevel(toks) {
		if len(q) == 0 || parseMediaQuery(q) != nil {
			return false
		}
	}
	return true
}

var lengthUnits = []string{
	"px", "em", "rem", "ex", "rex", "ch", "rch", "cap", "rcap", "ic", "ric", "lh", "rlh",
	"vw", "vh", "vi", "vb", "vmin", "vmax", "svw", "svh", "lvw", "lvh", "dvw", "dvh",
	"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax", "cm", "mm", "q", "in", "pt", "pc",
}

func isLength(t mqToken) bool {
	switch t.kind {
	case mqDimension:
		return slices.Contains(lengthUnits, t.unit) && !strings.HasPrefix(t.text, "-")
	case mqNumber:
		return strings.Trim(t.text, "+-0.") == ""
	case mqFunction:
		return slices.Contains([]string{"calc", "min", "max", "clamp"}, t.unit)
	}
	return false
}

// IsSourceSizeList reports whether v is a valid sizes attribute value:
// comma-separated "media-condition length" pairs, the last of which may
// omit the condition, or "auto" first.
func IsSourceSizeList(v string) bool {
	toks, err := tokenizeMedia(v)
	if err != nil || len(toks) == 0 {
		return false
	}
	entries := splitTopLevel(toks)
	for i, e := range entries {
		if len(e) == 0 {
			return false
		}
		last := e[len(e)-1]
		if i == 0 && len(e) == 1 && last.kind == mqIdent && strings.EqualFold(last.text, "auto") {
			continue
		}
		if !isLength(last) {
			return false
		}
		cond := e[:len(e)-1]
		if len(cond) == 0 {
			if i != len(entries)-1 {
				return false
			}
			continue
		}
		if parseMediaCondition(cond) != nil {
			return false
		}
	}
	return true
}
