package param

import (
	"fmt"
	"strconv"
)

// Sandboxed arithmetic expression evaluator for parameter equations.
// The grammar is deliberately small:
//
//	expr    = term (('+' | '-') term)*
//	term    = unary (('*' | '/') unary)*
//	unary   = '-' unary | primary
//	primary = number | identifier | '(' expr ')'
//
// Identifiers resolve to parameter values in the scope supplied at
// evaluation time; nothing else is reachable from an expression. Token
// count and nesting depth are bounded so a pathological expression cannot
// consume unbounded work.

const (
	maxExprTokens = 256
	maxExprDepth  = 64
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp    // + - * /
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	num  float64
	text string
}

// exprNode is one node of the parsed expression tree.
type exprNode struct {
	op          byte // '+', '-', '*', '/', 'n' (number), 'v' (variable), 'u' (unary minus)
	num         float64
	name        string
	left, right *exprNode
}

// compileExpr parses src and returns the expression tree plus the
// identifiers it references, in order of first appearance.
func compileExpr(src string) (*exprNode, []string, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: empty expression", ErrBadExpression)
	}

	p := &exprParser{tokens: tokens}
	root, err := p.parseExpr(0)
	if err != nil {
		return nil, nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, nil, fmt.Errorf("%w: unexpected %q", ErrBadExpression, p.tokens[p.pos].text)
	}

	var deps []string
	seen := make(map[string]bool)
	collectIdents(root, seen, &deps)
	return root, deps, nil
}

func collectIdents(n *exprNode, seen map[string]bool, deps *[]string) {
	if n == nil {
		return
	}
	if n.op == 'v' && !seen[n.name] {
		seen[n.name] = true
		*deps = append(*deps, n.name)
	}
	collectIdents(n.left, seen, deps)
	collectIdents(n.right, seen, deps)
}

// tokenize splits src into tokens, rejecting anything outside the grammar.
func tokenize(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokOp, text: string(c)})
			i++

		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++

		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++

		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			num, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrBadExpression, src[start:i])
			}
			tokens = append(tokens, token{kind: tokNumber, num: num, text: src[start:i]})

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: src[start:i]})

		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrBadExpression, string(c))
		}

		if len(tokens) > maxExprTokens {
			return nil, fmt.Errorf("%w: expression too long", ErrBadExpression)
		}
	}
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

type exprParser struct {
	tokens []token
	pos    int
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *exprParser) parseExpr(depth int) (*exprNode, error) {
	if depth > maxExprDepth {
		return nil, fmt.Errorf("%w: expression too deeply nested", ErrBadExpression)
	}
	left, err := p.parseTerm(depth + 1)
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm(depth + 1)
		if err != nil {
			return nil, err
		}
		left = &exprNode{op: t.text[0], left: left, right: right}
	}
}

func (p *exprParser) parseTerm(depth int) (*exprNode, error) {
	if depth > maxExprDepth {
		return nil, fmt.Errorf("%w: expression too deeply nested", ErrBadExpression)
	}
	left, err := p.parseUnary(depth + 1)
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary(depth + 1)
		if err != nil {
			return nil, err
		}
		left = &exprNode{op: t.text[0], left: left, right: right}
	}
}

func (p *exprParser) parseUnary(depth int) (*exprNode, error) {
	if depth > maxExprDepth {
		return nil, fmt.Errorf("%w: expression too deeply nested", ErrBadExpression)
	}
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrBadExpression)
	}
	if t.kind == tokOp && t.text == "-" {
		p.pos++
		operand, err := p.parseUnary(depth + 1)
		if err != nil {
			return nil, err
		}
		return &exprNode{op: 'u', left: operand}, nil
	}
	return p.parsePrimary(depth + 1)
}

func (p *exprParser) parsePrimary(depth int) (*exprNode, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrBadExpression)
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		return &exprNode{op: 'n', num: t.num}, nil

	case tokIdent:
		p.pos++
		return &exprNode{op: 'v', name: t.text}, nil

	case tokLParen:
		p.pos++
		inner, err := p.parseExpr(depth + 1)
		if err != nil {
			return nil, err
		}
		next, ok := p.peek()
		if !ok || next.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrBadExpression)
		}
		p.pos++
		return inner, nil

	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrBadExpression, t.text)
	}
}

// eval computes the expression value by reading identifier values from
// scope. Unknown identifiers and division by zero are evaluation errors.
func (n *exprNode) eval(scope map[string]float64) (float64, error) {
	switch n.op {
	case 'n':
		return n.num, nil

	case 'v':
		v, ok := scope[n.name]
		if !ok {
			return 0, fmt.Errorf("unknown parameter %q", n.name)
		}
		return v, nil

	case 'u':
		v, err := n.left.eval(scope)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case '+', '-', '*', '/':
		l, err := n.left.eval(scope)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(scope)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		default:
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return l / r, nil
		}

	default:
		return 0, fmt.Errorf("invalid expression node %q", string(n.op))
	}
}
