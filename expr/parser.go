package expr

import (
	"fmt"
	"strconv"
)

// node is an evaluable expression tree node.
type node interface {
	eval(ctx map[string]any) (any, error)
}

type literalNode struct{ value any }

type identNode struct{ name string }

type unaryNode struct {
	op      string
	operand node
}

type binaryNode struct {
	op          string
	left, right node
}

type memberNode struct {
	object node
	name   string
}

type indexNode struct {
	object node
	index  node
}

type callNode struct {
	object node
	method string
	args   []node
}

// binding powers for infix operators (Pratt parsing).
var infixPower = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "===": 3, "!==": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

const unaryPower = 7

type parser struct {
	tokens []token
	pos    int
}

// parse builds an expression tree for the whole input.
func parse(input string) (node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tk := p.peek(); tk.kind != tkEOF {
		return nil, fmt.Errorf("expr: unexpected %q at position %d", tk.text, tk.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }
func (p *parser) next() token { t := p.tokens[p.pos]; p.pos++; return t }

func (p *parser) expect(kind tokenKind, text string) error {
	tk := p.next()
	if tk.kind != kind || tk.text != text {
		return fmt.Errorf("expr: expected %q, got %q at position %d", text, tk.text, tk.pos)
	}
	return nil
}

func (p *parser) parseExpr(minPower int) (node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		left, err = p.parsePostfix(left)
		if err != nil {
			return nil, err
		}

		tk := p.peek()
		if tk.kind != tkOperator {
			break
		}
		power, ok := infixPower[tk.text]
		if !ok || power <= minPower {
			break
		}
		p.next()
		right, err := p.parseExpr(power)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tk.text, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parsePrefix() (node, error) {
	tk := p.next()

	switch tk.kind {
	case tkNumber:
		f, err := strconv.ParseFloat(tk.text, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: bad number %q at position %d", tk.text, tk.pos)
		}
		return &literalNode{value: f}, nil

	case tkString:
		return &literalNode{value: tk.text}, nil

	case tkIdent:
		switch tk.text {
		case "true":
			return &literalNode{value: true}, nil
		case "false":
			return &literalNode{value: false}, nil
		case "null", "undefined":
			return &literalNode{value: nil}, nil
		}
		return &identNode{name: tk.text}, nil

	case tkOperator:
		if tk.text == "!" || tk.text == "-" {
			operand, err := p.parseExpr(unaryPower)
			if err != nil {
				return nil, err
			}
			return &unaryNode{op: tk.text, operand: operand}, nil
		}

	case tkPunct:
		if tk.text == "(" {
			inner, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(tkPunct, ")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}

	return nil, fmt.Errorf("expr: unexpected %q at position %d", tk.text, tk.pos)
}

func (p *parser) parsePostfix(left node) (node, error) {
	for {
		tk := p.peek()
		if tk.kind != tkPunct {
			return left, nil
		}

		switch tk.text {
		case ".":
			p.next()
			name := p.next()
			if name.kind != tkIdent {
				return nil, fmt.Errorf("expr: expected member name at position %d", name.pos)
			}
			if p.peek().kind == tkPunct && p.peek().text == "(" {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				left = &callNode{object: left, method: name.text, args: args}
			} else {
				left = &memberNode{object: left, name: name.text}
			}

		case "[":
			p.next()
			idx, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(tkPunct, "]"); err != nil {
				return nil, err
			}
			left = &indexNode{object: left, index: idx}

		default:
			return left, nil
		}
	}
}

func (p *parser) parseArgs() ([]node, error) {
	if err := p.expect(tkPunct, "("); err != nil {
		return nil, err
	}

	var args []node
	if p.peek().kind == tkPunct && p.peek().text == ")" {
		p.next()
		return args, nil
	}

	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tk := p.next()
		switch {
		case tk.kind == tkPunct && tk.text == ")":
			return args, nil
		case tk.kind == tkPunct && tk.text == ",":
			continue
		default:
			return nil, fmt.Errorf("expr: expected ',' or ')' at position %d", tk.pos)
		}
	}
}
