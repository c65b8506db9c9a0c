package wkt

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	TOKEN_KEYWORD = iota
	TOKEN_STRING
	TOKEN_NUMBER
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_COMMA
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), getToken(TOKEN_KEYWORD))
	lexer.Add([]byte(`"[^"]*"`), getToken(TOKEN_STRING))
	lexer.Add([]byte(`[\+\-]?[0-9]*\.?[0-9]+([eE][\+\-]?[0-9]+)?`), getToken(TOKEN_NUMBER))
	lexer.Add([]byte(`[\[\(]`), getToken(TOKEN_LBRACKET))
	lexer.Add([]byte(`[\]\)]`), getToken(TOKEN_RBRACKET))
	lexer.Add([]byte(`,`), getToken(TOKEN_COMMA))
	lexer.Add([]byte(`\s+`), skip)
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

type parser struct {
	tokens []*lexmachine.Token
	pos    int
}

// Parse reads a single WKT clause and fails on trailing garbage.
func Parse(text []byte) (*Value, error) {
	scanner, err := lexer.Scanner(text)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	p := &parser{tokens: make([]*lexmachine.Token, 0, 64)}
	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to tokenize wkt")
		}
		p.tokens = append(p.tokens, tok.(*lexmachine.Token))
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, errors.Errorf("Trailing input at line %v (%q)", tok.StartLine, tok.Lexeme)
	}
	return v, nil
}

func (p *parser) next() *lexmachine.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) peek() *lexmachine.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.pos]
}

// value := KEYWORD '[' arg (',' arg)* ']'
func (p *parser) value() (*Value, error) {
	tok := p.next()
	if tok == nil {
		return nil, errors.New("Unexpected end of wkt, expected keyword")
	}
	if tok.Type != TOKEN_KEYWORD {
		return nil, errors.Errorf("Expected keyword on line %v, got %q", tok.StartLine, tok.Lexeme)
	}
	v := &Value{Keyword: string(tok.Lexeme)}

	open := p.next()
	if open == nil || open.Type != TOKEN_LBRACKET {
		return nil, errors.Errorf("Expected '[' after %q", v.Keyword)
	}

	for {
		arg, err := p.arg()
		if err != nil {
			return nil, err
		}
		v.Args = append(v.Args, arg)

		tok := p.next()
		if tok == nil {
			return nil, errors.Errorf("Unexpected end of wkt inside %q", v.Keyword)
		}
		switch tok.Type {
		case TOKEN_COMMA:
			continue
		case TOKEN_RBRACKET:
			return v, nil
		default:
			return nil, errors.Errorf("Expected ',' or ']' on line %v, got %q", tok.StartLine, tok.Lexeme)
		}
	}
}

func (p *parser) arg() (interface{}, error) {
	tok := p.peek()
	if tok == nil {
		return nil, errors.New("Unexpected end of wkt, expected argument")
	}
	switch tok.Type {
	case TOKEN_STRING:
		p.next()
		return string(tok.Lexeme[1 : len(tok.Lexeme)-1]), nil
	case TOKEN_NUMBER:
		p.next()
		f, err := strconv.ParseFloat(string(tok.Lexeme), 64)
		if err != nil {
			return nil, errors.Errorf("Unknown number format on line %v (%q)", tok.StartLine, tok.Lexeme)
		}
		return f, nil
	case TOKEN_KEYWORD:
		// bare keywords appear as enum values, e.g. AXIS["Easting",EAST]
		if p.pos+1 >= len(p.tokens) || p.tokens[p.pos+1].Type != TOKEN_LBRACKET {
			p.next()
			return string(tok.Lexeme), nil
		}
		return p.value()
	default:
		return nil, errors.Errorf("Unexpected token on line %v (%q)", tok.StartLine, tok.Lexeme)
	}
}
