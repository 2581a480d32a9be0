package otsexp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLeftParen
	tokenRightParen
	tokenSymbol
	tokenString
)

type token struct {
	typ   tokenType
	value string
}

type lexer struct {
	reader *bufio.Reader
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r)}
}

// next reads the next token, skipping whitespace and # comments
func (l *lexer) next() (token, error) {
	for {
		ch, _, err := l.reader.ReadRune()
		if err == io.EOF {
			return token{typ: tokenEOF}, nil
		}
		if err != nil {
			return token{}, err
		}

		if unicode.IsSpace(ch) {
			continue
		}

		if ch == '#' {
			for {
				c, _, err := l.reader.ReadRune()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}

		switch ch {
		case '(':
			return token{typ: tokenLeftParen, value: "("}, nil
		case ')':
			return token{typ: tokenRightParen, value: ")"}, nil
		case '"':
			return l.readString()
		default:
			return l.readSymbol(ch)
		}
	}
}

// readString reads a double-quoted string with backslash escapes;
// the opening quote has already been consumed
func (l *lexer) readString() (token, error) {
	var sb strings.Builder
	for {
		ch, _, err := l.reader.ReadRune()
		if err != nil {
			return token{}, fmt.Errorf("unterminated string")
		}
		switch ch {
		case '"':
			return token{typ: tokenString, value: sb.String()}, nil
		case '\\':
			esc, _, err := l.reader.ReadRune()
			if err != nil {
				return token{}, fmt.Errorf("unterminated string escape")
			}
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

// readSymbol reads an unquoted atom starting with first
func (l *lexer) readSymbol(first rune) (token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, _, err := l.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			l.reader.UnreadRune()
			break
		}
		sb.WriteRune(ch)
	}
	return token{typ: tokenSymbol, value: sb.String()}, nil
}

// Parse reads all top-level S-expressions from the input
func Parse(r io.Reader) ([]*Node, error) {
	lex := newLexer(r)
	var nodes []*Node
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return nodes, nil
		}
		node, err := parseExpr(lex, tok)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// ParseString parses S-expressions from a string
func ParseString(input string) ([]*Node, error) {
	return Parse(strings.NewReader(input))
}

func parseExpr(lex *lexer, tok token) (*Node, error) {
	switch tok.typ {
	case tokenSymbol:
		return &Node{Value: tok.value}, nil
	case tokenString:
		return &Node{Value: tok.value, IsString: true}, nil
	case tokenLeftParen:
		return parseList(lex)
	case tokenRightParen:
		return nil, fmt.Errorf("unexpected ')'")
	default:
		return nil, fmt.Errorf("unexpected EOF")
	}
}

func parseList(lex *lexer) (*Node, error) {
	node := &Node{List: []*Node{}}
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.typ {
		case tokenRightParen:
			return node, nil
		case tokenEOF:
			return nil, fmt.Errorf("unexpected EOF in list")
		default:
			child, err := parseExpr(lex, tok)
			if err != nil {
				return nil, err
			}
			node.List = append(node.List, child)
		}
	}
}
