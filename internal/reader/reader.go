// Package reader builds value trees out of the lexer's token stream.
// Quotations are indistinguishable from lists, so parsing and data share
// representation: a term sequence read here is a LIST value, ready to be
// pushed or executed.
package reader

import (
	"fmt"

	"github.com/go-joy/joy/internal/lexer"
	"github.com/go-joy/joy/internal/token"
	"github.com/go-joy/joy/internal/value"
)

// Definition pairs a head symbol with the quotation body installed for it
// by a DEFINE/LIBRA block.
type Definition struct {
	Name string
	Body value.ListValue
	Pos  token.Position
}

// Phrase is either a definition set or a term sequence to evaluate.
// Exactly one of Definitions/Terms is non-nil.
type Phrase struct {
	Definitions []Definition
	Terms       value.ListValue
}

// IsDefinitions reports whether this phrase is a definition set.
func (p Phrase) IsDefinitions() bool { return p.Definitions != nil }

// Error is a reader diagnostic: unterminated string/list/set, a malformed
// numeric literal, an illegal character, a missing "==" in a definition, or
// a missing "." at the end of a phrase.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message, e.Pos)
}

// Reader turns a token stream into a sequence of Phrases.
type Reader struct {
	lex  *lexer.Lexer
	tok  token.Token
	file string
}

// New creates a Reader over src. file is attached to Error positions and is
// otherwise cosmetic (e.g. "<stdin>", "<eval>", or an actual path).
func New(src, file string) *Reader {
	l := lexer.New(src, lexer.WithFile(file))
	r := &Reader{lex: l, file: file}
	r.advance()
	return r
}

func (r *Reader) advance() { r.tok = r.lex.Next() }

// ReadOneFactor reads exactly one literal, list, set, or identifier value,
// for primitives like `get` that consume a single top-level factor from
// the input rather than a whole phrase. done is true once EOF is reached
// with nothing left to read.
func (r *Reader) ReadOneFactor() (v value.Value, done bool, err error) {
	if r.tok.Type == token.EOF {
		return nil, true, nil
	}
	v, err = r.readValue()
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// ReadProgram reads every phrase up to EOF. Scanning stops at the first
// error encountered; the caller decides whether to report it and continue
// with the next top-level phrase, since a reader error aborts only the
// current phrase and never terminates the process.
func (r *Reader) ReadProgram() ([]Phrase, error) {
	var phrases []Phrase
	for r.tok.Type != token.EOF {
		switch r.tok.Type {
		case token.MODULE, token.PRIVATE, token.PUBLIC:
			// Transparent scoping markers: consumed with no structural
			// effect.
			r.advance()
			continue
		case token.DEFINE, token.LIBRA:
			defs, err := r.readDefinitionBlock()
			if err != nil {
				return phrases, err
			}
			phrases = append(phrases, Phrase{Definitions: defs})
		default:
			terms, err := r.readTermPhrase()
			if err != nil {
				return phrases, err
			}
			phrases = append(phrases, Phrase{Terms: terms})
		}
	}
	return phrases, nil
}

// readTermPhrase reads values up to and including a terminating ".".
func (r *Reader) readTermPhrase() (value.ListValue, error) {
	var items []value.Value
	for {
		switch r.tok.Type {
		case token.DOT:
			r.advance()
			return value.ListValue{Items: items}, nil
		case token.EOF:
			if len(items) == 0 {
				return value.ListValue{}, nil
			}
			return value.ListValue{}, &Error{Message: "missing '.' at end of phrase", Pos: r.tok.Pos}
		default:
			v, err := r.readValue()
			if err != nil {
				return value.ListValue{}, err
			}
			items = append(items, v)
		}
	}
}

// readValue reads exactly one literal, list, set or symbol value, recursing
// for nested [ ] and { }.
func (r *Reader) readValue() (value.Value, error) {
	tok := r.tok
	switch tok.Type {
	case token.INT:
		n, _ := parseInt(tok.Literal)
		r.advance()
		return value.Integer{Val: n}, nil
	case token.FLOAT:
		f, _ := parseFloat(tok.Literal)
		r.advance()
		return value.FloatValue{Val: f}, nil
	case token.CHAR:
		r.advance()
		return value.CharValue{Val: tok.Literal[0]}, nil
	case token.STRING:
		r.advance()
		return value.String{Val: tok.Literal}, nil
	case token.LBRACKET:
		return r.readList()
	case token.LBRACE:
		return r.readSet()
	case token.IDENT:
		r.advance()
		switch tok.Literal {
		case "true":
			return value.NewBool(true), nil
		case "false":
			return value.NewBool(false), nil
		default:
			if looksNumeric(tok.Literal) {
				return nil, &Error{Message: "malformed numeric literal: " + tok.Literal, Pos: tok.Pos}
			}
			return value.Intern(tok.Literal), nil
		}
	case token.ILLEGAL:
		return nil, &Error{Message: "illegal token: " + tok.Literal, Pos: tok.Pos}
	default:
		return nil, &Error{Message: "unexpected token " + tok.Type.String(), Pos: tok.Pos}
	}
}

func (r *Reader) readList() (value.Value, error) {
	open := r.tok.Pos
	r.advance() // consume '['
	var items []value.Value
	for r.tok.Type != token.RBRACKET {
		if r.tok.Type == token.EOF {
			return nil, &Error{Message: "unterminated list", Pos: open}
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	r.advance() // consume ']'
	return value.ListValue{Items: items}, nil
}

func (r *Reader) readSet() (value.Value, error) {
	open := r.tok.Pos
	r.advance() // consume '{'
	var set value.SetValue
	for r.tok.Type != token.RBRACE {
		if r.tok.Type == token.EOF {
			return nil, &Error{Message: "unterminated set", Pos: open}
		}
		if r.tok.Type != token.INT {
			return nil, &Error{Message: "set literal may only contain integers, got " + r.tok.Type.String(), Pos: r.tok.Pos}
		}
		n, _ := parseInt(r.tok.Literal)
		if n < 0 || n >= value.SetSize {
			return nil, &Error{Message: fmt.Sprintf("set element %d out of range 0..%d", n, value.SetSize-1), Pos: r.tok.Pos}
		}
		set = set.With(int(n))
		r.advance()
	}
	r.advance() // consume '}'
	return set, nil
}

// readDefinitionBlock reads a DEFINE/LIBRA ... END block into a flat set of
// Definitions.
func (r *Reader) readDefinitionBlock() ([]Definition, error) {
	r.advance() // consume DEFINE/LIBRA
	var defs []Definition
	for {
		if r.tok.Type == token.END {
			r.advance()
			return defs, nil
		}
		d, err := r.readOneDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d...)
		switch r.tok.Type {
		case token.SEMI:
			r.advance()
		case token.END:
			// loop head handles consuming END
		case token.EOF:
			return nil, &Error{Message: "unterminated DEFINE block, expected END", Pos: r.tok.Pos}
		default:
			return nil, &Error{Message: "expected ';' or END after definition, got " + r.tok.Type.String(), Pos: r.tok.Pos}
		}
	}
}

// readOneDefinition reads "name == body" where body may itself contain a
// HIDE ... IN ... END construct. It returns one or more Definitions: the
// named head, plus (in flattened form) any HIDE-introduced helper
// definitions, since the environment is a single flat symbol-to-definition
// map with no lexical privacy to enforce.
func (r *Reader) readOneDefinition() ([]Definition, error) {
	if r.tok.Type != token.IDENT && r.tok.Type != token.DEFINE && r.tok.Type != token.LIBRA {
		return nil, &Error{Message: "expected definition name, got " + r.tok.Type.String(), Pos: r.tok.Pos}
	}
	name := r.tok.Literal
	pos := r.tok.Pos
	r.advance()
	if r.tok.Type != token.EQUALDEF {
		return nil, &Error{Message: "expected '==' after definition head '" + name + "'", Pos: r.tok.Pos}
	}
	r.advance()

	var extra []Definition
	var items []value.Value
	for !r.atDefinitionBoundary() {
		if r.tok.Type == token.HIDE {
			hidden, body, err := r.readHideBlock()
			if err != nil {
				return nil, err
			}
			extra = append(extra, hidden...)
			items = append(items, body.Items...)
			continue
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	def := Definition{Name: name, Body: value.ListValue{Items: items}, Pos: pos}
	return append([]Definition{def}, extra...), nil
}

func (r *Reader) atDefinitionBoundary() bool {
	switch r.tok.Type {
	case token.SEMI, token.END, token.IN, token.EOF:
		return true
	default:
		return false
	}
}

// readHideBlock reads "HIDE name == body ( ; name == body )* IN terms END"
// and returns the hidden definitions plus the trailing term sequence that
// becomes (part of) the enclosing definition's body.
func (r *Reader) readHideBlock() ([]Definition, value.ListValue, error) {
	r.advance() // consume HIDE
	var hidden []Definition
	for r.tok.Type != token.IN {
		if r.tok.Type == token.EOF {
			return nil, value.ListValue{}, &Error{Message: "unterminated HIDE block, expected IN", Pos: r.tok.Pos}
		}
		d, err := r.readOneDefinition()
		if err != nil {
			return nil, value.ListValue{}, err
		}
		hidden = append(hidden, d...)
		if r.tok.Type == token.SEMI {
			r.advance()
		}
	}
	r.advance() // consume IN
	var items []value.Value
	for r.tok.Type != token.END {
		if r.tok.Type == token.EOF {
			return nil, value.ListValue{}, &Error{Message: "unterminated HIDE block, expected END", Pos: r.tok.Pos}
		}
		v, err := r.readValue()
		if err != nil {
			return nil, value.ListValue{}, err
		}
		items = append(items, v)
	}
	r.advance() // consume END
	return hidden, value.ListValue{Items: items}, nil
}

func looksNumeric(lit string) bool {
	if lit == "" {
		return false
	}
	i := 0
	if lit[0] == '+' || lit[0] == '-' {
		i = 1
	}
	return i < len(lit) && lit[i] >= '0' && lit[i] <= '9'
}

func parseInt(s string) (int64, error) {
	var n int64
	neg := false
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	for ; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	return f, err
}
