// lexer.go: scanner for the calculator's expression language
package pycalc

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL
	NEWLINE // statement separator ('\n' outside brackets)
	SEMI    // ";"

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	COMMA   // ","
	COLON   // ":"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	FLOORDIV // "//"
	MOD
	POW    // "**"
	MATMUL // "@"
	ASSIGN // "="
	AUGASSIGN
	EQ  // "=="
	NEQ // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING
	INTEGER
	NUMBER
	IMAGINARY
	BOOLEAN
	NONE

	// Keywords
	AND
	OR
	NOT
	LAMBDA
)

var tokenNames = map[TokenType]string{
	EOF: "end of input", ILLEGAL: "illegal", NEWLINE: "newline", SEMI: "';'",
	LROUND: "'('", RROUND: "')'", LSQUARE: "'['", RSQUARE: "']'",
	COMMA: "','", COLON: "':'",
	PLUS: "'+'", MINUS: "'-'", MULT: "'*'", DIV: "'/'", FLOORDIV: "'//'",
	MOD: "'%'", POW: "'**'", MATMUL: "'@'", ASSIGN: "'='", AUGASSIGN: "augmented assignment",
	EQ: "'=='", NEQ: "'!='", LESS: "'<'", LESS_EQ: "'<='", GREATER: "'>'", GREATER_EQ: "'>='",
	ID: "identifier", STRING: "string", INTEGER: "integer", NUMBER: "number",
	IMAGINARY: "imaginary number", BOOLEAN: "boolean", NONE: "None",
	AND: "'and'", OR: "'or'", NOT: "'not'", LAMBDA: "'lambda'",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type      TokenType
	Lexeme    string // raw text slice
	Literal   any    // parsed value for literals; operator for AUGASSIGN
	Line      int    // 1-based
	Col       int    // 0-based
	StartByte int
	EndByte   int
}

var keywords = map[string]TokenType{
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"lambda": LAMBDA,
	"True":   BOOLEAN,
	"False":  BOOLEAN,
	"None":   NONE,
}

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	depth  int // bracket nesting; newlines inside brackets are whitespace
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) match(b byte) bool {
	if c, ok := l.peek(); ok && c == b {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) addToken(tt TokenType, lit any) Token {
	tok := Token{
		Type:      tt,
		Lexeme:    l.src[l.start:l.cur],
		Literal:   lit,
		Line:      l.tokStartLine,
		Col:       l.tokStartCol,
		StartByte: l.start,
		EndByte:   l.cur,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

// skipWhitespace eats blanks and comments. Newlines are only eaten inside
// brackets; at depth 0 they are statement separators.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '\n' && l.depth > 0:
			l.advance()
		case ch == '\\':
			// explicit line continuation
			if nx, ok := l.peekN(1); ok && nx == '\n' {
				l.advance()
				l.advance()
				continue
			}
			return
		case ch == '#':
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) err(msg string) error {
	return &Error{Kind: DiagLex, Msg: msg, Line: l.tokStartLine, Col: l.tokStartCol + 1}
}

// ----- scanners -----

// scanString parses a quoted literal; the opening quote was consumed.
func (l *Lexer) scanString(quote byte) (string, error) {
	var b strings.Builder
	for {
		ch, ok := l.advance()
		if !ok || ch == '\n' {
			return "", l.err("unterminated string literal")
		}
		if ch == quote {
			return b.String(), nil
		}
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		esc, ok := l.advance()
		if !ok {
			return "", l.err("unterminated string literal")
		}
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '\'', '"':
			b.WriteByte(esc)
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
}

func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

func (l *Lexer) digits() bool {
	saw := false
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return saw
		}
		l.advance()
		saw = true
	}
}

// scanNumber parses integer, float or imaginary literals; supports .5, 1.,
// 1.23e-4 and a trailing j/J for imaginary numbers.
func (l *Lexer) scanNumber() (tok TokenType, lit any, err error) {
	sawDigits := l.digits()

	sawDot := false
	if b, ok := l.peek(); ok && b == '.' {
		if nx, ok := l.peekN(1); sawDigits || (ok && isDigit(nx)) {
			l.advance()
			sawDot = true
			if l.digits() {
				sawDigits = true
			}
		}
	}
	if !sawDigits {
		return ILLEGAL, nil, l.err("malformed number")
	}

	sawExp := false
	if b, ok := l.peek(); ok && (b == 'e' || b == 'E') {
		save, saveCol := l.cur, l.col
		l.advance()
		if b2, ok := l.peek(); ok && (b2 == '+' || b2 == '-') {
			l.advance()
		}
		if l.digits() {
			sawExp = true
		} else {
			l.cur, l.col = save, saveCol
		}
	}

	lex := l.src[l.start:l.cur]
	if b, ok := l.peek(); ok && (b == 'j' || b == 'J') {
		l.advance()
		f, convErr := strconv.ParseFloat(lex, 64)
		if convErr != nil {
			return ILLEGAL, nil, l.err("invalid imaginary literal")
		}
		return IMAGINARY, f, nil
	}
	if !sawDot && !sawExp {
		v, convErr := strconv.ParseInt(lex, 10, 64)
		if convErr == nil {
			return INTEGER, v, nil
		}
		// too large for int64: keep the magnitude as a float
	}
	vf, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.err("invalid float literal")
	}
	return NUMBER, vf, nil
}

// augmented reports whether an '=' follows and, if so, emits op= as AUGASSIGN.
func (l *Lexer) augmented(op string, plain TokenType) Token {
	if l.match('=') {
		return l.addToken(AUGASSIGN, op)
	}
	return l.addToken(plain, op)
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()
	switch ch {
	case '\n':
		return l.addToken(NEWLINE, nil), nil
	case ';':
		return l.addToken(SEMI, nil), nil
	case '(':
		l.depth++
		return l.addToken(LROUND, nil), nil
	case ')':
		if l.depth > 0 {
			l.depth--
		}
		return l.addToken(RROUND, nil), nil
	case '[':
		l.depth++
		return l.addToken(LSQUARE, nil), nil
	case ']':
		if l.depth > 0 {
			l.depth--
		}
		return l.addToken(RSQUARE, nil), nil
	case ',':
		return l.addToken(COMMA, nil), nil
	case ':':
		return l.addToken(COLON, nil), nil
	case '@':
		return l.addToken(MATMUL, "@"), nil
	case '+':
		return l.augmented("+", PLUS), nil
	case '-':
		return l.augmented("-", MINUS), nil
	case '%':
		return l.augmented("%", MOD), nil
	case '*':
		if l.match('*') {
			return l.augmented("**", POW), nil
		}
		return l.augmented("*", MULT), nil
	case '/':
		if l.match('/') {
			return l.augmented("//", FLOORDIV), nil
		}
		return l.augmented("/", DIV), nil
	case '=':
		if l.match('=') {
			return l.addToken(EQ, "=="), nil
		}
		return l.addToken(ASSIGN, "="), nil
	case '!':
		if l.match('=') {
			return l.addToken(NEQ, "!="), nil
		}
		return Token{}, l.err("unexpected character: '!'")
	case '<':
		if l.match('=') {
			return l.addToken(LESS_EQ, "<="), nil
		}
		return l.addToken(LESS, "<"), nil
	case '>':
		if l.match('=') {
			return l.addToken(GREATER_EQ, ">="), nil
		}
		return l.addToken(GREATER, ">"), nil
	case '"', '\'':
		text, err := l.scanString(ch)
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, text), nil
	}

	if isDigit(ch) || ch == '.' {
		l.cur, l.col = l.start, l.tokStartCol
		tt, lit, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(tt, lit), nil
	}

	if isAlpha(ch) {
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			switch tt {
			case BOOLEAN:
				return l.addToken(BOOLEAN, lex == "True"), nil
			case NONE:
				return l.addToken(NONE, nil), nil
			default:
				return l.addToken(tt, lex), nil
			}
		}
		return l.addToken(ID, lex), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
