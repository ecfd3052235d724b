package parser

import (
	"strings"
	"unicode"
)

// Lexer tokenizes rho source code
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips over whitespace characters (including newlines;
// statements are separated with ';')
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips over a comment (# to end of line)
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"NULL":          TOKEN_NULL,
	"TRUE":          TOKEN_TRUE,
	"FALSE":         TOKEN_FALSE,
	"NA":            TOKEN_NA,
	"NA_integer_":   TOKEN_NA_INT,
	"NA_real_":      TOKEN_NA_REAL,
	"NA_character_": TOKEN_NA_STR,
	"Inf":           TOKEN_INF,
	"NaN":           TOKEN_NAN,
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()
	for l.ch == '#' {
		l.skipComment()
		l.skipWhitespace()
	}

	tok.Position = Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Value = ""
	case '(':
		tok.Type = TOKEN_LPAREN
		tok.Value = string(l.ch)
		l.readChar()
	case ')':
		tok.Type = TOKEN_RPAREN
		tok.Value = string(l.ch)
		l.readChar()
	case '{':
		tok.Type = TOKEN_LBRACE
		tok.Value = string(l.ch)
		l.readChar()
	case '}':
		tok.Type = TOKEN_RBRACE
		tok.Value = string(l.ch)
		l.readChar()
	case '[':
		if l.peekChar() == '[' {
			tok.Type = TOKEN_LBB
			tok.Value = "[["
			l.readChar()
			l.readChar()
		} else {
			tok.Type = TOKEN_LBRACKET
			tok.Value = "["
			l.readChar()
		}
	case ']':
		// ']]' is deliberately two tokens so 'x[y[1]]' closes both
		// brackets; the parser consumes two of these after '[['
		tok.Type = TOKEN_RBRACKET
		tok.Value = "]"
		l.readChar()
	case ',':
		tok.Type = TOKEN_COMMA
		tok.Value = string(l.ch)
		l.readChar()
	case ';':
		tok.Type = TOKEN_SEMICOLON
		tok.Value = string(l.ch)
		l.readChar()
	case '$':
		tok.Type = TOKEN_DOLLAR
		tok.Value = string(l.ch)
		l.readChar()
	case '+':
		tok.Type = TOKEN_PLUS
		tok.Value = string(l.ch)
		l.readChar()
	case '-':
		tok.Type = TOKEN_MINUS
		tok.Value = string(l.ch)
		l.readChar()
	case '*':
		tok.Type = TOKEN_STAR
		tok.Value = string(l.ch)
		l.readChar()
	case '/':
		tok.Type = TOKEN_SLASH
		tok.Value = string(l.ch)
		l.readChar()
	case ':':
		tok.Type = TOKEN_COLON
		tok.Value = string(l.ch)
		l.readChar()
	case '=':
		tok.Type = TOKEN_ASSIGN
		tok.Value = string(l.ch)
		l.readChar()
	case '<':
		if l.peekChar() == '-' {
			tok.Type = TOKEN_LEFT_ASSIGN
			tok.Value = "<-"
			l.readChar()
			l.readChar()
		} else if l.peekChar() == '<' {
			l.readChar()
			if l.peekChar() == '-' {
				tok.Type = TOKEN_SUPER_ASSIGN
				tok.Value = "<<-"
				l.readChar()
				l.readChar()
			} else {
				tok.Type = TOKEN_ILLEGAL
				tok.Value = "<<"
				l.readChar()
			}
		} else {
			tok.Type = TOKEN_ILLEGAL
			tok.Value = "<"
			l.readChar()
		}
	case '"', '\'':
		return l.readString(tok.Position)
	case '`':
		return l.readBacktickName(tok.Position)
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumber(tok.Position)
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier(tok.Position)
		}
		tok.Type = TOKEN_ILLEGAL
		tok.Value = string(l.ch)
		l.readChar()
	}

	return tok
}

// readNumber reads an integer, double or complex literal.
// A trailing 'L' makes an integer, a trailing 'i' makes a complex.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	isDouble := false
	if l.ch == '.' {
		isDouble = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isDouble = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	value := l.input[start:l.position]
	if l.ch == 'L' && !isDouble {
		l.readChar()
		return Token{Type: TOKEN_INT, Value: value, Position: pos}
	}
	if l.ch == 'i' {
		l.readChar()
		return Token{Type: TOKEN_COMPLEX, Value: value, Position: pos}
	}
	return Token{Type: TOKEN_NUM, Value: value, Position: pos}
}

// readString reads a quoted string literal with escapes
func (l *Lexer) readString(pos Position) Token {
	quote := l.ch
	l.readChar()
	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			default:
				sb.WriteByte(l.ch)
			}
		} else {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: TOKEN_ILLEGAL, Value: "unterminated string", Position: pos}
	}
	l.readChar() // closing quote
	raw := sb.String()
	return Token{Type: TOKEN_STRING, Value: raw, Literal: raw, Position: pos}
}

// readBacktickName reads a backtick-quoted identifier such as `names<-`
func (l *Lexer) readBacktickName(pos Position) Token {
	l.readChar()
	start := l.position
	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: TOKEN_ILLEGAL, Value: "unterminated name", Position: pos}
	}
	name := l.input[start:l.position]
	l.readChar() // closing backtick
	return Token{Type: TOKEN_IDENTIFIER, Value: name, Position: pos}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier(pos Position) Token {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	value := l.input[start:l.position]
	if kw, ok := keywords[value]; ok {
		return Token{Type: kw, Value: value, Position: pos}
	}
	return Token{Type: TOKEN_IDENTIFIER, Value: value, Position: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '.' || ch == '_' || unicode.IsLetter(rune(ch))
}

func isIdentPart(ch byte) bool {
	return ch == '.' || ch == '_' || unicode.IsLetter(rune(ch)) || isDigit(ch)
}
