package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUM     // 3.14 or 42 (double)
	TOKEN_INT     // 42L
	TOKEN_STRING  // "hello"
	TOKEN_COMPLEX // 2i

	// Keywords
	TOKEN_NULL
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NA
	TOKEN_NA_INT  // NA_integer_
	TOKEN_NA_REAL // NA_real_
	TOKEN_NA_STR  // NA_character_
	TOKEN_INF
	TOKEN_NAN

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS  // +
	TOKEN_MINUS // -
	TOKEN_STAR  // *
	TOKEN_SLASH // /
	TOKEN_COLON // :

	TOKEN_ASSIGN       // =
	TOKEN_LEFT_ASSIGN  // <-
	TOKEN_SUPER_ASSIGN // <<-

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_LBB       // [[
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOLLAR    // $
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string
	Literal  string // Decoded string value (for TOKEN_STRING)
	Position Position
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ILLEGAL:
		return "ILLEGAL"
	case TOKEN_NUM:
		return "NUM"
	case TOKEN_INT:
		return "INT"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_COMPLEX:
		return "COMPLEX"
	case TOKEN_NULL:
		return "NULL"
	case TOKEN_TRUE:
		return "TRUE"
	case TOKEN_FALSE:
		return "FALSE"
	case TOKEN_NA:
		return "NA"
	case TOKEN_NA_INT:
		return "NA_integer_"
	case TOKEN_NA_REAL:
		return "NA_real_"
	case TOKEN_NA_STR:
		return "NA_character_"
	case TOKEN_INF:
		return "Inf"
	case TOKEN_NAN:
		return "NaN"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_PLUS:
		return "+"
	case TOKEN_MINUS:
		return "-"
	case TOKEN_STAR:
		return "*"
	case TOKEN_SLASH:
		return "/"
	case TOKEN_COLON:
		return ":"
	case TOKEN_ASSIGN:
		return "="
	case TOKEN_LEFT_ASSIGN:
		return "<-"
	case TOKEN_SUPER_ASSIGN:
		return "<<-"
	case TOKEN_LPAREN:
		return "("
	case TOKEN_RPAREN:
		return ")"
	case TOKEN_LBRACE:
		return "{"
	case TOKEN_RBRACE:
		return "}"
	case TOKEN_LBRACKET:
		return "["
	case TOKEN_LBB:
		return "[["
	case TOKEN_RBRACKET:
		return "]"
	case TOKEN_COMMA:
		return ","
	case TOKEN_SEMICOLON:
		return ";"
	case TOKEN_DOLLAR:
		return "$"
	default:
		return "UNKNOWN"
	}
}
