package parser

import (
	"fmt"
)

// Operator precedence levels, lowest binds loosest
const (
	PREC_LOWEST  = iota
	PREC_ASSIGN  // <- <<- =
	PREC_ADD     // + -
	PREC_MUL     // * /
	PREC_RANGE   // :
	PREC_UNARY   // -x +x
	PREC_POSTFIX // x[i] x[[i]] x$f f(...)
)

// precedences maps token types to their infix precedence
var precedences = map[TokenType]int{
	TOKEN_LEFT_ASSIGN:  PREC_ASSIGN,
	TOKEN_SUPER_ASSIGN: PREC_ASSIGN,
	TOKEN_ASSIGN:       PREC_ASSIGN,
	TOKEN_PLUS:         PREC_ADD,
	TOKEN_MINUS:        PREC_ADD,
	TOKEN_STAR:         PREC_MUL,
	TOKEN_SLASH:        PREC_MUL,
	TOKEN_COLON:        PREC_RANGE,
	TOKEN_LPAREN:       PREC_POSTFIX,
	TOKEN_LBRACKET:     PREC_POSTFIX,
	TOKEN_LBB:          PREC_POSTFIX,
	TOKEN_DOLLAR:       PREC_POSTFIX,
}

// Parser builds an AST from a token stream
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	errors    []string
}

// NewParser creates a parser for the given source text
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// prime curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns parse errors accumulated so far
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curToken.Position.Line, msg))
}

func (p *Parser) expect(t TokenType) bool {
	if p.curToken.Type == t {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %s", t, p.curToken.Type)
	return false
}

// ParseProgram parses a complete source text
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for p.curToken.Type != TOKEN_EOF {
		if p.curToken.Type == TOKEN_SEMICOLON {
			p.nextToken()
			continue
		}
		expr := p.ParseExpression(PREC_LOWEST)
		if expr != nil {
			prog.Exprs = append(prog.Exprs, expr)
		}
		if len(p.errors) > 0 {
			break
		}
	}
	return prog
}

// ParseExpression parses an expression with the given minimum precedence
func (p *Parser) ParseExpression(precedence int) Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		infixPrec, ok := precedences[p.curToken.Type]
		if !ok || infixPrec <= precedence {
			break
		}
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefix() Expr {
	switch p.curToken.Type {
	case TOKEN_NUM, TOKEN_INT, TOKEN_STRING, TOKEN_COMPLEX,
		TOKEN_NULL, TOKEN_TRUE, TOKEN_FALSE,
		TOKEN_NA, TOKEN_NA_INT, TOKEN_NA_REAL, TOKEN_NA_STR,
		TOKEN_INF, TOKEN_NAN:
		e := &LiteralExpr{Token: p.curToken}
		p.nextToken()
		return e
	case TOKEN_IDENTIFIER:
		e := &IdentifierExpr{Token: p.curToken, Name: p.curToken.Value}
		p.nextToken()
		return e
	case TOKEN_MINUS, TOKEN_PLUS:
		tok := p.curToken
		p.nextToken()
		operand := p.ParseExpression(PREC_UNARY - 1)
		if operand == nil {
			return nil
		}
		return &UnaryExpr{Token: tok, Op: tok.Value, Operand: operand}
	case TOKEN_LPAREN:
		tok := p.curToken
		p.nextToken()
		inner := p.ParseExpression(PREC_LOWEST)
		if inner == nil {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return &ParenExpr{Token: tok, Inner: inner}
	case TOKEN_LBRACE:
		return p.parseBrace()
	default:
		p.addError("unexpected token %s", p.curToken.Type)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseBrace() Expr {
	tok := p.curToken
	p.nextToken()
	brace := &BraceExpr{Token: tok}
	for p.curToken.Type != TOKEN_RBRACE && p.curToken.Type != TOKEN_EOF {
		if p.curToken.Type == TOKEN_SEMICOLON {
			p.nextToken()
			continue
		}
		expr := p.ParseExpression(PREC_LOWEST)
		if expr == nil {
			return nil
		}
		brace.Exprs = append(brace.Exprs, expr)
	}
	if !p.expect(TOKEN_RBRACE) {
		return nil
	}
	return brace
}

func (p *Parser) parseInfix(left Expr) Expr {
	switch p.curToken.Type {
	case TOKEN_LEFT_ASSIGN, TOKEN_SUPER_ASSIGN, TOKEN_ASSIGN:
		tok := p.curToken
		p.nextToken()
		// right-associative: a <- b <- c assigns c to b, then b to a
		value := p.ParseExpression(PREC_ASSIGN - 1)
		if value == nil {
			return nil
		}
		return &AssignExpr{
			Token:  tok,
			Target: left,
			Value:  value,
			Super:  tok.Type == TOKEN_SUPER_ASSIGN,
		}
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_COLON:
		tok := p.curToken
		prec := precedences[tok.Type]
		p.nextToken()
		right := p.ParseExpression(prec)
		if right == nil {
			return nil
		}
		return &BinaryExpr{Token: tok, Op: tok.Value, Left: left, Right: right}
	case TOKEN_LPAREN:
		return p.parseCall(left)
	case TOKEN_LBRACKET:
		return p.parseIndex(left, true)
	case TOKEN_LBB:
		return p.parseIndex(left, false)
	case TOKEN_DOLLAR:
		return p.parseField(left)
	default:
		p.addError("unexpected infix token %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseCall(fn Expr) Expr {
	tok := p.curToken
	p.nextToken() // consume '('
	call := &CallExpr{Token: tok, Fn: fn}
	if ident, ok := fn.(*IdentifierExpr); ok {
		call.Name = ident.Name
	}
	call.Args = p.parseArgs(TOKEN_RPAREN, false)
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseIndex(target Expr, subset bool) Expr {
	tok := p.curToken
	p.nextToken() // consume '[' or '[['
	idx := &IndexExpr{Token: tok, Target: target, Subset: subset}
	idx.Args = p.parseArgs(TOKEN_RBRACKET, true)
	if !p.expect(TOKEN_RBRACKET) {
		return nil
	}
	if !subset {
		// '[[' closes with two ']' tokens
		if !p.expect(TOKEN_RBRACKET) {
			return nil
		}
	}
	return idx
}

func (p *Parser) parseField(target Expr) Expr {
	tok := p.curToken
	p.nextToken() // consume '$'
	var field string
	switch p.curToken.Type {
	case TOKEN_IDENTIFIER:
		field = p.curToken.Value
	case TOKEN_STRING:
		field = p.curToken.Value
	default:
		p.addError("expected field name after $, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken()
	return &FieldExpr{Token: tok, Target: target, Field: field}
}

// parseArgs parses a comma-separated argument list up to the closing
// token. When allowElided is true, an empty slot (as in x[,2]) becomes
// an Arg with a nil Value.
func (p *Parser) parseArgs(closing TokenType, allowElided bool) []Arg {
	var args []Arg
	if p.curToken.Type == closing {
		return args
	}
	for {
		args = append(args, p.parseArg(closing, allowElided))
		if p.curToken.Type != TOKEN_COMMA {
			break
		}
		p.nextToken() // consume ','
		if p.curToken.Type == closing {
			// trailing elided slot: x[1,]
			if allowElided {
				args = append(args, Arg{})
			}
			break
		}
	}
	return args
}

func (p *Parser) parseArg(closing TokenType, allowElided bool) Arg {
	if allowElided && (p.curToken.Type == TOKEN_COMMA || p.curToken.Type == closing) {
		return Arg{}
	}
	var arg Arg
	if p.curToken.Type == TOKEN_IDENTIFIER && p.peekToken.Type == TOKEN_ASSIGN {
		arg.Name = p.curToken.Value
		p.nextToken() // name
		p.nextToken() // '='
	} else if p.curToken.Type == TOKEN_STRING && p.peekToken.Type == TOKEN_ASSIGN {
		arg.Name = p.curToken.Value
		p.nextToken()
		p.nextToken()
	}
	arg.Value = p.ParseExpression(PREC_LOWEST)
	return arg
}
