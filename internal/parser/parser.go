package parser

import (
	"fmt"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/token"
)

// Operator precedence levels, lowest first.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = =: += -= *= /= %= &&= ||=
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(x) x.y
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGNMENT,
	token.MATCH:           ASSIGNMENT,
	token.PLUS_ASSIGN:     ASSIGNMENT,
	token.MINUS_ASSIGN:    ASSIGNMENT,
	token.ASTERISK_ASSIGN: ASSIGNMENT,
	token.SLASH_ASSIGN:    ASSIGNMENT,
	token.PERCENT_ASSIGN:  ASSIGNMENT,
	token.AND_ASSIGN:      ASSIGNMENT,
	token.OR_ASSIGN:       ASSIGNMENT,
	token.OR:              LOGIC_OR,
	token.AND:             LOGIC_AND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.LT:              LESSGREATER,
	token.GT:              LESSGREATER,
	token.LT_EQ:           LESSGREATER,
	token.GT_EQ:           LESSGREATER,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.LPAREN:          CALL,
	token.DOT:             CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.Diagnostic

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth int
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseVariableReference)
	p.registerPrefix(token.CONST, p.parseConstReference)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.SYMBOL, p.parseSymbolLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)
	p.registerPrefix(token.LBRACE, p.parseMapLiteral)
	p.registerPrefix(token.ASTERISK, p.parseSplatPattern)
	p.registerPrefix(token.LT, p.parseInterpolationExpression)
	p.registerPrefix(token.DEF, p.parseFunctionDefinition)
	p.registerPrefix(token.DO, p.parseDoBlock)
	p.registerPrefix(token.UNLESS, p.parseUnlessExpression)
	p.registerPrefix(token.WHILE, p.parseWhileExpression)
	p.registerPrefix(token.UNTIL, p.parseWhileExpression)

	// Tokens the lexer knows but the execution core defines no semantics
	// for. Parsing one is an error, not a crash.
	p.registerPrefix(token.MODULE, p.parseUnsupportedKeyword)
	p.registerPrefix(token.REQUIRE, p.parseUnsupportedKeyword)
	p.registerPrefix(token.INCLUDE, p.parseUnsupportedKeyword)
	p.registerPrefix(token.WHEN, p.parseUnsupportedKeyword)
	p.registerPrefix(token.SELF, p.parseUnsupportedKeyword)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.EQ, p.parseEqualityExpression)
	p.registerInfix(token.NOT_EQ, p.parseEqualityExpression)
	p.registerInfix(token.LT, p.parseRelationalExpression)
	p.registerInfix(token.GT, p.parseRelationalExpression)
	p.registerInfix(token.LT_EQ, p.parseRelationalExpression)
	p.registerInfix(token.GT_EQ, p.parseRelationalExpression)
	p.registerInfix(token.AND, p.parseLogicalExpression)
	p.registerInfix(token.OR, p.parseLogicalExpression)
	p.registerInfix(token.ASSIGN, p.parseSimpleAssignment)
	p.registerInfix(token.MATCH, p.parseMatchAssign)
	p.registerInfix(token.PLUS_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.MINUS_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.ASTERISK_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.SLASH_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.PERCENT_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.AND_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.OR_ASSIGN, p.parseCompoundAssignment)
	p.registerInfix(token.LPAREN, p.parseFunctionCall)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) Errors() []*diagnostics.Diagnostic {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		fmt.Sprintf("expected %s, got %s", t, p.peekToken.Type),
	))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP002,
		tok,
		fmt.Sprintf("unexpected token %s", tok.Type),
	))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// skipToStatementBoundary advances past the rest of the current statement
// to avoid a cascade of follow-on errors.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.NEWLINE) &&
		!p.curTokenIs(token.SEMICOLON) &&
		!p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// skipNewlines advances while the current token is a newline. Used inside
// bracketed constructs where newlines are insignificant.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}
