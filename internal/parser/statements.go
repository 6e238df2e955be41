package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/token"
)

// parseStatement parses one statement with curToken at its first token,
// leaving curToken on the statement's last token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.NEXT:
		return &ast.NextStatement{Token: p.curToken}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.END) || p.peekTokenIs(token.EOF) {
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

// parseBlockUntil parses statements until one of the terminator keywords,
// leaving curToken on the terminator. Separators between statements are
// newlines or semicolons.
func (p *Parser) parseBlockUntil(terminators ...token.TokenType) *ast.Block {
	block := &ast.Block{Token: p.curToken}

	isTerminator := func(t token.TokenType) bool {
		for _, term := range terminators {
			if t == term {
				return true
			}
		}
		return false
	}

	for !isTerminator(p.curToken.Type) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) && len(terminators) > 0 {
		p.errors = append(p.errors, newUnterminatedBlockError(p.curToken))
	}

	return block
}
