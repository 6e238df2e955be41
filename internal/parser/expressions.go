package parser

import (
	"fmt"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/config"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/token"
)

func newUnterminatedBlockError(tok token.Token) *diagnostics.Diagnostic {
	return diagnostics.NewError(diagnostics.ErrP001, tok, "unexpected end of input, expected end")
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > config.MaxParseDepth {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		p.skipToStatementBoundary()
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseVariableReference() ast.Expression {
	return &ast.VariableReference{Token: p.curToken, Name: p.curToken.Lexeme}
}

func (p *Parser) parseConstReference() ast.Expression {
	return &ast.ConstReference{Token: p.curToken, Name: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("malformed integer literal %q", p.curToken.Lexeme)))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("malformed float literal %q", p.curToken.Lexeme)))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseSymbolLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.SymbolLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expression := &ast.UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expression := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseEqualityExpression(left ast.Expression) ast.Expression {
	expression := &ast.EqualityExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	p.nextToken()
	expression.Right = p.parseExpression(EQUALS)
	return expression
}

func (p *Parser) parseRelationalExpression(left ast.Expression) ast.Expression {
	expression := &ast.RelationalExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	p.nextToken()
	expression.Right = p.parseExpression(LESSGREATER)
	return expression
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	expression := &ast.LogicalExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseSimpleAssignment(left ast.Expression) ast.Expression {
	var name string
	switch target := left.(type) {
	case *ast.VariableReference:
		name = target.Name
	case *ast.ConstReference:
		name = target.Name
	default:
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP005, p.curToken,
			"assignment target must be an identifier or constant"))
		return nil
	}

	expression := &ast.SimpleAssignment{Token: p.curToken, Name: name}
	p.nextToken()
	// Right-associative: a = b = 1 assigns both.
	expression.Value = p.parseExpression(ASSIGNMENT - 1)
	return expression
}

func (p *Parser) parseMatchAssign(left ast.Expression) ast.Expression {
	expression := &ast.MatchAssign{Token: p.curToken, Pattern: left}
	p.nextToken()
	expression.Value = p.parseExpression(ASSIGNMENT - 1)
	return expression
}

// parseCompoundAssignment desugars a <op>= x into a = a <op> x.
func (p *Parser) parseCompoundAssignment(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.VariableReference)
	if !ok {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP005, p.curToken,
			"assignment target must be an identifier"))
		return nil
	}

	opToken := p.curToken
	op := opToken.Lexeme[:len(opToken.Lexeme)-1] // strip the trailing '='

	p.nextToken()
	right := p.parseExpression(ASSIGNMENT - 1)
	if right == nil {
		return nil
	}

	read := &ast.VariableReference{Token: name.Token, Name: name.Name}
	var value ast.Expression
	switch op {
	case "&&", "||":
		value = &ast.LogicalExpression{Token: opToken, Operator: op, Left: read, Right: right}
	default:
		value = &ast.BinaryExpression{Token: opToken, Operator: op, Left: read, Right: right}
	}

	return &ast.SimpleAssignment{Token: opToken, Name: name.Name, Value: value}
}

// parseExpressionList parses comma-separated expressions up to the closing
// token, leaving curToken on the closer. Newlines inside are insignificant.
func (p *Parser) parseExpressionList(closer token.TokenType) *ast.ExpressionList {
	list := &ast.ExpressionList{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(closer) {
		p.nextToken()
		return list
	}

	p.nextToken()
	p.skipNewlines()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list.Expressions = append(list.Expressions, first)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.skipPeekNewlines()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil
		}
		list.Expressions = append(list.Expressions, next)
	}

	p.skipPeekNewlines()
	if !p.expectPeek(closer) {
		return nil
	}

	return list
}

func (p *Parser) parseListLiteral() ast.Expression {
	lit := &ast.ListLiteral{Token: p.curToken}
	lit.Elements = p.parseExpressionList(token.RBRACKET)
	if lit.Elements == nil {
		return nil
	}
	return lit
}

func (p *Parser) parseMapLiteral() ast.Expression {
	lit := &ast.MapLiteral{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return lit
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		pair := &ast.MapPair{Token: p.curToken, Key: p.curToken.Lexeme}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		p.skipNewlines()
		pair.Value = p.parseExpression(LOWEST)
		if pair.Value == nil {
			return nil
		}
		lit.Pairs = append(lit.Pairs, pair)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

func (p *Parser) parseSplatPattern() ast.Expression {
	sp := &ast.SplatPattern{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	sp.Name = p.curToken.Lexeme
	return sp
}

// parseInterpolationExpression parses <expr> in pattern position. The
// inner expression is parsed at LESSGREATER so the closing '>' is not
// taken as a relational operator.
func (p *Parser) parseInterpolationExpression() ast.Expression {
	ie := &ast.InterpolationExpression{Token: p.curToken}
	p.nextToken()
	ie.Expression = p.parseExpression(LESSGREATER)
	if ie.Expression == nil {
		return nil
	}
	if !p.expectPeek(token.GT) {
		return nil
	}
	return ie
}

func (p *Parser) parseFunctionCall(callee ast.Expression) ast.Expression {
	call := &ast.FunctionCall{Token: p.curToken, Callee: callee}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	if call.Arguments == nil {
		return nil
	}
	return call
}

func (p *Parser) parseMemberExpression(receiver ast.Expression) ast.Expression {
	me := &ast.MemberExpression{Token: p.curToken, Receiver: receiver}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	me.Member = p.curToken.Lexeme
	return me
}

func (p *Parser) parseFunctionDefinition() ast.Expression {
	fd := &ast.FunctionDefinition{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fd.Name = p.curToken.Lexeme

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParameters()
	if params == nil {
		return nil
	}
	fd.Parameters = params

	p.nextToken()
	fd.Body = p.parseBlockUntil(token.END)
	return fd
}

// parseParameters parses a formal parameter list with curToken on '(',
// leaving curToken on ')'. At most one splat parameter is allowed, and
// only in the last position.
func (p *Parser) parseParameters() []*ast.Parameter {
	params := []*ast.Parameter{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()
		param := &ast.Parameter{Token: p.curToken}
		if p.curTokenIs(token.ASTERISK) {
			param.Splat = true
			if !p.expectPeek(token.IDENT) {
				return nil
			}
		}
		if !p.curTokenIs(token.IDENT) {
			p.errors = append(p.errors, diagnostics.NewError(
				diagnostics.ErrP001, p.curToken,
				fmt.Sprintf("expected parameter name, got %s", p.curToken.Type)))
			return nil
		}
		param.Name = p.curToken.Lexeme
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		if param.Splat {
			p.errors = append(p.errors, diagnostics.NewError(
				diagnostics.ErrP001, p.curToken,
				"splat parameter must be last"))
			return nil
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseDoBlock() ast.Expression {
	doTok := p.curToken
	p.nextToken()
	block := p.parseBlockUntil(token.END)
	block.Token = doTok
	return block
}

func (p *Parser) parseUnlessExpression() ast.Expression {
	ue := &ast.UnlessExpression{Token: p.curToken}

	p.nextToken()
	ue.Condition = p.parseExpression(LOWEST)
	if ue.Condition == nil {
		return nil
	}

	p.nextToken()
	ue.Consequence = p.parseBlockUntil(token.ELSE, token.END)

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		ue.Alternative = p.parseBlockUntil(token.END)
	}

	return ue
}

func (p *Parser) parseWhileExpression() ast.Expression {
	we := &ast.WhileExpression{Token: p.curToken, Until: p.curTokenIs(token.UNTIL)}

	p.nextToken()
	we.Condition = p.parseExpression(LOWEST)
	if we.Condition == nil {
		return nil
	}

	p.nextToken()
	we.Body = p.parseBlockUntil(token.END)
	return we
}

func (p *Parser) parseUnsupportedKeyword() ast.Expression {
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP004,
		p.curToken,
		fmt.Sprintf("%s has no semantics in this interpreter", p.curToken.Lexeme),
	))
	p.skipToStatementBoundary()
	return nil
}
