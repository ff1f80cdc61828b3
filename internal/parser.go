package internal

type callStack struct {
	function  string
	loopCount int
}

// parser stores parser data
type parser struct {
	current int

	cls        []*callStack
	classDepth int

	state *interpreterState
}

func (p *parser) getParsingContext() *callStack {
	return p.cls[len(p.cls)-1]
}

func (p *parser) enterFunction(name string) {
	p.cls = append(p.cls, &callStack{
		function:  name,
		loopCount: 0,
	})
}

func (p *parser) leaveFunction() {
	p.cls = p.cls[:len(p.cls)-1]
}

func (p *parser) enterLoop() {
	p.getParsingContext().loopCount++
}

func (p *parser) leaveLoop() {
	p.getParsingContext().loopCount--
}

func (p *parser) insideLoop() bool {
	return p.getParsingContext().loopCount != 0
}

const maxFunctionParams = 255

func (p *parser) parse() {
	p.cls = make([]*callStack, 0)
	p.enterFunction("")
	defer p.leaveFunction()
	for !p.isAtEnd() {
		// A declaration that failed to parse comes back nil,
		// it's left out and the state keeps the error
		if st := p.declaration(); st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) declaration() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			p.state.log.WithField("line", p.peek().line).Debug("parser synchronized after syntax error")
			s = nil
		}
	}()
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn(errExpectedFunctionName)
	}
	if p.match(tkVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)
	p.consume(tkLeftBrace, errExpectedClassBrace)

	p.classDepth++
	defer func() { p.classDepth-- }()

	var methods []*fnStmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		methods = append(methods, p.fn(errExpectedMethodName))
	}

	p.consume(tkRightBrace, errUnclosedClass)

	return &classStmt{
		name:    name,
		methods: methods,
	}
}

func (p *parser) fn(nameErr error) *fnStmt {
	name := p.consume(tkIdentifier, nameErr)

	p.enterFunction(name.lexeme)
	defer p.leaveFunction()

	p.consume(tkLeftParen, errExpectedNameParen)

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.setError(errMaxParameters, p.peek())
			}
			params = append(params, p.consume(tkIdentifier, errExpectedParamName))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errExpectedParamsParen)

	p.consume(tkLeftBrace, errExpectedBodyBrace)
	body := p.block()

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(tkIdentifier, errExpectedIdentifier)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}

	p.consume(tkSemicolon, errExpectedVarSemicolon)
	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars into an optional block holding the initializer
// and a while loop whose body runs the increment last
func (p *parser) forLoop() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedForParen)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDeclaration()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedLoopSemicolon)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errExpectedForClausesParen)

	body := p.loopBody()

	if inc != nil {
		body = &blockStmt{
			stmts: []stmt{body, &exprStmt{expression: inc}},
		}
	}
	if cond == nil {
		cond = &literalExpr{value: loxBool(true)}
	}
	body = &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
	if init != nil {
		body = &blockStmt{
			stmts: []stmt{init, body},
		}
	}
	return body
}

func (p *parser) ifStmt() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedIfParen)
	cond := p.expression()
	p.consume(tkRightParen, errExpectedCondParen)

	then := p.statement()
	var otherwise stmt
	if p.match(tkElse) {
		otherwise = p.statement()
	}

	return &ifStmt{
		keyword:    keyword,
		condition:  cond,
		thenBranch: then,
		elseBranch: otherwise,
	}
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedValueSemicolon)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if len(p.cls) == 1 {
		p.state.setError(errReturnTopLevel, keyword)
	}
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedReturnSemicolon)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.state.setError(errOnlyAllowedInsideLoop, keyword)
	}
	p.consume(tkSemicolon, errExpectedBreakSemicolon)
	return &breakStmt{
		keyword: keyword,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedWhileParen)
	cond := p.expression()
	p.consume(tkRightParen, errExpectedCondParen)

	body := p.loopBody()

	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) loopBody() stmt {
	p.enterLoop()
	defer p.leaveLoop()
	return p.statement()
}

func (p *parser) block() []stmt {
	var stmts []stmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightBrace, errUnclosedBlock)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, errExpectedExprSemicolon)
	return &exprStmt{expression: expr}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *variableExpr:
			return &assignExpr{
				name:  target.name,
				value: value,
			}
		case *getExpr:
			return &setExpr{
				object: target.object,
				name:   target.name,
				value:  value,
			}
		}

		p.state.setError(errInvalidAssignment, equals)
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(tkEqualEqual, tkBangEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.term()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) term() expr {
	expr := p.factor()
	for p.match(tkPlus, tkMinus) {
		operator := p.previous()
		right := p.factor()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) factor() expr {
	expr := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous()
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.setError(errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, errExpectedArgsParen)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: loxBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: loxBool(true)}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nilValue}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: literalValue(p.previous().literal)}
	}
	if p.match(tkThis) {
		keyword := p.previous()
		if p.classDepth == 0 {
			p.state.setError(errThisOutsideClass, keyword)
		}
		return &thisExpr{keyword: keyword}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectedExpression, p.peek())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

// synchronize discards tokens until a statement boundary
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}
		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn, tkBreak:
			return
		}
		p.advance()
	}
}
