// Package parser builds a Config or Sweep tree (pkg/ast) from Hyperion
// source text. Tokenisation is delegated to pkg/lexer; this package is a
// hand-written recursive-descent/precedence-climbing parser rather than a
// participle struct-tag grammar, because the surface grammar needs two
// things struct tags cannot express: the asymmetric associativity rule of
// 4.1.2 and the INDENT/DEDENT block structure of 4.1.1. Config and Sweep
// share one expr production and one identifier production; they differ
// only in which statement kinds a block may contain.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
	"github.com/hyperion-lang/hyperion/pkg/lexer"
	"github.com/hyperion-lang/hyperion/pkg/token"
	"github.com/hyperion-lang/hyperion/pkg/transform"
)

// ParseConfig parses text as a config document.
func ParseConfig(filename, text string) (*ast.Config, error) {
	p, err := newParser(filename, text)
	if err != nil {
		return nil, err
	}
	stmts, err := parseTopLevel(p, p.parseConfigStmt)
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(token.EOF); err != nil {
		return nil, err
	}
	cfg := transform.RemoveParentheses(&ast.Config{Statements: stmts})
	return cfg, nil
}

// ParseSweep parses text as a sweep document.
func ParseSweep(filename, text string) (*ast.Sweep, error) {
	p, err := newParser(filename, text)
	if err != nil {
		return nil, err
	}
	stmts, err := parseTopLevel(p, p.parseSweepStmt)
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(token.EOF); err != nil {
		return nil, err
	}
	sw := transform.RemoveParenthesesSweep(&ast.Sweep{Statements: stmts})
	return sw, nil
}

// ParseValue parses text as a single, standalone expression, used by the
// top-level ParseValue entry point (4.7) to evaluate one literal/expression
// outside of any config or sweep document.
func ParseValue(filename, text string) (ast.Expr, error) {
	p, err := newParser(filename, text)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.EOF); err != nil {
		return nil, err
	}
	return transform.RemoveParenthesesExpr(e), nil
}

type parser struct {
	filename string
	tokens   []token.Token
	pos      int
}

func newParser(filename, text string) (*parser, error) {
	toks, err := lexer.Tokenize(filename, text)
	if err != nil {
		return nil, err
	}
	return &parser{filename: filename, tokens: toks}, nil
}

// parseTopLevel parses (item NEWLINE)* until EOF, the top-level shape of
// both a config and a sweep document.
func parseTopLevel[T any](p *parser, parseOne func() (T, error)) ([]T, error) {
	var items []T
	for !p.peekKind(token.EOF) {
		item, err := parseOne()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// parseBlock parses the body of an indented block: NEWLINE INDENT (item
// NEWLINE)+ DEDENT, the shape every `with`/`product`/`union`/`table` header
// opens onto (4.1.1).
func parseBlock[T any](p *parser, parseOne func() (T, error)) ([]T, error) {
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.INDENT); err != nil {
		return nil, err
	}
	var items []T
	for {
		item, err := parseOne()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
		if p.peekKind(token.DEDENT) {
			p.advance()
			break
		}
	}
	return items, nil
}

// ---- statements -------------------------------------------------------------

// parseImportIncludeWith recognises the three statement kinds common to
// both Config and Sweep blocks. body is how the caller parses the
// statements of a nested `with` block: a plain Config only ever nests
// config statements, a Sweep nests full sweep statements.
func (p *parser) parseImportIncludeWith(body func() (ast.SweepStmt, error)) (ast.SweepStmt, bool, error) {
	switch {
	case p.peekKeyword("import"):
		p.advance()
		ns, err := p.parseNamespace()
		if err != nil {
			return nil, false, err
		}
		return &ast.ImportStmt{Namespace: ns}, true, nil

	case p.peekKeyword("include"):
		p.advance()
		tok, err := p.expect(token.STRING)
		if err != nil {
			return nil, false, err
		}
		return &ast.IncludeStmt{Path: tok.Text}, true, nil

	case p.peekKeyword("with"):
		p.advance()
		ns, err := p.parseNamespace()
		if err != nil {
			return nil, false, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, false, err
		}
		stmts, err := parseBlock(p, body)
		if err != nil {
			return nil, false, err
		}
		return &ast.WithStmt{Namespace: ns, Statements: stmts}, true, nil

	default:
		return nil, false, nil
	}
}

// parseConfigStmt parses one statement valid inside a plain Config:
// import, include, with (nesting only these same four kinds) or a binding.
func (p *parser) parseConfigStmt() (ast.Stmt, error) {
	stmt, ok, err := p.parseImportIncludeWith(func() (ast.SweepStmt, error) {
		s, err := p.parseConfigStmt()
		if err != nil {
			return nil, err
		}
		return s.(ast.SweepStmt), nil
	})
	if err != nil {
		return nil, err
	}
	if ok {
		return stmt.(ast.Stmt), nil
	}

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BindingStmt{Identifier: id, Expr: expr}, nil
}

// parseSweepStmt parses one statement valid inside a Sweep: the four
// config-shaped kinds, plus all, product, union and table.
func (p *parser) parseSweepStmt() (ast.SweepStmt, error) {
	stmt, ok, err := p.parseImportIncludeWith(p.parseSweepStmt)
	if err != nil {
		return nil, err
	}
	if ok {
		return stmt, nil
	}

	switch {
	case p.peekKeyword("product"):
		p.advance()
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		stmts, err := parseBlock(p, p.parseSweepStmt)
		if err != nil {
			return nil, err
		}
		return &ast.ProductStmt{Statements: stmts}, nil

	case p.peekKeyword("union"):
		p.advance()
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		stmts, err := parseBlock(p, p.parseSweepStmt)
		if err != nil {
			return nil, err
		}
		return &ast.UnionStmt{Statements: stmts}, nil

	case p.peekKeyword("table"):
		p.advance()
		header, err := p.parseHeader()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		rows, err := parseBlock(p, p.parseRow)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if len(row.Exprs) != len(header.Identifiers) {
				return nil, p.errorf("table row has %d values, header declares %d", len(row.Exprs), len(header.Identifiers))
			}
		}
		return &ast.TableStmt{Header: header, Rows: rows}, nil

	default:
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		switch {
		case p.peekPunct("="):
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.BindingStmt{Identifier: id, Expr: expr}, nil

		case p.peekPunct(":"):
			p.advance()
			if err := p.expectPunct("["); err != nil {
				return nil, err
			}
			exprs, err := p.parseExprListUntil("]")
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			if len(exprs) == 0 {
				return nil, p.errorf("all statement requires at least one value")
			}
			return &ast.AllStmt{Identifier: id, Exprs: exprs}, nil

		default:
			return nil, p.errorf("expected '=' or ':' after identifier, got %s", p.peek())
		}
	}
}

func (p *parser) parseHeader() (ast.Header, error) {
	var ids []ast.Identifier
	id, err := p.parseIdentifier()
	if err != nil {
		return ast.Header{}, err
	}
	ids = append(ids, id)
	for p.peekPunct(",") {
		p.advance()
		id, err := p.parseIdentifier()
		if err != nil {
			return ast.Header{}, err
		}
		ids = append(ids, id)
	}
	return ast.Header{Identifiers: ids}, nil
}

func (p *parser) parseRow() (ast.Row, error) {
	var exprs []ast.Expr
	e, err := p.parseExpr()
	if err != nil {
		return ast.Row{}, err
	}
	exprs = append(exprs, e)
	for p.peekPunct(",") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return ast.Row{}, err
		}
		exprs = append(exprs, e)
	}
	return ast.Row{Exprs: exprs}, nil
}

// ---- identifiers and namespaces ---------------------------------------------

// parseIdentifier reads (name '/')* (name '.')* name, assembling the three
// parts of an Identifier in a single left-to-right pass (4.1.3): each name
// read is tentatively the final Name until a following '/' or '.' proves it
// was actually a Scope or Namespace segment.
func (p *parser) parseIdentifier() (ast.Identifier, error) {
	var scopePath, nsPath []string

	name, err := p.expectIdentText()
	if err != nil {
		return ast.Identifier{}, err
	}

	for p.peekPunct("/") {
		p.advance()
		scopePath = append(scopePath, name)
		name, err = p.expectIdentText()
		if err != nil {
			return ast.Identifier{}, err
		}
	}

	for p.peekPunct(".") {
		p.advance()
		nsPath = append(nsPath, name)
		name, err = p.expectIdentText()
		if err != nil {
			return ast.Identifier{}, err
		}
	}

	return ast.Identifier{
		Scope:     ast.Scope{Path: scopePath},
		Namespace: ast.Namespace{Path: nsPath},
		Name:      name,
	}, nil
}

func (p *parser) parseNamespace() (ast.Namespace, error) {
	var path []string
	name, err := p.expectIdentText()
	if err != nil {
		return ast.Namespace{}, err
	}
	path = append(path, name)
	for p.peekPunct(".") {
		p.advance()
		name, err := p.expectIdentText()
		if err != nil {
			return ast.Namespace{}, err
		}
		path = append(path, name)
	}
	return ast.Namespace{Path: path}, nil
}

// ---- expressions: precedence climbing ---------------------------------------
//
// Each parseX function is one row of the table in 3, ordered from loosest
// (lor, 13) to tightest (pow, 2); every level calls the next tighter level
// for its operands. Binary levels fold left by looping; pow folds right by
// recursing into itself on the right-hand side. not_, pos/neg/inv recurse
// into themselves to allow chaining (not not x, - -x) and otherwise fall
// through to the next tighter level.

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseLOr()
}

func (p *parser) parseLOr() (ast.Expr, error) {
	left, err := p.parseLAnd()
	if err != nil {
		return nil, err
	}
	for p.peekKeyword("or") {
		p.advance()
		right, err := p.parseLAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: ast.OpLOr, Right: right}
	}
	return left, nil
}

func (p *parser) parseLAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peekKeyword("and") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: ast.OpLAnd, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (ast.Expr, error) {
	if p.peekKeyword("not") {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Op: ast.OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		consumeTwo := false
		switch {
		case p.peekPunct("=="):
			op = ast.OpEq
		case p.peekPunct("!="):
			op = ast.OpNe
		case p.peekPunct("<="):
			op = ast.OpLe
		case p.peekPunct(">="):
			op = ast.OpGe
		case p.peekPunct("<"):
			op = ast.OpLt
		case p.peekPunct(">"):
			op = ast.OpGt
		case p.peekKeyword("in"):
			op = ast.OpIn
		case p.peekKeyword("not") && p.peekAt(1).Kind == token.IDENT && p.peekAt(1).Text == "in":
			op = ast.OpNotIn
			consumeTwo = true
		default:
			return left, nil
		}
		p.advance()
		if consumeTwo {
			p.advance()
		}
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseBitOr() (ast.Expr, error) {
	left, err := p.parseBitXor()
	if err != nil {
		return nil, err
	}
	for p.peekPunct("|") {
		p.advance()
		right, err := p.parseBitXor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: ast.OpOr, Right: right}
	}
	return left, nil
}

func (p *parser) parseBitXor() (ast.Expr, error) {
	left, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	for p.peekPunct("^") {
		p.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: ast.OpXor, Right: right}
	}
	return left, nil
}

func (p *parser) parseBitAnd() (ast.Expr, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.peekPunct("&") {
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: ast.OpAnd, Right: right}
	}
	return left, nil
}

func (p *parser) parseShift() (ast.Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch {
		case p.peekPunct("<<"):
			op = ast.OpLShift
		case p.peekPunct(">>"):
			op = ast.OpRShift
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseAddSub() (ast.Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch {
		case p.peekPunct("+"):
			op = ast.OpAdd
		case p.peekPunct("-"):
			op = ast.OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseMulDiv() (ast.Expr, error) {
	left, err := p.parseUnaryArith()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch {
		case p.peekPunct("*"):
			op = ast.OpMul
		case p.peekPunct("/"):
			op = ast.OpTrueDiv
		case p.peekPunct("//"):
			op = ast.OpFloorDiv
		case p.peekPunct("%"):
			op = ast.OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnaryArith()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseUnaryArith() (ast.Expr, error) {
	var op ast.Operator
	switch {
	case p.peekPunct("+"):
		op = ast.OpPos
	case p.peekPunct("-"):
		op = ast.OpNeg
	case p.peekPunct("~"):
		op = ast.OpInv
	default:
		return p.parsePow()
	}
	p.advance()
	operand, err := p.parseUnaryArith()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOpExpr{Op: op, Operand: operand}, nil
}

func (p *parser) parsePow() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peekPunct("**") {
		p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOpExpr{Left: left, Op: ast.OpPow, Right: right}, nil
	}
	return left, nil
}

// ---- primaries ---------------------------------------------------------------

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.IDENT && tok.Text == "None":
		p.advance()
		return &ast.NullLit{}, nil

	case tok.Kind == token.IDENT && tok.Text == "True":
		p.advance()
		return &ast.BoolLit{Value: true}, nil

	case tok.Kind == token.IDENT && tok.Text == "False":
		p.advance()
		return &ast.BoolLit{Value: false}, nil

	case tok.Kind == token.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &herrors.ParseError{Pos: p.posOf(tok), Message: "invalid integer literal: " + tok.Text}
		}
		return &ast.IntLit{Value: v}, nil

	case tok.Kind == token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &herrors.ParseError{Pos: p.posOf(tok), Message: "invalid float literal: " + tok.Text}
		}
		return &ast.FloatLit{Value: v}, nil

	case tok.Kind == token.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Text}, nil

	case p.peekPunct("%"):
		p.advance()
		name, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		return &ast.MacroExpr{Name: name}, nil

	case p.peekPunct("@"):
		p.advance()
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.peekPunct("(") {
			p.advance()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return &ast.CallExpr{Identifier: id, Arguments: args}, nil
		}
		return &ast.RefExpr{Identifier: id}, nil

	case p.peekPunct("("):
		return p.parseParenOrTuple()

	case p.peekPunct("["):
		p.advance()
		items, err := p.parseExprListUntil("]")
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return &ast.ListExpr{Items: items}, nil

	case p.peekPunct("{"):
		p.advance()
		items, err := p.parseDictItems()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		return &ast.DictExpr{Items: items}, nil

	default:
		return nil, p.errorf("unexpected token %s", tok)
	}
}

func (p *parser) parseParenOrTuple() (ast.Expr, error) {
	p.advance() // '('
	if p.peekPunct(")") {
		p.advance()
		return &ast.TupleExpr{}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.peekPunct(",") {
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: first}, nil
	}

	items := []ast.Expr{first}
	for p.peekPunct(",") {
		p.advance()
		if p.peekPunct(")") {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.TupleExpr{Items: items}, nil
}

func (p *parser) parseArguments() ([]ast.Argument, error) {
	var args []ast.Argument
	if p.peekPunct(")") {
		return args, nil
	}
	for {
		name, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Argument{Name: name, Value: val})
		if p.peekPunct(",") {
			p.advance()
			if p.peekPunct(")") {
				break
			}
			continue
		}
		break
	}
	return args, nil
}

func (p *parser) parseExprListUntil(closer string) ([]ast.Expr, error) {
	var items []ast.Expr
	if p.peekPunct(closer) {
		return items, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		if p.peekPunct(",") {
			p.advance()
			if p.peekPunct(closer) {
				break
			}
			continue
		}
		break
	}
	return items, nil
}

func (p *parser) parseDictItems() ([]ast.DictItem, error) {
	var items []ast.DictItem
	if p.peekPunct("}") {
		return items, nil
	}
	for {
		k, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.DictItem{Key: k, Value: v})
		if p.peekPunct(",") {
			p.advance()
			if p.peekPunct("}") {
				break
			}
			continue
		}
		break
	}
	return items, nil
}

// ---- token-stream plumbing ---------------------------------------------------

func (p *parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) peekKind(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *parser) peekPunct(text string) bool {
	t := p.peek()
	return t.Kind == token.PUNCT && t.Text == text
}

func (p *parser) peekKeyword(word string) bool {
	t := p.peek()
	return t.Kind == token.IDENT && t.Text == word
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if !p.peekKind(k) {
		return token.Token{}, p.errorf("expected %s, got %s", k, p.peek())
	}
	return p.advance(), nil
}

func (p *parser) expectKind(k token.Kind) error {
	_, err := p.expect(k)
	return err
}

func (p *parser) expectPunct(text string) error {
	if !p.peekPunct(text) {
		return p.errorf("expected %q, got %s", text, p.peek())
	}
	p.advance()
	return nil
}

func (p *parser) expectNewline() error {
	return p.expectKind(token.NEWLINE)
}

func (p *parser) expectIdentText() (string, error) {
	if p.peek().Kind != token.IDENT {
		return "", p.errorf("expected a name, got %s", p.peek())
	}
	return p.advance().Text, nil
}

func (p *parser) posOf(t token.Token) herrors.Position {
	return herrors.Position{Filename: p.filename, Offset: t.Offset, Line: t.Line, Column: t.Column}
}

func (p *parser) errorf(format string, args ...any) error {
	return &herrors.ParseError{Pos: p.posOf(p.peek()), Message: fmt.Sprintf(format, args...)}
}
