// Package compiler implements Ember's single-pass compiler: a Pratt
// (precedence-climbing) parser that emits bytecode directly as it parses,
// with no intermediate tree.
package compiler

import (
	"strconv"

	"ember/chunk"
	"ember/lexer"
	"ember/token"
	"ember/value"
)

// precedence levels, lowest to highest. Each binary operator's infix rule
// parses its right operand at one level above its own, which is what makes
// the climb left-associative.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// Compiler turns a token stream into a Chunk in a single pass, with no
// intermediate representation between source and bytecode.
type Compiler struct {
	lexer *lexer.Lexer

	previous token.Token
	current  token.Token

	chunk *chunk.Chunk

	hadError  bool
	panicMode bool
	errors    []error
}

// Compile compiles source into a Chunk. The returned bool reports success;
// on failure the Chunk is unusable.
func Compile(source string) (*chunk.Chunk, bool) {
	c, ch := compile(source)
	return ch, !c.hadError
}

// CompileWithErrors is like Compile but also returns every CompileError
// collected during panic-mode recovery, in source order.
func CompileWithErrors(source string) (*chunk.Chunk, bool, []error) {
	c, ch := compile(source)
	return ch, !c.hadError, c.errors
}

func compile(source string) (*Compiler, *chunk.Chunk) {
	sentinel := token.New(token.Error, "", 0)
	c := &Compiler{
		lexer:    lexer.New(source),
		chunk:    chunk.New(),
		previous: sentinel,
		current:  sentinel,
	}
	c.advance()
	c.expression()
	c.consume(token.Eof, "Expected end of expression.")
	c.end()
	return c, c.chunk
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {prefix: (*Compiler).grouping},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: precTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: precFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: precFactor},
		token.Bang:         {prefix: (*Compiler).unary},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: precEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: precComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: precComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: precComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: precComparison},
		token.Number:       {prefix: (*Compiler).number},
		token.String:       {prefix: (*Compiler).string},
		token.False:        {prefix: (*Compiler).literal},
		token.True:         {prefix: (*Compiler).literal},
		token.Null:         {prefix: (*Compiler).literal},
	}
}

func ruleFor(kind token.Kind) parseRule {
	return rules[kind]
}

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefix := ruleFor(c.previous.Kind).prefix
	if prefix == nil {
		c.errorAtPrevious("Expected expression.")
		return
	}
	prefix(c)

	for prec <= ruleFor(c.current.Kind).precedence {
		c.advance()
		infix := ruleFor(c.previous.Kind).infix
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "Expected ')' after expression.")
}

func (c *Compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *Compiler) string() {
	c.emitConstant(value.String(c.previous.Lexeme))
}

func (c *Compiler) literal() {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(chunk.False)
	case token.True:
		c.emitOp(chunk.True)
	case token.Null:
		c.emitOp(chunk.Null)
	}
}

func (c *Compiler) unary() {
	op := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch op {
	case token.Minus:
		c.emitOp(chunk.Negate)
	case token.Bang:
		c.emitOp(chunk.Not)
	}
}

func (c *Compiler) binary() {
	op := c.previous.Kind
	rule := ruleFor(op)
	c.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.Plus:
		c.emitOp(chunk.Add)
	case token.Minus:
		c.emitOp(chunk.Subtract)
	case token.Star:
		c.emitOp(chunk.Multiply)
	case token.Slash:
		c.emitOp(chunk.Divide)
	case token.EqualEqual:
		c.emitOp(chunk.Equal)
	case token.BangEqual:
		c.emitOp(chunk.Equal)
		c.emitOp(chunk.Not)
	case token.Greater:
		c.emitOp(chunk.Greater)
	case token.GreaterEqual:
		c.emitOp(chunk.Less)
		c.emitOp(chunk.Not)
	case token.Less:
		c.emitOp(chunk.Less)
	case token.LessEqual:
		c.emitOp(chunk.Greater)
		c.emitOp(chunk.Not)
	}
}

// token handling

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lexer.Next()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// bytecode emission

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.Opcode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitConstant(v value.Value) {
	index, err := c.chunk.AddConstant(v)
	if err != nil {
		c.errorAtPrevious("Too many constants in one chunk.")
		return
	}
	c.emitOp(chunk.Constant)
	c.emitByte(byte(index))
}

func (c *Compiler) end() {
	c.emitOp(chunk.Return)
}

// error handling

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errors = append(c.errors, &CompileError{Line: tok.Line, Kind: tok.Kind, Lexeme: tok.Lexeme, Message: message})
}
