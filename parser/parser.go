package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/parser/lexer"
	"github.com/pattyshack/ershov/parser/token"
)

var (
	binaryOperators = map[token.SymbolId]ast.BinaryOperator{
		token.AddToken: ast.Add,
		token.SubToken: ast.Sub,
		token.MulToken: ast.Mul,
		token.DivToken: ast.Div,
	}

	// Higher binds tighter.  All binary operators are left associative.
	precedences = map[ast.BinaryOperator]int{
		ast.Add: 1,
		ast.Sub: 1,
		ast.Mul: 2,
		ast.Div: 2,
	}
)

// Nesting bound used when the caller does not provide one.
const DefaultMaxNesting = 4096

type parser struct {
	lexer      token.Lexer
	maxNesting int
	emitter    *parseutil.Emitter
}

func newParser(
	reader parseutil.BufferedByteLocationReader,
	maxNesting int,
	emitter *parseutil.Emitter,
) *parser {
	if maxNesting <= 0 {
		maxNesting = DefaultMaxNesting
	}

	return &parser{
		lexer:      lexer.NewLexer(reader),
		maxNesting: maxNesting,
		emitter:    emitter,
	}
}

// Returns the next non-empty line's tokens.  The returned error is io.EOF
// once the input is exhausted; the final line may still have tokens.
func (parser *parser) readLine() ([]*token.TokenValue, error) {
	result := []*token.TokenValue{}
	for {
		tok, err := parser.lexer.Next()
		if err != nil {
			return result, err
		}

		if tok.Id() == token.NewlinesToken {
			if len(result) == 0 {
				continue
			}
			return result, nil
		}

		value, ok := tok.(*token.TokenValue)
		if !ok {
			return result, parseutil.NewLocationError(
				tok.Loc(),
				"unexpected token %s",
				tok.Id())
		}
		result = append(result, value)
	}
}

func (parser *parser) parse() []ast.Expression {
	result := []ast.Expression{}
	for {
		segment, err := parser.readLine()
		if err != nil && err != io.EOF {
			// The lexer cannot recover from malformed input.
			parser.emitter.EmitErrors(err)
			return result
		}

		if len(segment) > 0 {
			expr, parseErr := parseLine(
				segment,
				parser.lexer.CurrentLocation(),
				parser.maxNesting)
			if parseErr != nil {
				parser.emitter.EmitErrors(parseErr)
			} else {
				result = append(result, expr)
			}
		}

		if err == io.EOF {
			return result
		}
	}
}

// Parses one expression per non-empty line.  Lines with syntax errors are
// reported and skipped.  Parsing stops at the first lex error.
//
// Operator operands and parenthesized groups each count as one nesting
// level; lines nested deeper than maxNesting are rejected.  A non-positive
// maxNesting selects DefaultMaxNesting.
func Parse(
	reader parseutil.BufferedByteLocationReader,
	maxNesting int,
	emitter *parseutil.Emitter,
) []ast.Expression {
	parser := newParser(reader, maxNesting, emitter)
	return parser.parse()
}

type lineParser struct {
	tokens []*token.TokenValue
	pos    int
	end    parseutil.Location

	maxNesting int
	nesting    int
}

func parseLine(
	tokens []*token.TokenValue,
	end parseutil.Location,
	maxNesting int,
) (
	ast.Expression,
	error,
) {
	line := &lineParser{
		tokens:     tokens,
		end:        end,
		maxNesting: maxNesting,
	}

	expr, err := line.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if line.pos < len(line.tokens) {
		tok := line.tokens[line.pos]
		return nil, parseutil.NewLocationError(
			tok.Loc(),
			"syntax error: unexpected %s (%s) after expression",
			tok.Id(),
			tok.Value)
	}

	return expr, nil
}

func (line *lineParser) peek() *token.TokenValue {
	if line.pos < len(line.tokens) {
		return line.tokens[line.pos]
	}
	return nil
}

func (line *lineParser) next() *token.TokenValue {
	tok := line.peek()
	if tok != nil {
		line.pos++
	}
	return tok
}

func (line *lineParser) unexpectedEnd() error {
	return parseutil.NewLocationError(
		line.end,
		"syntax error: unexpected end of line")
}

// Precedence climbing.  Only operators which bind tighter than
// minPrecedence are consumed.
func (line *lineParser) parseExpression(
	minPrecedence int,
) (
	ast.Expression,
	error,
) {
	if line.nesting >= line.maxNesting {
		loc := line.end
		tok := line.peek()
		if tok != nil {
			loc = tok.Loc()
		}

		return nil, parseutil.NewLocationError(
			loc,
			"expression nesting exceeds %d levels",
			line.maxNesting)
	}

	line.nesting++
	defer func() { line.nesting-- }()

	left, err := line.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok := line.peek()
		if tok == nil {
			return left, nil
		}

		op, ok := binaryOperators[tok.SymbolId]
		if !ok || precedences[op] <= minPrecedence {
			return left, nil
		}
		line.next()

		right, err := line.parseExpression(precedences[op])
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{
			StartEndPos: parseutil.NewStartEndPos(left.Loc(), right.End()),
			Operator:    op,
			Left:        left,
			Right:       right,
		}
	}
}

func (line *lineParser) parsePrimary() (ast.Expression, error) {
	tok := line.next()
	if tok == nil {
		return nil, line.unexpectedEnd()
	}

	switch tok.SymbolId {
	case token.IdentifierToken:
		return &ast.Identifier{
			StartEndPos: tok.StartEndPos,
			Name:        tok.Value,
		}, nil
	case token.IntegerLiteralToken:
		return parseInt(tok, tok.StartEndPos, false)
	case token.FloatLiteralToken:
		return parseFloat(tok, tok.StartEndPos, false)
	case token.StringLiteralToken:
		value, err := strconv.Unquote(tok.Value)
		if err != nil {
			value = tok.Value
		}
		return &ast.StringLiteral{
			StartEndPos: tok.StartEndPos,
			Value:       value,
		}, nil
	case token.SubToken:
		// Only numeric literals may be negated.
		literal := line.next()
		if literal == nil {
			return nil, line.unexpectedEnd()
		}

		pos := parseutil.NewStartEndPos(tok.StartPos, literal.EndPos)
		switch literal.SymbolId {
		case token.IntegerLiteralToken:
			return parseInt(literal, pos, true)
		case token.FloatLiteralToken:
			return parseFloat(literal, pos, true)
		}

		return nil, parseutil.NewLocationError(
			literal.Loc(),
			"syntax error: only numeric literals may be negated")
	case token.LparenToken:
		expr, err := line.parseExpression(0)
		if err != nil {
			return nil, err
		}

		rparen := line.next()
		if rparen == nil {
			return nil, line.unexpectedEnd()
		}

		if rparen.SymbolId != token.RparenToken {
			return nil, parseutil.NewLocationError(
				rparen.Loc(),
				"syntax error: expecting RPAREN, found %s (%s)",
				rparen.Id(),
				rparen.Value)
		}

		return expr, nil
	}

	return nil, parseutil.NewLocationError(
		tok.Loc(),
		"syntax error: unexpected %s (%s)",
		tok.Id(),
		tok.Value)
}

func parseInt(
	tok *token.TokenValue,
	pos parseutil.StartEndPos,
	negate bool,
) (
	ast.Expression,
	error,
) {
	digits, base := integerDigits(tok.Value)
	if negate {
		digits = "-" + digits
	}

	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return nil, parseutil.NewLocationError(
			tok.Loc(),
			"invalid integer literal (%s): %w",
			tok.Value,
			err)
	}

	return &ast.IntLiteral{
		StartEndPos: pos,
		Value:       value,
	}, nil
}

// Splits an integer literal into its digits and base.  Only 0x, 0o and 0b
// prefixes select a non-decimal base; leading zeros are decimal (010 is 10).
func integerDigits(text string) (string, int) {
	text = strings.ReplaceAll(text, "_", "")

	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return text[2:], 16
		case 'o', 'O':
			return text[2:], 8
		case 'b', 'B':
			return text[2:], 2
		}
	}

	trimmed := strings.TrimLeft(text, "0")
	if trimmed == "" {
		return "0", 10
	}
	return trimmed, 10
}

func parseFloat(
	tok *token.TokenValue,
	pos parseutil.StartEndPos,
	negate bool,
) (
	ast.Expression,
	error,
) {
	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, parseutil.NewLocationError(
			tok.Loc(),
			"invalid float literal (%s): %w",
			tok.Value,
			err)
	}

	if negate {
		value = -value
	}

	return &ast.FloatLiteral{
		StartEndPos: pos,
		Value:       value,
	}, nil
}
