package lexer

import (
	"io"
	"unicode/utf8"

	"github.com/pattyshack/gt/parseutil"
	"github.com/pattyshack/gt/stringutil"

	"github.com/pattyshack/ershov/parser/token"
)

const (
	initialPeekWindowSize = 64
)

var (
	// Single byte tokens.  '/' is handled separately since it may start a
	// comment.
	operators = map[byte]token.SymbolId{
		'(': token.LparenToken,
		')': token.RparenToken,
		'+': token.AddToken,
		'-': token.SubToken, // negated literals are folded by the parser
		'*': token.MulToken,
	}
)

type lexFunc func(*RawLexer) (token.Token, error)

type RawLexer struct {
	parseutil.BufferedByteLocationReader

	// Backing storage for identifier and literal values.
	values *stringutil.InternPool
}

func NewRawLexer(
	reader parseutil.BufferedByteLocationReader,
) *RawLexer {
	return &RawLexer{
		BufferedByteLocationReader: reader,
		values:                     stringutil.NewInternPool(),
	}
}

func (lexer *RawLexer) CurrentLocation() parseutil.Location {
	return lexer.Location
}

func (lexer *RawLexer) Next() (token.Token, error) {
	peeked, err := lexer.Peek(2)
	if len(peeked) > 0 && err == io.EOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	char := peeked[0]

	symbolId, ok := operators[char]
	if ok {
		return lexer.lexOperator(symbolId, string(rune(char)))
	}

	if char == '/' {
		if len(peeked) > 1 && peeked[1] == '/' {
			return lexLineComment(lexer)
		}
		if len(peeked) > 1 && peeked[1] == '*' {
			return lexBlockComment(lexer)
		}
		return lexer.lexOperator(token.DivToken, "/")
	}

	lex, err := lexer.classify(char)
	if err != nil {
		return nil, err
	}
	return lex(lexer)
}

// Selects the variable length token lexer for the leading byte.
func (lexer *RawLexer) classify(char byte) (lexFunc, error) {
	switch {
	case 'a' <= char && char <= 'z',
		'A' <= char && char <= 'Z',
		char == '_':
		return lexIdentifier, nil
	case '0' <= char && char <= '9', char == '.':
		return lexNumber, nil
	case char == ' ' || char == '\t':
		return lexSpaces, nil
	case char == '\r' || char == '\n':
		return lexNewlines, nil
	case char == '"':
		return lexString, nil
	}

	if char < utf8.RuneSelf {
		return nil, parseutil.NewLocationError(
			lexer.Location,
			"unexpected character (%q)",
			rune(char))
	}

	peeked, _ := lexer.Peek(utf8.UTFMax)
	r, _ := utf8.DecodeRune(peeked)
	if r == utf8.RuneError {
		return nil, parseutil.NewLocationError(
			lexer.Location,
			"invalid utf8 rune")
	}

	// Non-ascii letters are identifier characters.
	return lexIdentifier, nil
}

func (lexer *RawLexer) lexOperator(
	symbolId token.SymbolId,
	value string,
) (
	token.Token,
	error,
) {
	start := lexer.Location

	_, err := lexer.Discard(len(value))
	if err != nil {
		return nil, err
	}

	return &token.TokenValue{
		SymbolId:    symbolId,
		StartEndPos: parseutil.NewStartEndPos(start, lexer.Location),
		Value:       value,
	}, nil
}

func lexSpaces(lexer *RawLexer) (token.Token, error) {
	tok, err := parseutil.MaybeTokenizeSpaces(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		token.SpacesToken)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

func lexNewlines(lexer *RawLexer) (token.Token, error) {
	tok, foundInvalidNewline, err := parseutil.MaybeTokenizeNewlines(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		token.NewlinesToken)
	if err != nil {
		return nil, err
	}

	if foundInvalidNewline {
		return nil, parseutil.NewLocationError(
			tok.StartPos,
			"unexpected utf8 rune")
	}

	return tok, nil
}

func lexLineComment(lexer *RawLexer) (token.Token, error) {
	tok, err := parseutil.MaybeTokenizeLineComment(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		token.LineCommentToken,
		false) // preserve content
	if err != nil {
		return nil, err
	}
	return tok, nil
}

func lexBlockComment(lexer *RawLexer) (token.Token, error) {
	tok, notTerminated, err := parseutil.MaybeTokenizeBlockComment(
		lexer.BufferedByteLocationReader,
		true,
		initialPeekWindowSize,
		token.BlockCommentToken,
		false) // preserve content
	if err != nil {
		return nil, err
	}

	if notTerminated {
		return nil, parseutil.NewLocationError(
			tok.StartPos,
			"block comment not terminated")
	}

	return tok, nil
}

func lexNumber(lexer *RawLexer) (token.Token, error) {
	tok, hasNoDigits, err := parseutil.MaybeTokenizeIntegerOrFloatLiteral(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lexer.values,
		token.IntegerLiteralToken,
		token.FloatLiteralToken)
	if err != nil {
		return nil, err
	}

	if tok == nil {
		return nil, parseutil.NewLocationError(
			lexer.Location,
			"malformed numeric literal")
	}

	if hasNoDigits {
		return nil, parseutil.NewLocationError(
			tok.StartPos,
			"%s has no digits",
			tok.SubType)
	}

	return tok, nil
}

func lexString(lexer *RawLexer) (token.Token, error) {
	tok, errMsg, err := parseutil.MaybeTokenizeStringLiteral(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lexer.values,
		token.StringLiteralToken,
		parseutil.SingleLineString,
		false) // use backtick marker
	if err != nil {
		return nil, err
	}

	if errMsg != "" {
		return nil, parseutil.NewLocationError(tok.StartPos, errMsg)
	}

	return tok, nil
}

func lexIdentifier(lexer *RawLexer) (token.Token, error) {
	tok, err := parseutil.MaybeTokenizeIdentifier(
		lexer.BufferedByteLocationReader,
		initialPeekWindowSize,
		lexer.values,
		token.IdentifierToken)
	if err != nil {
		return nil, err
	}
	return tok, nil
}
