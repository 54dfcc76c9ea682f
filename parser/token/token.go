package token

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

type SymbolId int

type Token = parseutil.Token[SymbolId]
type TokenValue = parseutil.TokenValue[SymbolId]
type TokenCount = parseutil.TokenCount[SymbolId]

type Lexer = parseutil.Lexer[Token]

const (
	SpacesToken       = SymbolId(' ')
	NewlinesToken     = SymbolId('\n')
	LineCommentToken  = SymbolId(-2)
	BlockCommentToken = SymbolId(-3)

	IntegerLiteralToken = SymbolId(256)
	FloatLiteralToken   = SymbolId(257)
	StringLiteralToken  = SymbolId(258)
	IdentifierToken     = SymbolId(259)
	LparenToken         = SymbolId(260)
	RparenToken         = SymbolId(261)
	AddToken            = SymbolId(262)
	SubToken            = SymbolId(263)
	MulToken            = SymbolId(264)
	DivToken            = SymbolId(265)
)

func (id SymbolId) String() string {
	switch id {
	case SpacesToken:
		return "SPACES"
	case NewlinesToken:
		return "NEWLINES"
	case LineCommentToken:
		return "LINE_COMMENT"
	case BlockCommentToken:
		return "BLOCK_COMMENT"
	case IntegerLiteralToken:
		return "INTEGER_LITERAL"
	case FloatLiteralToken:
		return "FLOAT_LITERAL"
	case StringLiteralToken:
		return "STRING_LITERAL"
	case IdentifierToken:
		return "IDENTIFIER"
	case LparenToken:
		return "LPAREN"
	case RparenToken:
		return "RPAREN"
	case AddToken:
		return "ADD"
	case SubToken:
		return "SUB"
	case MulToken:
		return "MUL"
	case DivToken:
		return "DIV"
	default:
		return fmt.Sprintf("?unknown symbol %d?", int(id))
	}
}
