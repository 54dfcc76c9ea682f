package lexer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/parser/token"
)

// Returns a lexer which drops spaces and comments, and merges consecutive
// newlines into a single NewlinesToken.
func NewLexer(
	reader parseutil.BufferedByteLocationReader,
) token.Lexer {
	return parseutil.NewMergeTokenCountLexer(
		parseutil.NewTrimTokenLexer(
			NewRawLexer(reader),
			token.SpacesToken,
			token.LineCommentToken,
			token.BlockCommentToken),
		token.NewlinesToken)
}
