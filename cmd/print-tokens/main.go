package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pattyshack/gt/parseutil"

	lex "github.com/pattyshack/ershov/parser/lexer"
	"github.com/pattyshack/ershov/parser/token"
)

func main() {
	for _, fileName := range os.Args[1:] {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		reader := parseutil.NewBufferedByteLocationReaderFromSlice(
			fileName,
			content)

		lexer := lex.NewLexer(reader)
		for {
			tok, err := lexer.Next()
			if err != nil {
				if err != io.EOF {
					fmt.Println("Lex error:", err)
				}
				break
			}

			value, ok := tok.(*token.TokenValue)
			if ok {
				fmt.Printf("%s %q (%s)\n", tok.Id(), value.Value, tok.Loc())
			} else {
				fmt.Printf("%s (%s)\n", tok.Id(), tok.Loc())
			}
		}
	}
}
