package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/analyzer"
	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/config"
	"github.com/pattyshack/ershov/parser"
)

func main() {
	raw := flag.Bool("raw", false, "dump the raw go structs instead")
	flag.Parse()

	cfg := config.Default()
	cfg.ApplyEnv()

	pool, err := cfg.Pool()
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(2)
	}

	for _, fileName := range flag.Args() {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		emitter := &parseutil.Emitter{}
		exprs := parser.Parse(
			parseutil.NewBufferedByteLocationReaderFromSlice(
				fileName,
				content),
			cfg.MaxDepth,
			emitter)

		exprs = analyzer.Analyze(
			exprs,
			analyzer.Options{
				MaxDepth: cfg.MaxDepth,
				PoolSize: len(pool),
			},
			emitter)

		for idx, expr := range exprs {
			fmt.Printf("Expression %d: %s\n", idx, ast.InfixString(expr))
			if *raw {
				spew.Dump(expr)
			} else {
				fmt.Println(ast.TreeString(expr, "  "))
			}
		}

		errs := emitter.Errors()
		if len(errs) > 0 {
			fmt.Println("---------------------------")
			fmt.Println("Found", len(errs), "errors:")
			fmt.Println("---------------------------")
			for idx, err := range errs {
				fmt.Printf("error %d: %s\n", idx, err)
			}
		}
	}
}
