package driver

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/analyzer"
	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/codegen"
	"github.com/pattyshack/ershov/config"
	"github.com/pattyshack/ershov/parser"
	"github.com/pattyshack/ershov/platform"
)

// Compiles every expression in content and writes the generated assembly to
// output.  Parse, analysis and generation diagnostics are emitted; the
// affected expressions are skipped.  The returned error is non-nil only for
// configuration and output errors.
func Compile(
	fileName string,
	content []byte,
	cfg config.Config,
	output io.Writer,
	emitter *parseutil.Emitter,
) error {
	target, err := cfg.Target()
	if err != nil {
		return err
	}

	syntax, err := cfg.AssemblySyntax()
	if err != nil {
		return err
	}

	pool, err := cfg.Pool()
	if err != nil {
		return err
	}

	exprs := parser.Parse(
		parseutil.NewBufferedByteLocationReaderFromSlice(fileName, content),
		cfg.MaxDepth,
		emitter)

	exprs = analyzer.Analyze(
		exprs,
		analyzer.Options{
			MaxDepth: cfg.MaxDepth,
			PoolSize: len(pool),
		},
		emitter)

	sink := codegen.NewWriterSink(output)

	if cfg.FileDirectives {
		writeHeader(sink, fileName, syntax)
	}

	for _, expr := range exprs {
		_ = sink.WriteLine("# " + ast.InfixString(expr))

		err := codegen.GenerateExpression(expr, pool, syntax, sink, cfg.MaxDepth)
		if err != nil {
			if sink.Err() != nil {
				break
			}
			emitter.EmitErrors(err)
		}
	}

	if cfg.FileDirectives {
		writeFooter(sink, cfg.Ident, target.OperatingSystemName())
	}

	if sink.Err() != nil {
		return fmt.Errorf("failed to write output: %w", sink.Err())
	}

	return nil
}

func writeHeader(
	sink *codegen.WriterSink,
	fileName string,
	syntax platform.Syntax,
) {
	_ = sink.WriteLine(".file\t" + strconv.Quote(fileName))
	_ = sink.WriteLine(syntax.Directive())
	_ = sink.WriteLine(".text")
}

func writeFooter(
	sink *codegen.WriterSink,
	ident string,
	os platform.OperatingSystemName,
) {
	if ident != "" {
		_ = sink.WriteLine(".ident\t" + strconv.Quote(ident))
	}

	if os == platform.Linux {
		_ = sink.WriteLine(".section\t.note.GNU-stack,\"\",@progbits")
	}
}
