package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/config"
)

func compile(
	t *testing.T,
	content string,
	cfg config.Config,
) (
	string,
	[]error,
) {
	t.Helper()

	output := &bytes.Buffer{}
	emitter := &parseutil.Emitter{}
	err := Compile("test.expr", []byte(content), cfg, output, emitter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return output.String(), emitter.Errors()
}

func TestCompileInstructionsOnly(t *testing.T) {
	cfg := config.Default()
	cfg.FileDirectives = false
	cfg.Registers = []string{"rax", "rbx"}

	output, errs := compile(t, "a + b\n(a + b) * (c + 2)\n", cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := "" +
		"\t# (a + b)\n" +
		"\tmov rax, a\n" +
		"\tadd rax, b\n" +
		"\t# ((a + b) * (c + 2))\n" +
		"\tmov rbx, c\n" +
		"\tadd rbx, 2\n" +
		"\tmov rax, a\n" +
		"\tadd rax, b\n" +
		"\timul rax, rbx\n"

	if output != expected {
		t.Fatalf("expected:\n%s\nactual:\n%s", expected, output)
	}
}

func TestCompileFileDirectives(t *testing.T) {
	cfg := config.Default()
	cfg.Syntax = "att"

	output, errs := compile(t, "x - 1\n", cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := "" +
		"\t.file\t\"test.expr\"\n" +
		"\t.att_syntax prefix\n" +
		"\t.text\n" +
		"\t# (x - 1)\n" +
		"\tmov x, %rax\n" +
		"\tsub $1, %rax\n" +
		"\t.ident\t\"ershov\"\n" +
		"\t.section\t.note.GNU-stack,\"\",@progbits\n"

	if output != expected {
		t.Fatalf("expected:\n%s\nactual:\n%s", expected, output)
	}
}

func TestCompileDarwinFooter(t *testing.T) {
	cfg := config.Default()
	cfg.OperatingSystem = "darwin"
	cfg.Ident = ""

	output, errs := compile(t, "", cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if strings.Contains(output, ".section") || strings.Contains(output, ".ident") {
		t.Fatalf("unexpected footer:\n%s", output)
	}
}

func TestCompileSkipsInvalidExpressions(t *testing.T) {
	cfg := config.Default()
	cfg.FileDirectives = false
	cfg.PoolSize = 1

	output, errs := compile(t, "(a + b) * (c + d)\na +\ne * f\n", cfg)

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}

	// parse errors are reported before analysis errors
	if !strings.Contains(errs[0].Error(), "unexpected end of line") ||
		!strings.Contains(errs[1].Error(), "needs 2 registers") {

		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := "" +
		"\t# (e * f)\n" +
		"\tmov rax, e\n" +
		"\timul rax, f\n"

	if output != expected {
		t.Fatalf("expected:\n%s\nactual:\n%s", expected, output)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestCompileOutputError(t *testing.T) {
	emitter := &parseutil.Emitter{}
	err := Compile(
		"test.expr",
		[]byte("a + b\n"),
		config.Default(),
		failingWriter{},
		emitter)

	if !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestCompileInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Syntax = "masm"

	err := Compile("test.expr", nil, cfg, &bytes.Buffer{}, &parseutil.Emitter{})
	if err == nil {
		t.Fatal("expected error")
	}
}
