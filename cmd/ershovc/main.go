package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/config"
	"github.com/pattyshack/ershov/driver"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	syntax := flag.String("syntax", "", "assembly syntax: intel or att")
	poolSize := flag.Int(
		"pool",
		-1,
		"number of general registers available (0 = all)")
	maxDepth := flag.Int("max-depth", -1, "maximum expression nesting depth")
	outputPath := flag.String("o", "", "output file (default: stdout)")
	noDirectives := flag.Bool(
		"no-directives",
		false,
		"write only instruction lines, without file directives")
	color := flag.String("color", "auto", "colored diagnostics: auto, always or never")
	verbose := flag.Bool("v", false, "dump the effective configuration")
	flag.Parse()

	au := aurora.NewAurora(useColor(*color, os.Stderr))
	fail := func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "%s %s\n", au.Red("error:"), fmt.Sprintf(format, args...))
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fail("%s", err)
		}
	}

	cfg.ApplyEnv()

	if *syntax != "" {
		cfg.Syntax = *syntax
	}
	if *poolSize >= 0 {
		cfg.PoolSize = *poolSize
		cfg.Registers = nil
	}
	if *maxDepth >= 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *noDirectives {
		cfg.FileDirectives = false
	}

	err := cfg.Validate()
	if err != nil {
		fail("%s", err)
	}

	if *verbose {
		spew.Fdump(os.Stderr, cfg)
	}

	if flag.NArg() == 0 {
		fail("no input files")
	}

	numErrors, err := compileFiles(cfg, *outputPath, flag.Args(), au)
	if err != nil {
		fail("%s", err)
	}

	if numErrors > 0 {
		fmt.Fprintf(
			os.Stderr,
			"%s\n",
			au.Yellow(fmt.Sprintf("found %d errors", numErrors)))
		os.Exit(1)
	}
}

// Compiles every file into the output (stdout when outputPath is empty)
// and returns the number of reported diagnostics.  The output file is
// closed before returning.
func compileFiles(
	cfg config.Config,
	outputPath string,
	fileNames []string,
	au aurora.Aurora,
) (
	numErrors int,
	err error,
) {
	var output io.Writer = os.Stdout
	if outputPath != "" {
		file, createErr := os.Create(outputPath)
		if createErr != nil {
			return 0, createErr
		}
		defer func() {
			closeErr := file.Close()
			if err == nil && closeErr != nil {
				err = fmt.Errorf("failed to close output: %w", closeErr)
			}
		}()
		output = file
	}

	for _, fileName := range fileNames {
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s\n", au.Red("error:"), err)
			numErrors++
			continue
		}

		emitter := &parseutil.Emitter{}
		err = driver.Compile(fileName, content, cfg, output, emitter)
		if err != nil {
			return numErrors, err
		}

		for _, err := range emitter.Errors() {
			fmt.Fprintf(os.Stderr, "%s %s\n", au.Red("error:"), au.Bold(err))
			numErrors++
		}
	}

	return numErrors, nil
}

func useColor(mode string, file *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(file)
	}
}
