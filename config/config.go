package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/pattyshack/ershov/architecture"
	"github.com/pattyshack/ershov/platform"
	"github.com/pattyshack/ershov/platform/amd64"
)

const (
	DefaultPlatform = "amd64"
	DefaultOS       = "linux"
	DefaultMaxDepth = 256
	DefaultIdent    = "ershov"

	PlatformEnv       = "ERSHOV_PLATFORM"
	OSEnv             = "ERSHOV_OS"
	SyntaxEnv         = "ERSHOV_SYNTAX"
	PoolSizeEnv       = "ERSHOV_POOL_SIZE"
	MaxDepthEnv       = "ERSHOV_MAX_DEPTH"
	FileDirectivesEnv = "ERSHOV_FILE_DIRECTIVES"
)

type Config struct {
	Platform        string `yaml:"platform"`
	OperatingSystem string `yaml:"os"`
	Syntax          string `yaml:"syntax"`

	// Number of general registers used for expression evaluation, taken in
	// the platform's canonical order.  Zero selects every general register.
	// Ignored when Registers is set.
	PoolSize int `yaml:"pool-size"`

	// Explicit register pool, in allocation order.  The first register holds
	// each expression's value.
	Registers []string `yaml:"registers"`

	// Maximum expression nesting depth.  Zero disables the limit.
	MaxDepth int `yaml:"max-depth"`

	// When true, the output is a complete assembly file (.file / syntax /
	// section / .ident directives).  Otherwise only instruction lines are
	// written.
	FileDirectives bool `yaml:"file-directives"`

	Ident string `yaml:"ident"`
}

func Default() Config {
	return Config{
		Platform:        DefaultPlatform,
		OperatingSystem: DefaultOS,
		Syntax:          platform.IntelSyntaxName,
		MaxDepth:        DefaultMaxDepth,
		FileDirectives:  true,
		Ident:           DefaultIdent,
	}
}

// Parses a YAML configuration on top of the defaults.  Unknown keys are
// rejected.
func Parse(content []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	err := decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) { // empty document
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(content)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Overrides fields with ERSHOV_* environment variables, when set.
func (cfg *Config) ApplyEnv() {
	cfg.Platform = env.Str(PlatformEnv, cfg.Platform)
	cfg.OperatingSystem = env.Str(OSEnv, cfg.OperatingSystem)
	cfg.Syntax = env.Str(SyntaxEnv, cfg.Syntax)
	cfg.PoolSize = env.Int(PoolSizeEnv, cfg.PoolSize)
	cfg.MaxDepth = env.Int(MaxDepthEnv, cfg.MaxDepth)

	if env.Has(FileDirectivesEnv) {
		cfg.FileDirectives = env.Bool(FileDirectivesEnv)
	}
}

func (cfg Config) Validate() error {
	target, err := cfg.Target()
	if err != nil {
		return err
	}

	_, err = platform.LookupSyntax(cfg.Syntax)
	if err != nil {
		return err
	}

	if cfg.PoolSize < 0 {
		return fmt.Errorf("invalid pool size (%d)", cfg.PoolSize)
	}

	if cfg.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth (%d)", cfg.MaxDepth)
	}

	pool, err := cfg.pool(target)
	if err != nil {
		return err
	}

	if len(pool) == 0 {
		return fmt.Errorf("empty register pool")
	}

	return nil
}

func (cfg Config) Target() (platform.Platform, error) {
	osName := platform.OperatingSystemName(cfg.OperatingSystem)
	switch osName {
	case platform.Linux, platform.Darwin:
	default:
		return nil, fmt.Errorf("unsupported os (%s)", cfg.OperatingSystem)
	}

	switch platform.ArchitectureName(cfg.Platform) {
	case platform.Amd64:
		return amd64.NewPlatform(osName), nil
	default:
		return nil, fmt.Errorf("unsupported platform (%s)", cfg.Platform)
	}
}

func (cfg Config) AssemblySyntax() (platform.Syntax, error) {
	return platform.LookupSyntax(cfg.Syntax)
}

// Returns the register pool in allocation order.
func (cfg Config) Pool() ([]*architecture.Register, error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}
	return cfg.pool(target)
}

func (cfg Config) pool(target platform.Platform) ([]*architecture.Register, error) {
	if len(cfg.Registers) > 0 {
		return target.Registers().NamedPool(cfg.Registers)
	}
	return target.Registers().Pool(cfg.PoolSize)
}
