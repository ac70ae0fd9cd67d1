package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/conform"
	"github.com/reoring/conform/internal/config"
	"github.com/reoring/conform/internal/logging"
	js "github.com/reoring/conform/jsonschema"
	"github.com/reoring/conform/report"
)

var version = "dev"

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitError
	}
	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdin, stdout, stderr)
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, "conform", version)
		return exitOK
	default:
		usage(stderr)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "conform CLI\n\nUsage:\n  conform validate -schema FILE -value FILE|- [-config FILE] [-format text|json] [-color] [-lang en|ja]\n                   [-strict-keys] [-max-depth N] [-max-ref-depth N] [-log-level LEVEL]\n  conform check -schema FILE [-config FILE] [-format text|json]\n  conform version\n\nExit status: 0 conforms, 1 value mismatch, 2 usage, schema or I/O error.")
}

// settings binds the flags shared by the subcommands. Only flags that were
// set on the command line override the loaded configuration.
type settings struct {
	configPath  string
	format      string
	color       bool
	lang        string
	strictKeys  bool
	maxDepth    int
	maxRefDepth int
	logLevel    string
}

func (s *settings) bind(fs *flag.FlagSet) {
	fs.StringVar(&s.configPath, "config", "", "YAML config file (default $"+config.ConfigPathEnvVar+")")
	fs.StringVar(&s.format, "format", "", "output format: text or json")
	fs.BoolVar(&s.color, "color", false, "colorize output")
	fs.StringVar(&s.lang, "lang", "", "language for issue titles: en or ja")
	fs.StringVar(&s.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
}

func (s *settings) load(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Output.Format = s.format
		case "color":
			cfg.Output.Color = s.color
		case "lang":
			cfg.Output.Lang = s.lang
		case "strict-keys":
			cfg.Input.StrictKeys = s.strictKeys
		case "max-depth":
			cfg.Input.MaxDepth = s.maxDepth
		case "max-ref-depth":
			cfg.Validation.MaxRefDepth = s.maxRefDepth
		case "log-level":
			cfg.Log.Level = s.logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var s settings
	var schemaPath, valuePath string
	s.bind(fs)
	fs.StringVar(&schemaPath, "schema", "", "schema file (.json, .yaml, .yml)")
	fs.StringVar(&valuePath, "value", "", "value file (.json, .yaml, .yml) or - for stdin")
	fs.BoolVar(&s.strictKeys, "strict-keys", false, "reject duplicate object keys in the value")
	fs.IntVar(&s.maxDepth, "max-depth", 0, "maximum value nesting depth (0 = unlimited)")
	fs.IntVar(&s.maxRefDepth, "max-ref-depth", 0, "maximum nested $ref resolutions (0 = default, <0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if schemaPath == "" || valuePath == "" {
		fs.Usage()
		return exitError
	}
	cfg, err := s.load(fs)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitError
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Timestamp: true, Output: stderr})
	logger := logging.Logger()

	root, err := loadSchema(schemaPath)
	if err != nil {
		logging.Debug().Err(err).Str("schema", schemaPath).Msg("cannot load schema")
		fmt.Fprintln(stderr, err)
		return exitError
	}
	value, err := loadValue(valuePath, stdin, conform.ValueOpt{
		RejectDuplicateKeys: cfg.Input.StrictKeys,
		MaxDepth:            cfg.Input.MaxDepth,
	})
	if err != nil {
		logging.Debug().Err(err).Str("value", valuePath).Msg("cannot load value")
		fmt.Fprintln(stderr, err)
		return exitError
	}
	logging.Debug().Str("schema", schemaPath).Str("value", valuePath).Int("definitions", len(root.Definitions)).Msg("validating")

	verr := conform.ValidateWith(conform.Options{MaxRefDepth: cfg.Validation.MaxRefDepth, Logger: &logger},
		"$", root.Schema, root.Definitions, value)
	if err := report.Write(stdout, verr, reportOptions(cfg)); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitCode(verr)
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var s settings
	var schemaPath string
	s.bind(fs)
	fs.StringVar(&schemaPath, "schema", "", "schema file (.json, .yaml, .yml)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if schemaPath == "" {
		fs.Usage()
		return exitError
	}
	cfg, err := s.load(fs)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitError
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Timestamp: true, Output: stderr})

	root, err := loadSchema(schemaPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	cerr := conform.CheckRoot(root)
	if err := report.Write(stdout, cerr, reportOptions(cfg)); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	if cerr != nil {
		return exitError
	}
	return exitOK
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{Format: cfg.Output.Format, Color: cfg.Output.Color, Lang: cfg.Output.Lang}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case conform.IsValueError(err):
		return exitMismatch
	default:
		return exitError
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadSchema(path string) (*js.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	var root *js.Root
	if isYAML(path) {
		root, err = js.ParseYAML(data)
	} else {
		root, err = js.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return root, nil
}

func loadValue(path string, stdin io.Reader, opt conform.ValueOpt) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading value: %w", err)
	}
	var v any
	if isYAML(path) {
		v, err = conform.ParseValueYAML(data)
	} else {
		v, err = conform.ParseValueWith(data, opt)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing value %s: empty document", path)
		}
		return nil, fmt.Errorf("parsing value %s: %w", path, err)
	}
	return v, nil
}
