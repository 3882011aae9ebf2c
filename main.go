package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/jsondoc/internal/config"
	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/parser"
	"github.com/mcncl/jsondoc/internal/value"
	"github.com/mcncl/jsondoc/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Style       string `help:"Output style: compact or pretty. Overrides the config file." short:"s"`
	Indent      int    `help:"Indent characters per nesting level. Negative keeps the style's width." default:"-1"`
	Tabs        bool   `help:"Indent with tabs instead of spaces."`
	Config      string `help:"Path to config file. If not specified, searches for .jsondoc.yml." short:"c" type:"path"`
	Path        string `help:"Dot-separated member path to select before writing, e.g. 'data.items'." short:"p"`
	Check       bool   `help:"Only check that the input parses; write nothing."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsondoc"),
		kong.Description("A tool to parse, check and reformat JSON documents"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError() has already printed usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsondoc version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsondoc --help\n")
		os.Exit(1)
	}
}

// newContext resolves configuration and builds the logger
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Style, CLI.Indent, CLI.Tabs)
	if err != nil {
		return nil, err
	}

	debug := CLI.Debug || cfg.Dev.Debug
	logger := newLogger(os.Stderr, debug)
	if configPath != "" {
		level.Debug(logger).Log("msg", "loaded config", "path", configPath, "style", cfg.Style)
	}

	return &Context{Debug: debug, Config: cfg, Logger: logger}, nil
}

// newLogger returns a logfmt logger that drops debug lines unless debug is set
func newLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	// 1. Parse JSON input
	doc, err := parseInput()
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "parsed document", "kind", doc.Kind())

	// 2. Narrow to the requested member
	if CLI.Path != "" {
		doc, err = selectPath(doc, CLI.Path)
		if err != nil {
			return err
		}
		level.Debug(logger).Log("msg", "selected path", "path", CLI.Path, "kind", doc.Kind())
	}

	if CLI.Check {
		level.Info(logger).Log("msg", "document is valid", "kind", doc.Kind())
		return nil
	}

	// 3. Render with the configured params
	params, err := ctx.Config.WriterParams()
	if err != nil {
		return err
	}
	text, err := writer.Write(doc, params)
	if err != nil {
		return err
	}

	// 4. Output the result
	if err := writeOutput(text); err != nil {
		return err
	}
	if CLI.Output != "" {
		level.Info(logger).Log("msg", "document written", "path", CLI.Output)
	}
	return nil
}

// selectPath follows dot-separated keys from doc
func selectPath(doc *value.Value, path string) (*value.Value, error) {
	v, err := doc.Path(strings.Split(path, ".")...)
	if err != nil {
		return nil, errors.NewValueError(fmt.Sprintf("cannot follow path '%s'", path), err)
	}
	if !v.Exists() {
		return nil, errors.NewValueError(fmt.Sprintf("path '%s' not found", path), errors.ErrEmptyValue)
	}
	return v, nil
}

// parseInput reads JSON from file or stdin
func parseInput() (*value.Value, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if len(strings.TrimSpace(string(jsonData))) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(jsonData)
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0o644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		return nil
	}

	if _, err := fmt.Println(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (*value.Value, error) {
	fmt.Fprintln(os.Stderr, "jsondoc Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(strings.TrimSpace(jsonData)) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.Parse(jsonData)
}
