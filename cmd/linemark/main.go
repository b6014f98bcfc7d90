// Package main is the entry point for the linemark CLI.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dshills/linemark/internal/config"
	"github.com/dshills/linemark/internal/htmldoc"
	"github.com/dshills/linemark/internal/render"
	"github.com/dshills/linemark/internal/termview"
	"github.com/dshills/linemark/internal/theme"
	"github.com/dshills/linemark/internal/tokenize"
	"github.com/dshills/linemark/internal/whitespace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	outPath    string
	title      string
	preview    bool
	watch      bool
}

func run() int {
	flags := pflag.NewFlagSet("linemark", pflag.ContinueOnError)

	var opts options
	var showVersion bool
	flags.StringVarP(&opts.configPath, "config", "c", "linemark.toml", "Path to configuration file")
	flags.StringVarP(&opts.outPath, "out", "o", "", "Write HTML to file instead of stdout")
	flags.StringVar(&opts.title, "title", "", "Document title (defaults to the file name)")
	flags.BoolVarP(&opts.preview, "preview", "p", false, "Open a terminal preview instead of writing HTML")
	flags.BoolVar(&opts.watch, "watch", false, "Re-render when the config file changes (requires --out)")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version information")

	tabSize := flags.Int("tab-size", 0, "Columns per tab stop")
	spaceWidth := flags.Int("space-width", 0, "Pixel width of a whitespace glyph")
	truncate := flags.Int("truncate", 0, "Truncate lines after this column")
	wsMode := flags.String("whitespace", "", "Whitespace rendering: none, boundary, all")
	hardSpaces := flags.Bool("hard-spaces", false, "Render no-break spaces as middle dots")
	controlChars := flags.Bool("control-chars", false, "Render control characters as control pictures")
	themePath := flags.String("theme", "", "Path to a YAML theme file")
	luaPath := flags.String("lua", "", "Path to a Lua tokenizer script")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "linemark - render source lines as measurable HTML\n\n")
		fmt.Fprintf(os.Stderr, "Usage: linemark [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  linemark main.go                     Render to stdout\n")
		fmt.Fprintf(os.Stderr, "  linemark -o main.html main.go        Render to a file\n")
		fmt.Fprintf(os.Stderr, "  linemark --whitespace all -p main.go Terminal preview\n")
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if showVersion {
		fmt.Printf("linemark %s (%s)\n", version, commit)
		return 0
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	path := flags.Arg(0)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Command line overrides the config file.
	if flags.Changed("tab-size") {
		cfg.TabSize = *tabSize
	}
	if flags.Changed("space-width") {
		cfg.SpaceWidth = *spaceWidth
	}
	if flags.Changed("truncate") {
		cfg.TruncateAfter = *truncate
	}
	if flags.Changed("whitespace") {
		cfg.Whitespace = *wsMode
	}
	if flags.Changed("hard-spaces") {
		cfg.RenderHardSpaces = *hardSpaces
	}
	if flags.Changed("control-chars") {
		cfg.RenderControlChars = *controlChars
	}
	if flags.Changed("theme") {
		cfg.Theme = *themePath
	}
	if flags.Changed("lua") {
		cfg.LuaTokenizer = *luaPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	lines, err := readLines(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	th := theme.Default()
	if cfg.Theme != "" {
		if th, err = theme.Load(cfg.Theme); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var tok tokenize.Tokenizer = tokenize.NewSimple()
	if cfg.LuaTokenizer != "" {
		lt, err := tokenize.NewLuaFile(cfg.LuaTokenizer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer lt.Close()
		tok = lt
	}

	if opts.preview {
		if err := termview.New(path, lines, tok, th, cfg).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	title := opts.title
	if title == "" {
		title = path
	}

	if opts.watch {
		if opts.outPath == "" {
			fmt.Fprintln(os.Stderr, "Error: --watch requires --out")
			return 2
		}
		return watchLoop(opts, cfg, th, tok, lines, title)
	}

	if err := renderDocument(opts.outPath, cfg, th, tok, lines, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// renderDocument runs the full pipeline and writes the HTML document.
func renderDocument(outPath string, cfg config.Config, th *theme.Theme, tok tokenize.Tokenizer, lines []string, title string) error {
	rendered, err := renderLines(cfg, tok, lines)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	return htmldoc.Write(out, th, title, rendered)
}

// renderLines tokenizes and renders every line, carrying lexer state.
func renderLines(cfg config.Config, tok tokenize.Tokenizer, lines []string) ([]string, error) {
	mode := cfg.WhitespaceMode()
	rendered := make([]string, 0, len(lines))
	state := tokenize.StateNormal

	for i, line := range lines {
		var toks []tokenize.Token
		toks, state = tok.TokenizeLine(line, state)
		parts := whitespace.Annotate(line, tokenize.Parts(line, toks, nil), mode)

		out, err := render.Render(cfg.Input(line, parts))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rendered = append(rendered, out.HTML)
	}
	return rendered, nil
}

// watchLoop renders once, then re-renders on every config change until
// interrupted.
func watchLoop(opts options, cfg config.Config, th *theme.Theme, tok tokenize.Tokenizer, lines []string, title string) int {
	if err := renderDocument(opts.outPath, cfg, th, tok, lines, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	notifier := config.NewNotifier()
	notifier.Subscribe(func(next config.Config) {
		if err := renderDocument(opts.outPath, next, th, tok, lines, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "re-rendered %s\n", opts.outPath)
	})

	w, err := config.NewWatcher(opts.configPath, notifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	for err := range w.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return 0
}

// readLines splits a file into lines without their terminators.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
