// Package main provides the CLI entry point for ziamath.
//
// Usage:
//
//	ziamath [--latex] [--mathml] [--output PATH] [--config PATH] [INPUT]
//
// INPUT is a path, or "-" for stdin; when omitted, stdin is read.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ziamath-go/ziamath/config"
	"github.com/ziamath-go/ziamath/font"
	"github.com/ziamath-go/ziamath/latex"
	"github.com/ziamath-go/ziamath/mathlayout"
	"github.com/ziamath-go/ziamath/mathml"
	"github.com/ziamath-go/ziamath/svg"
	"github.com/ziamath-go/ziamath/zerrors"
)

// Exit codes, spec.md §6's CLI contract.
const (
	exitOK         = 0
	exitParseError = 1
	exitIOError    = 2
	exitFontError  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ziamath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	useLatex := fs.Bool("latex", false, "treat INPUT as LaTeX math instead of MathML")
	useMathML := fs.Bool("mathml", false, "treat INPUT as MathML (default)")
	output := fs.String("output", "", "output file path (default: stdout)")
	configPath := fs.String("config", "", "path to a TOML configuration file")

	if err := fs.Parse(args); err != nil {
		return exitParseError
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitIOError
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitIOError
	}

	input := "-"
	if fs.NArg() > 0 {
		input = fs.Arg(0)
	}

	src, err := readInput(input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitIOError
	}

	root, err := parseInput(src, *useLatex, *useMathML)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitParseError
	}

	mfont, err := selectFont(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFontError
	}

	style := buildStyle(mfont, cfg)
	frag, err := mathlayout.LayoutNode(root, style)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitParseError
	}

	frame := frag.IntoFrame()
	renderer := &svg.Renderer{Mode: svgMode(cfg), Precision: cfg.Precision}
	out := renderer.Render(frame)

	if err := writeOutput(*output, out, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitIOError
	}
	return exitOK
}

func svgMode(cfg *config.Config) svg.Mode {
	if cfg.SVG2 {
		return svg.ModeSVG2
	}
	return svg.ModeSVG1
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path, content string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func parseInput(src string, useLatex, useMathML bool) (*mathml.Node, error) {
	if useLatex && useMathML {
		return nil, &zerrors.ParseError{Msg: "--latex and --mathml are mutually exclusive"}
	}
	if useLatex {
		return latex.ToMathML(src, latex.NewOperatorTable())
	}
	return mathml.Parse(strings.NewReader(src))
}

func selectFont(cfg *config.Config) (*font.Font, error) {
	book, err := font.SystemFontBook()
	if err != nil || book.Len() == 0 {
		return nil, &zerrors.FontError{Msg: "no usable system fonts found", Err: err}
	}

	families := []string{"STIX Two Math", "Latin Modern Math", "XITS Math", "Cambria Math"}
	if cfg.Math.Font != "" {
		families = append([]string{cfg.Math.Font}, families...)
	}
	families = append(families, font.DefaultFallbackFamilies()...)

	f := book.SelectWithFallback(families, font.Variant{})
	if f == nil {
		return nil, &zerrors.FontError{Msg: "no font matched the configured math font families"}
	}
	if !f.HasMathTable() {
		return nil, &zerrors.FontError{Msg: fmt.Sprintf("font %q has no OpenType MATH table", f.Family()), Err: f.MathError()}
	}
	return f, nil
}

func buildStyle(f *font.Font, cfg *config.Config) mathlayout.Style {
	fontSize := mathlayout.Abs(cfg.Math.FontSize) * mathlayout.Pt
	style := mathlayout.DefaultStyle(f, fontSize, true)
	if c, ok := mathlayout.ParseColor(cfg.Math.Color); ok {
		style = style.WithColor(c)
	}
	switch cfg.Math.Variant {
	case "bold":
		style = style.WithBold(true)
	case "italic":
		style = style.WithItalic(true)
	case "bold-italic":
		style = style.WithBold(true).WithItalic(true)
	}
	return style
}
