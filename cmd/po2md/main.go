package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dingyifei/mdpo"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("github.com/dingyifei/mdpo")
}

func main() {
	var (
		poPath     string
		outPath    string
		widthFlag  int
		extensions string
	)

	flags := pflag.NewFlagSet("po2md", pflag.ExitOnError)
	flags.StringVarP(&poPath, "po", "p", "", "PO catalog with translations (required)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&extensions, "extensions", "x", "", "Comma-separated Markdown extensions (tables,strikethrough,tasklists,wikilinks)")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: po2md --po catalog.po [flags] [input.md]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if poPath == "" {
		fmt.Fprintln(os.Stderr, "missing required --po flag")
		flags.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(poPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read po: %v\n", err)
		os.Exit(1)
	}
	catalog, err := mdpo.LoadCatalog(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load po: %v\n", err)
		os.Exit(1)
	}

	source, err := readInput(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	translator := mdpo.NewTranslator(catalog, resolveWidth(widthFlag), splitExtensions(extensions)...)
	output, err := translator.Translate(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "translate: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func splitExtensions(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
