package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dingyifei/mdpo"
	"github.com/spf13/pflag"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("github.com/dingyifei/mdpo")
}

func main() {
	var (
		poPath     string
		outPath    string
		extensions string
	)

	flags := pflag.NewFlagSet("md2po", pflag.ExitOnError)
	flags.StringVarP(&poPath, "po", "p", "", "Existing PO catalog to update")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&extensions, "extensions", "x", "", "Comma-separated Markdown extensions (tables,strikethrough,tasklists,wikilinks)")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: md2po [flags] [input.md]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	source, err := readInput(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var prev *mdpo.Catalog
	if poPath != "" {
		data, err := os.ReadFile(poPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read po: %v\n", err)
			os.Exit(1)
		}
		prev, err = mdpo.LoadCatalog(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load po: %v\n", err)
			os.Exit(1)
		}
	}

	extractor := mdpo.NewExtractor(splitExtensions(extensions)...)
	msgids, err := extractor.Extract(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}

	catalog := mdpo.UpdateCatalog(msgids, prev)
	if err := writeOutput(outPath, catalog.Data()); err != nil {
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
