package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/kvit-s/tokpatch/internal/config"
	"github.com/kvit-s/tokpatch/internal/report"
	"github.com/kvit-s/tokpatch/internal/runner"
	"github.com/kvit-s/tokpatch/internal/schema"
	"github.com/kvit-s/tokpatch/internal/tui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	buildDate  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	filePath := pflag.StringP("file", "f", "", "document to patch")
	patchPath := pflag.StringP("patch", "p", "", "patch payload file, or '-' for stdin")
	outputPath := pflag.StringP("output", "o", "", "output path (default derived from config)")
	inPlace := pflag.Bool("in-place", false, "overwrite the input file")
	versionSuffix := pflag.String("version-suffix", "", "write output next to the input with this suffix, e.g. v1.0")
	showDiff := pflag.Bool("diff", false, "include a unified diff in the report")
	noColor := pflag.Bool("no-color", false, "disable colored output")
	configPath := pflag.String("config", "tokpatch.yaml", "path to config file")
	logPath := pflag.String("log", "", "log file path (overrides config)")
	showSchema := pflag.Bool("schema", false, "print the patch payload schema and exit")
	copySchema := pflag.Bool("copy", false, "with --schema, also copy it to the clipboard")
	interactive := pflag.BoolP("interactive", "i", false, "open the interactive UI")
	showVersion := pflag.Bool("version", false, "show version information and exit")

	pflag.Usage = func() {
		fmt.Println("Usage: tokpatch -f <file> -p <patch.json> [flags]")
		fmt.Println("\nApply a JSON hunk patch to a text file using content-based matching.")
		fmt.Println("\nExamples:")
		fmt.Println("  tokpatch -f app.py -p fix.json --diff")
		fmt.Println("  cat fix.json | tokpatch -f app.py -p - --in-place")
		fmt.Println("  tokpatch -f app.py -i")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, buildDate, commitHash)
		return 0
	}

	if *showSchema {
		fmt.Println(schema.Text)
		if *copySchema {
			if err := schema.CopyToClipboard(); err != nil {
				fmt.Fprintf(os.Stderr, "copy schema: %v\n", err)
				return 2
			}
		}
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *versionSuffix != "" {
		cfg.Output.Versioned = true
		cfg.Output.Suffix = *versionSuffix
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}
	if *noColor || !cfg.ColorEnabled() {
		color.NoColor = true
	}

	if *filePath == "" {
		pflag.Usage()
		return 2
	}

	log, err := runner.NewLogger(cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		return 2
	}
	defer log.Close()

	run := runner.New(cfg, log)

	if *interactive {
		if err := tui.Run(*filePath, run); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return 0
	}

	if *patchPath == "" {
		pflag.Usage()
		return 2
	}
	payload, err := readPayload(*patchPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	outcome, err := run.Run(runner.Request{
		FilePath:   *filePath,
		Payload:    payload,
		OutputPath: *outputPath,
		InPlace:    *inPlace,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := report.Options{
		Diff:   *showDiff || cfg.Report.Diff,
		Name:   *filePath,
		Before: outcome.Original,
	}
	if err := report.Write(os.Stdout, outcome.Result, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Printf("wrote %s\n", outcome.OutputPath)

	if !outcome.Result.AllApplied() {
		return 1
	}
	return 0
}

// readPayload reads the patch payload from a file, or from stdin when path
// is "-".
func readPayload(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch %s: %w", path, err)
	}
	return data, nil
}
