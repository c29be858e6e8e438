// Command compile converts an alphabetically ordered word list, one word per
// line, into a DAWG file. The syntax is
//
//	compile [flags] <text file (inc .ext)> <output file (no ext)>
//
// and the output is written to the output name with ".dwg" appended.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	dawg "github.com/milden6/dwg"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML file with build capacities")
	encodingName := fs.String("encoding", "", "charset to convert UTF-8 input to, e.g. ISO-8859-3")
	metricsFile := fs.String("metrics-file", "", "write build statistics to this Prometheus textfile")
	verify := fs.Bool("verify", false, "reload the output and check that it holds every word")
	dump := fs.Bool("dump", false, "print the records of the output")
	verbose := fs.Bool("v", false, "log debug messages")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: compile [flags] dictfile.ext dawgfile")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if fs.NArg() != 2 {
		fs.Usage()
		slog.Error("Compile failed", "error", fmt.Errorf("%w: expected 2 arguments, got %d", dawg.ErrUsage, fs.NArg()))
		return 1
	}

	opts := options{
		configPath:  *configPath,
		encoding:    *encodingName,
		metricsFile: *metricsFile,
		verify:      *verify,
		dump:        *dump,
	}
	if err := compile(fs.Arg(0), fs.Arg(1), opts, stdout); err != nil {
		slog.Error("Compile failed", "error", err)
		return 1
	}
	return 0
}

type options struct {
	configPath  string
	encoding    string
	metricsFile string
	verify      bool
	dump        bool
}

func compile(input, output string, opts options, stdout io.Writer) error {
	cfg := dawg.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = dawg.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.encoding != "" {
		cfg.Encoding = opts.encoding
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Debug("Configuration",
		"max_edges", cfg.MaxEdges,
		"hash_table_size", cfg.HashTableSize,
		"max_line", cfg.MaxLine,
		"encoding", cfg.Encoding)

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("can't open text file: %w", err)
	}
	d, err := dawg.CompileReader(in, cfg)
	in.Close()
	if err != nil {
		return err
	}

	filename := output + dawg.Ext
	slog.Debug("Writing", "file", filename)
	if _, err := d.Save(filename); err != nil {
		return err
	}

	// a failed check must not leave the output behind
	if err := report(filename, d, opts, stdout); err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}

func report(filename string, d *dawg.Dawg, opts options, stdout io.Writer) error {
	if opts.metricsFile != "" {
		if err := dawg.WriteMetrics(opts.metricsFile, d.Stats()); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if opts.verify || opts.dump {
		return inspect(filename, d, opts, stdout)
	}
	return nil
}

func inspect(filename string, d *dawg.Dawg, opts options, stdout io.Writer) error {
	g, err := dawg.Load(filename)
	if err != nil {
		return err
	}
	defer g.Close()

	if opts.verify {
		words, err := g.Words()
		if err != nil {
			return err
		}
		if len(words) != d.NumAdded() {
			return fmt.Errorf("%w: %s holds %d words, compiled %d", dawg.ErrCorrupt, filename, len(words), d.NumAdded())
		}
		slog.Info("Verified", "file", filename, "words", len(words))
	}

	if opts.dump {
		return g.Dump(stdout)
	}
	return nil
}
