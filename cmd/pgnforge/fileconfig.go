package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileDefaults mirrors the subset of flags a site commonly wants to pin in a
// shared defaults file rather than repeat on every invocation: output shape,
// worker count, and the log destination. Anything left zero-valued in the
// YAML is left to the flag package's own default.
type fileDefaults struct {
	OutputFormat string `yaml:"output_format"`
	LineLength   int    `yaml:"line_length"`
	Workers      int    `yaml:"workers"`
	Quiet        bool   `yaml:"quiet"`
	LogFile      string `yaml:"log_file"`
	Json         bool   `yaml:"json"`
}

// loadConfigDefaults reads a YAML defaults file and pushes its values into
// the flag package as new defaults, via flag.Set, before flag.Parse() runs.
// A flag given explicitly on the command line still wins, because
// flag.Parse() assigns over whatever Set already put there.
func loadConfigDefaults(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fd fileDefaults
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fd.OutputFormat != "" {
		if err := flag.Set("W", fd.OutputFormat); err != nil {
			return err
		}
	}
	if fd.LineLength != 0 {
		if err := flag.Set("w", strconv.Itoa(fd.LineLength)); err != nil {
			return err
		}
	}
	if fd.Workers != 0 {
		if err := flag.Set("workers", strconv.Itoa(fd.Workers)); err != nil {
			return err
		}
	}
	if fd.Quiet {
		if err := flag.Set("s", "true"); err != nil {
			return err
		}
	}
	if fd.Json {
		if err := flag.Set("J", "true"); err != nil {
			return err
		}
	}
	if fd.LogFile != "" {
		if err := flag.Set("l", fd.LogFile); err != nil {
			return err
		}
	}

	return nil
}

// loadConfigFileIfSpecified scans os.Args for --config before flag.Parse()
// runs, the same pre-scan trick used for -A. Returns early (no error) when
// --config is absent.
func loadConfigFileIfSpecified() {
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]

		var path string
		switch {
		case arg == "--config" && i+1 < len(os.Args):
			path = os.Args[i+1]
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
		default:
			continue
		}

		if err := loadConfigDefaults(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file %s: %v\n", path, err)
			os.Exit(1)
		}
		return
	}
}
