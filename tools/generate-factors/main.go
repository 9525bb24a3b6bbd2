// Package main converts an emission factor data set maintained as YAML into
// the canonical JSON that internal/factors embeds at build time.
//
// The input is validated by loading it through the factors package before
// anything is written, so a bad source never replaces the embedded file.
//
// Usage:
//
//	go run ./tools/generate-factors [--in FILE] [--out FILE] [--check]
//
// Flags:
//
//	--in     Source data set, YAML or JSON (default: ./internal/factors/data/default_factors.yaml)
//	--out    Output file (default: ./internal/factors/data/default_factors.json)
//	--check  Exit non-zero if --out differs from what would be generated
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghgcalc/internal/factors"
)

const (
	defaultIn  = "./internal/factors/data/default_factors.yaml"
	defaultOut = "./internal/factors/data/default_factors.json"
)

func main() {
	in := flag.String("in", defaultIn, "Source data set (YAML or JSON)")
	out := flag.String("out", defaultOut, "Output JSON file")
	check := flag.Bool("check", false, "Only verify that --out is up to date")
	flag.Parse()

	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *in, err)
		os.Exit(1)
	}

	generated, version, err := generate(data, factors.FormatFromPath(*in), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(1)
	}

	if *check {
		current, err := os.ReadFile(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *out, err)
			os.Exit(1)
		}
		if !bytes.Equal(current, generated) {
			fmt.Fprintf(os.Stderr, "%s is out of date; regenerate from %s\n", *out, *in)
			os.Exit(1)
		}
		fmt.Printf("%s is up to date (version %s)\n", *out, version)
		return
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, generated, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (version %s, %d bytes)\n", *out, version, len(generated))
}

// generate validates a data set and renders it as indented JSON with sorted
// keys. It returns the JSON and the data set version.
func generate(data []byte, format factors.Format, logger zerolog.Logger) ([]byte, string, error) {
	table, err := factors.NewClientFromBytes(data, format, logger)
	if err != nil {
		return nil, "", err
	}

	var doc any
	if format == factors.FormatYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding data set: %w", err)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encoding data set: %w", err)
	}
	return append(out, '\n'), table.Version(), nil
}
