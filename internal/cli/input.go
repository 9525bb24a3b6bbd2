package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// stdinPath selects standard input for --input.
const stdinPath = "-"

// readInput decodes the request at path into v. Files ending in .yaml or
// .yml are YAML, .json and stdin are JSON. Unknown fields are rejected.
func readInput(path string, stdin io.Reader, v any) error {
	if path == "" {
		return errors.New("--input is required")
	}

	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == stdinPath, ext == ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parsing input %s: %w", displayPath(path), err)
		}
	case ext == ".yaml", ext == ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing input %s: %w", displayPath(path), err)
		}
	default:
		return fmt.Errorf("unsupported input extension %q: use .json, .yaml or .yml", ext)
	}
	return nil
}

func displayPath(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}
