package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/droprows/internal/params"
	"gopkg.in/yaml.v3"
)

// readParamsFile loads stored parameters of any version from a YAML file.
// JSON is valid YAML, so JSON params files work too.
func readParamsFile(path string) (params.Stored, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return params.Stored{}, fmt.Errorf("read params: %w", err)
	}

	var stored params.Stored
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return params.Stored{}, fmt.Errorf("parse params %s: %w", path, err)
	}
	return stored, nil
}

func writeParams(w io.Writer, stored params.Stored) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(stored); err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	return enc.Close()
}

// envLanguage turns $LANG (e.g. "de_DE.UTF-8") into a language tag string.
func envLanguage() string {
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(lang, "_", "-")
}
