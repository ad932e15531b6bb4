// Package rulefile reads and writes rule sets as HCL, YAML or JSON files.
package rulefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"netdiag/core/rules"
	"netdiag/internal/errors"
)

// Format is a rule file encoding
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings
func Formats() []Format {
	return []Format{FormatHCL, FormatYAML, FormatJSON}
}

// FormatOf picks the encoding from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Input(fmt.Sprintf("unsupported rule file extension %q (want .hcl, .yaml, .yml or .json)", filepath.Ext(path))).
			WithContext("path", path)
	}
}

// Load reads a rule file and validates it against schema. The returned rules
// are in file order.
func Load(path string, schema rules.Schema) ([]rules.Rule, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to read rule file", err).WithContext("path", path)
	}

	rs, err := Parse(src, path, format)
	if err != nil {
		return nil, err
	}

	if _, err := rules.NewBase(rs, schema); err != nil {
		return nil, err
	}
	return rs, nil
}

// Parse decodes a rule set without validating references
func Parse(src []byte, filename string, format Format) ([]rules.Rule, error) {
	switch format {
	case FormatHCL:
		return ParseHCL(src, filename)
	case FormatYAML:
		return ParseYAML(src, filename)
	case FormatJSON:
		return parseJSON(src, filename)
	default:
		return nil, errors.Input(fmt.Sprintf("unknown rule file format %q", format))
	}
}

// Write encodes a rule set
func Write(w io.Writer, rs []rules.Rule, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatHCL:
		data = WriteHCL(rs)
	case FormatYAML:
		data, err = WriteYAML(rs)
	case FormatJSON:
		data, err = json.MarshalIndent(jsonFile{Rules: rs}, "", "  ")
		data = append(data, '\n')
	default:
		return errors.Input(fmt.Sprintf("unknown rule file format %q", format))
	}
	if err != nil {
		return errors.Internal("failed to encode rules", err)
	}

	_, err = w.Write(data)
	return err
}

type jsonFile struct {
	Rules []rules.Rule `json:"rules"`
}

func parseJSON(src []byte, filename string) ([]rules.Rule, error) {
	var f jsonFile
	if err := json.Unmarshal(src, &f); err != nil {
		return nil, errors.Parsing("invalid JSON rule file", err).WithContext("file", filename)
	}
	return f.Rules, nil
}

// parseRef reads "variable.term"
func parseRef(s string) (rules.Ref, error) {
	v, t, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || v == "" || t == "" {
		return rules.Ref{}, fmt.Errorf("%q is not of the form variable.term", s)
	}
	return rules.Ref{Variable: v, Term: t}, nil
}
