package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

// AliasFile is the on-disk alias document. Each group accepts either a list
// of {canonical, variants} items or a canonical -> [variants] mapping.
type AliasFile struct {
	Teams     AliasGroup `yaml:"teams"`
	Countries AliasGroup `yaml:"countries"`
}

// Entries returns teams then countries, in file order.
func (f AliasFile) Entries() []teamname.Entry {
	out := make([]teamname.Entry, 0, len(f.Teams)+len(f.Countries))
	out = append(out, f.Teams...)
	out = append(out, f.Countries...)
	return out
}

type AliasGroup []teamname.Entry

func (g *AliasGroup) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []teamname.Entry
		if err := node.Decode(&entries); err != nil {
			return err
		}
		*g = entries
	case yaml.MappingNode:
		entries := make([]teamname.Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var variants []string
			if err := node.Content[i+1].Decode(&variants); err != nil {
				var single string
				if err2 := node.Content[i+1].Decode(&single); err2 != nil {
					return fmt.Errorf("aliases for %q: %w", node.Content[i].Value, err)
				}
				variants = []string{single}
			}
			entries = append(entries, teamname.Entry{Canonical: node.Content[i].Value, Variants: variants})
		}
		*g = entries
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: alias group must be a list or a mapping", node.Line)
		}
		*g = nil
	default:
		return fmt.Errorf("line %d: alias group must be a list or a mapping", node.Line)
	}
	return nil
}

// LoadAliases reads alias entries from a YAML/JSON or CSV file. An empty
// path selects the built-in data.
func LoadAliases(path string) ([]teamname.Entry, error) {
	if path == "" {
		return teamname.DefaultEntries(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		entries, err := parseAliasCSV(f)
		if err != nil {
			return nil, fmt.Errorf("parse aliases %s: %w", path, err)
		}
		return entries, nil
	}

	var doc AliasFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return doc.Entries(), nil
}

// parseAliasCSV reads alias,canonical rows. A header naming both columns may
// appear in any order; rows starting with '#' are skipped.
func parseAliasCSV(r io.Reader) ([]teamname.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	aliasIdx, canonIdx := 0, 1
	if len(records) > 0 {
		header := make(map[string]int, len(records[0]))
		for i, h := range records[0] {
			header[strings.ToLower(strings.TrimSpace(h))] = i
		}
		a, okA := header["alias"]
		c, okC := header["canonical"]
		if okA && okC {
			aliasIdx, canonIdx = a, c
			records = records[1:]
		}
	}

	var entries []teamname.Entry
	for _, rec := range records {
		if len(rec) <= aliasIdx || len(rec) <= canonIdx {
			continue
		}
		alias := strings.TrimSpace(rec[aliasIdx])
		canonical := strings.TrimSpace(rec[canonIdx])
		if alias == "" || canonical == "" {
			continue
		}
		entries = append(entries, teamname.Entry{Canonical: canonical, Variants: []string{alias}})
	}
	return entries, nil
}

// SaveAliases writes doc as YAML, creating parent directories.
func SaveAliases(path string, doc AliasFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create aliases dir: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal aliases: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write aliases: %w", err)
	}
	return nil
}
