package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a configured feed
type Source struct {
	Name string `yaml:"name"`
	Feed string `yaml:"feed"`
	Icon string `yaml:"icon"`
}

// LoadSources read the feeds file, yaml by extension, csv otherwise
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading feeds: %w", err)
	}
	defer f.Close()

	var sources []Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sources, err = ParseYAMLSources(f)
	default:
		sources, err = ParseCSVSources(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing feeds %s: %w", path, err)
	}
	return sources, nil
}

// ParseCSVSources parse lines of name,feed[,icon]
func ParseCSVSources(r io.Reader) ([]Source, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var sources []Source
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 || len(record) > 3 {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected name,feed[,icon], got %d fields", line, len(record))
		}
		source := Source{Name: strings.TrimSpace(record[0]), Feed: strings.TrimSpace(record[1])}
		if len(record) == 3 {
			source.Icon = strings.TrimSpace(record[2])
		}
		sources = append(sources, source)
	}
	return sources, validate(sources)
}

// ParseYAMLSources parse a yaml list of sources
func ParseYAMLSources(r io.Reader) ([]Source, error) {
	var sources []Source
	if err := yaml.NewDecoder(r).Decode(&sources); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return sources, validate(sources)
}

func validate(sources []Source) error {
	for i, s := range sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.Feed == "" {
			return fmt.Errorf("source %q: feed is required", s.Name)
		}
		u, err := url.Parse(s.Feed)
		if err != nil {
			return fmt.Errorf("source %q: invalid feed url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: feed scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	}
	return nil
}
