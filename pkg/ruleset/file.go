package ruleset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sift-hq/sift/pkg/rql/parser"
)

// ParseMetrics receives the outcome of each rule set compilation.
type ParseMetrics interface {
	RecordParse(status string, duration time.Duration)
}

// FileSource loads rule sets from YAML files on disk.
type FileSource struct {
	path    string
	parser  *parser.Parser
	logger  *slog.Logger
	metrics ParseMetrics
}

// NewFileSource creates a file-based rule set source. The path can be a
// single file or a directory; for a directory every .yaml and .yml file is
// loaded. A nil parser uses the default nesting limit.
func NewFileSource(path string, p *parser.Parser, logger *slog.Logger) *FileSource {
	if p == nil {
		p = &parser.Parser{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		parser: p,
		logger: logger.With("component", "ruleset.source"),
	}
}

// WithMetrics attaches a parse metrics sink and returns the source.
func (s *FileSource) WithMetrics(m ParseMetrics) *FileSource {
	s.metrics = m
	return s
}

// Load reads and compiles all rule sets from the configured path.
func (s *FileSource) Load() ([]*RuleSet, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	var sets []*RuleSet
	if info.IsDir() {
		sets, err = s.loadDirectory()
	} else {
		var set *RuleSet
		set, err = s.loadFile(s.path)
		if set != nil {
			sets = []*RuleSet{set}
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded rule sets",
		"path", s.path,
		"set_count", len(sets),
	)

	return sets, nil
}

// loadDirectory loads every YAML rule set file in a directory.
func (s *FileSource) loadDirectory() ([]*RuleSet, error) {
	var sets []*RuleSet

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		set, err := s.loadFile(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sets, nil
}

// loadFile reads, unmarshals, and compiles one rule set file.
func (s *FileSource) loadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set file %q: %w", path, err)
	}

	var set RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse rule set file %q: %w", path, err)
	}

	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	start := time.Now()
	compileErr := set.Compile(s.parser)
	if s.metrics != nil {
		status := "ok"
		if compileErr != nil {
			status = "error"
		}
		s.metrics.RecordParse(status, time.Since(start))
	}
	if compileErr != nil {
		return nil, fmt.Errorf("file %q: %w", path, compileErr)
	}

	s.logger.Debug("loaded rule set",
		"file", path,
		"name", set.Name,
		"rule_count", len(set.Rules),
	)

	return &set, nil
}
