package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"suggestbox/internal/domain"
)

// Corpus is the on-disk suggestion list served by StaticSource.
//
//	type: list
//	entries:
//	  - apple
//	  - text: apricot
//	    id: 42
type Corpus struct {
	Type    string        `yaml:"type"`
	Entries []CorpusEntry `yaml:"entries"`
}

// CorpusEntry is a corpus line; plain scalars are shorthand for {text: ...}
type CorpusEntry struct {
	domain.Suggestion
}

// UnmarshalYAML accepts both the scalar and the mapping form
func (e *CorpusEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Text = node.Value
		return nil
	}

	var raw struct {
		Text string `yaml:"text"`
		ID   any    `yaml:"id"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	e.Text = raw.Text
	if raw.ID != nil {
		e.ID = domain.ItemID(fmt.Sprint(raw.ID))
	}
	return nil
}

// Suggestions returns the corpus entries as suggestions
func (c *Corpus) Suggestions() []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(c.Entries))
	for _, e := range c.Entries {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		out = append(out, e.Suggestion)
	}
	return out
}

// LoadCorpus reads a YAML corpus file
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return &c, nil
}

// StaticSource answers queries from an in-memory list.
// Matching is a case-insensitive substring test in corpus order.
type StaticSource struct {
	mu      sync.RWMutex
	entries []domain.Suggestion
	mode    domain.DisplayMode
	limit   int
}

// NewStaticSource creates a source over entries; limit <= 0 means unlimited
func NewStaticSource(entries []domain.Suggestion, mode domain.DisplayMode, limit int) *StaticSource {
	return &StaticSource{
		entries: entries,
		mode:    mode,
		limit:   limit,
	}
}

// Replace swaps the corpus
func (s *StaticSource) Replace(entries []domain.Suggestion) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// SetMode changes the display mode reported with results
func (s *StaticSource) SetMode(mode domain.DisplayMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// Mode returns the display mode reported with results
func (s *StaticSource) Mode() domain.DisplayMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Len returns the corpus size
func (s *StaticSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Suggest implements Source
func (s *StaticSource) Suggest(ctx context.Context, query string) (domain.Results, error) {
	if err := ctx.Err(); err != nil {
		return domain.Results{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := domain.Results{Query: query, Mode: s.mode}

	for _, e := range s.entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Text), needle) {
			continue
		}
		results.Suggestions = append(results.Suggestions, e)
		if s.limit > 0 && len(results.Suggestions) >= s.limit {
			break
		}
	}
	return results, nil
}
