package topics

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"feedstudio/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the editorial topic taxonomy, loaded once from the
// embedded YAML file. Documents reference topics by slug.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]models.Topic
}

// NewRegistry creates a new topic registry and loads the embedded taxonomy
func NewRegistry() (*Registry, error) {
	r := &Registry{
		topics: make(map[string]models.Topic),
	}
	if err := r.loadFile("config/taxonomy.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load topic taxonomy: %w", err)
	}
	return r, nil
}

// loadFile loads one taxonomy YAML file into the registry
func (r *Registry) loadFile(filename string) error {
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var doc struct {
		Topics []models.Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range doc.Topics {
		if t.Slug == "" {
			return fmt.Errorf("topic without slug in %s", filename)
		}
		r.topics[t.Slug] = t
	}

	return nil
}

// Get returns the topic for a slug
func (r *Registry) Get(slug string) (*models.Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.topics[slug]
	if !ok {
		return nil, false
	}
	return &t, true
}

// All returns every topic in the taxonomy
func (r *Registry) All() []models.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		out = append(out, t)
	}
	return out
}
