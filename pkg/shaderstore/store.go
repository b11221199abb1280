// Package shaderstore defines the persistence collaborator for saved shader
// graphs. Persistence is explicitly out of scope for this module (the
// compiler core has no I/O); Store exists so a caller can plug in whatever
// backend their deployment needs without the compiler package knowing about
// it. InMemoryStore is a reference implementation for tests, not a
// production backend.
package shaderstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ShaderGraph is a saved graph document together with its storage metadata.
// Graph holds the raw JSON as received from the client; decoding it into
// types.Graph is pkg/intake's job, not the store's.
type ShaderGraph struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Graph       json.RawMessage `json:"graph"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ShaderSummary is a lightweight reference for listing saved graphs.
type ShaderSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store defines the interface for shader graph persistence. Implementations
// are expected to validate nothing beyond what's here — graph-shape
// validation belongs to pkg/intake, run before Save and after Load.
type Store interface {
	// Save creates a new shader graph and returns its generated ID.
	Save(name, description string, graph json.RawMessage) (string, error)

	// Update replaces an existing shader graph's fields.
	Update(id, name, description string, graph json.RawMessage) error

	// Load retrieves a shader graph by ID.
	Load(id string) (*ShaderGraph, error)

	// Delete removes a shader graph by ID.
	Delete(id string) error

	// List returns summaries of all saved shader graphs.
	List() []ShaderSummary

	// Exists reports whether a shader graph with the given ID is stored.
	Exists(id string) bool
}

// InMemoryStore implements Store using an in-memory map. It is suitable for
// tests and local development; it is not durable across process restarts.
type InMemoryStore struct {
	graphs map[string]*ShaderGraph
	mu     sync.RWMutex
}

// NewInMemoryStore creates a new in-memory shader graph store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		graphs: make(map[string]*ShaderGraph),
	}
}

// Save creates a new shader graph and returns its ID.
func (s *InMemoryStore) Save(name, description string, graph json.RawMessage) (string, error) {
	if name == "" {
		return "", fmt.Errorf("shader name is required")
	}

	if len(graph) == 0 {
		return "", fmt.Errorf("shader graph is required")
	}

	var temp interface{}
	if err := json.Unmarshal(graph, &temp); err != nil {
		return "", fmt.Errorf("invalid shader graph: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()

	s.graphs[id] = &ShaderGraph{
		ID:          id,
		Name:        name,
		Description: description,
		Graph:       graph,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return id, nil
}

// Update replaces an existing shader graph's fields.
func (s *InMemoryStore) Update(id, name, description string, graph json.RawMessage) error {
	if id == "" {
		return fmt.Errorf("shader ID is required")
	}

	if name == "" {
		return fmt.Errorf("shader name is required")
	}

	if len(graph) == 0 {
		return fmt.Errorf("shader graph is required")
	}

	var temp interface{}
	if err := json.Unmarshal(graph, &temp); err != nil {
		return fmt.Errorf("invalid shader graph: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.graphs[id]
	if !ok {
		return fmt.Errorf("shader graph with ID %s not found", id)
	}

	existing.Name = name
	existing.Description = description
	existing.Graph = graph
	existing.UpdatedAt = time.Now()

	return nil
}

// Load retrieves a shader graph by ID.
func (s *InMemoryStore) Load(id string) (*ShaderGraph, error) {
	if id == "" {
		return nil, fmt.Errorf("shader ID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.graphs[id]
	if !ok {
		return nil, fmt.Errorf("shader graph with ID %s not found", id)
	}

	graphCopy := make(json.RawMessage, len(existing.Graph))
	copy(graphCopy, existing.Graph)

	return &ShaderGraph{
		ID:          existing.ID,
		Name:        existing.Name,
		Description: existing.Description,
		Graph:       graphCopy,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   existing.UpdatedAt,
	}, nil
}

// Delete removes a shader graph by ID.
func (s *InMemoryStore) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("shader ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[id]; !ok {
		return fmt.Errorf("shader graph with ID %s not found", id)
	}

	delete(s.graphs, id)
	return nil
}

// List returns summaries of all saved shader graphs.
func (s *InMemoryStore) List() []ShaderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]ShaderSummary, 0, len(s.graphs))
	for _, g := range s.graphs {
		summaries = append(summaries, ShaderSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		})
	}

	return summaries
}

// Exists reports whether a shader graph with the given ID is stored.
func (s *InMemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.graphs[id]
	return ok
}
