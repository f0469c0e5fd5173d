package knowledge

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/voyago-poc/server/internal/agent/model"
	errx "github.com/voyago-poc/server/internal/core/error"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

type document struct {
	id       string
	text     string
	metadata map[string]string
	vector   []float64
}

// Store is an in-memory semantic index over embedded documents. Query returns
// the nearest neighbor by cosine distance (1 - cosine similarity), matching
// the dissimilarity contract of the cache-check stage: lower is more similar.
// Safe for concurrent use across conversations.
type Store struct {
	mu       sync.RWMutex
	embedder Embedder
	docs     []document
}

func NewStore(embedder Embedder) *Store {
	return &Store{embedder: embedder}
}

// Add embeds the text and indexes it under the given id.
func (s *Store) Add(ctx context.Context, id, text string, metadata map[string]string) error {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed document %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].id == id {
			s.docs[i] = document{id: id, text: text, metadata: metadata, vector: vec}
			return nil
		}
	}
	s.docs = append(s.docs, document{id: id, text: text, metadata: metadata, vector: vec})
	return nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Query returns the nearest indexed document for the text, or nil when the
// index is empty.
func (s *Store) Query(ctx context.Context, text string) (*model.KnowledgeMatch, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, errx.New(err, http.StatusBadGateway, errx.StoreErrorMessage)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) == 0 {
		return nil, nil
	}

	best := -1
	bestDist := math.MaxFloat64
	for i := range s.docs {
		d := cosineDistance(vec, s.docs[i].vector)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	doc := s.docs[best]
	logx.Debug().
		Str("query", text).
		Str("match", doc.id).
		Float64("distance", bestDist).
		Msg("knowledge store query")

	return &model.KnowledgeMatch{
		Distance:   bestDist,
		StoredText: doc.text,
		Metadata:   doc.metadata,
	}, nil
}

// FetchFact returns the stored text of the nearest document, or "" when the
// index is empty.
func (s *Store) FetchFact(ctx context.Context, text string) (string, error) {
	match, err := s.Query(ctx, text)
	if err != nil {
		return "", err
	}
	if match == nil {
		return "", nil
	}
	return match.StoredText, nil
}

func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

var _ model.KnowledgeStore = (*Store)(nil)
