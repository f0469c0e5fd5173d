package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder maps keywords to fixed orthogonal-ish vectors so cosine
// distances in tests are deterministic.
type stubEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	for key, vec := range s.vectors {
		if strings.Contains(strings.ToLower(text), key) {
			return vec, nil
		}
	}
	// Texts with no keyword land far from everything.
	return []float64{0, 0, 1}, nil
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{
		vectors: map[string][]float64{
			"paris": {1, 0, 0},
			"tokyo": {0, 1, 0},
			// Close to paris but not identical: distance ~0.003.
			"pariis": {0.99, 0.08, 0},
		},
	}
}

func TestStoreQueryNearestMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore(newStubEmbedder())
	require.NoError(t, store.Add(ctx, "paris", "Paris is the capital of France.", map[string]string{"city": "Paris"}))
	require.NoError(t, store.Add(ctx, "tokyo", "Tokyo blends tradition and technology.", map[string]string{"city": "Tokyo"}))

	match, err := store.Query(ctx, "paris")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Paris is the capital of France.", match.StoredText)
	assert.InDelta(t, 0, match.Distance, 1e-9)
	assert.Equal(t, "Paris", match.Metadata["city"])
}

func TestStoreQueryNearMissDistance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore(newStubEmbedder())
	require.NoError(t, store.Add(ctx, "paris", "Paris fact", nil))

	// Misspelled destination embeds close to the stored one.
	match, err := store.Query(ctx, "pariis")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Less(t, match.Distance, 0.55)

	// Unrelated text is far from everything indexed.
	match, err = store.Query(ctx, "quantum mechanics")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.GreaterOrEqual(t, match.Distance, 0.55)
}

func TestStoreQueryEmptyIndex(t *testing.T) {
	t.Parallel()

	store := NewStore(newStubEmbedder())
	match, err := store.Query(context.Background(), "paris")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestStoreQueryEmbedFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(&stubEmbedder{err: errors.New("embedding quota exceeded")})
	_, err := store.Query(context.Background(), "paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding quota exceeded")
}

func TestStoreAddUpsertsByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore(newStubEmbedder())
	require.NoError(t, store.Add(ctx, "paris", "old paris fact", nil))
	require.NoError(t, store.Add(ctx, "paris", "new paris fact", nil))

	assert.Equal(t, 1, store.Count())

	fact, err := store.FetchFact(ctx, "paris")
	require.NoError(t, err)
	assert.Equal(t, "new paris fact", fact)
}

func TestFetchFactEmptyIndex(t *testing.T) {
	t.Parallel()

	store := NewStore(newStubEmbedder())
	fact, err := store.FetchFact(context.Background(), "paris")
	require.NoError(t, err)
	assert.Equal(t, "", fact)
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore(newStubEmbedder())
	require.NoError(t, Seed(ctx, store))
	assert.Equal(t, len(cityFacts), store.Count())

	require.NoError(t, Seed(ctx, store))
	assert.Equal(t, len(cityFacts), store.Count())
}

func TestSeedMetadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewStore(newStubEmbedder())
	require.NoError(t, Seed(ctx, store))

	match, err := store.Query(ctx, "paris")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Paris", match.Metadata["city"])
	assert.Equal(t, "city_facts", match.Metadata["type"])
	assert.Contains(t, match.StoredText, "Eiffel Tower")
}
