package mockapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	logx "github.com/voyago-poc/server/pkg/logger"
)

// SearchAPI simulates a web search engine for destination information.
type SearchAPI struct {
	Latency time.Duration
}

func NewSearchAPI(latency time.Duration) *SearchAPI {
	return &SearchAPI{Latency: latency}
}

var searchSnippets = map[string]string{
	"paris": "Paris, the capital of France, is one of the most iconic cities in the world. " +
		"Known for the Eiffel Tower, world-class museums like the Louvre, charming cafes, " +
		"and romantic Seine River cruises. Paris is the 4th most visited city globally with " +
		"around 30 million visitors annually. Key attractions include Notre-Dame Cathedral, " +
		"Arc de Triomphe, and Sacre-Coeur.",
	"tokyo": "Tokyo, Japan's capital, is a vibrant metropolis seamlessly blending ancient temples " +
		"with cutting-edge technology. Famous for sushi, anime culture, efficient transportation, " +
		"and the iconic Shibuya Crossing. With over 37 million residents, Tokyo is the world's " +
		"most populous metropolitan area. Key areas include Shibuya, Shinjuku, Asakusa, and Akihabara.",
	"new york": "New York City, the city that never sleeps, is a global center of finance, art, " +
		"and entertainment. Home to Broadway, Central Park, the Statue of Liberty, and iconic " +
		"skyscrapers like the Empire State Building. NYC attracts over 60 million visitors annually.",
	"london": "London, the capital of the United Kingdom, is a historic city blending medieval " +
		"architecture with modern innovation. Home to Big Ben, Tower of London, Buckingham Palace, " +
		"and the British Museum. London attracts over 18 million international visitors annually.",
	"sydney": "Sydney, Australia's largest city, is famous for the Sydney Opera House and Harbour " +
		"Bridge. Known for stunning beaches like Bondi and Coogee, laid-back beach culture, and " +
		"outdoor activities.",
	"barcelona": "Barcelona, Catalonia's capital, is renowned for its unique architecture, especially " +
		"the works of Antoni Gaudi like the Sagrada Familia. The city blends Gothic quarters, " +
		"beaches, and vibrant neighborhoods like La Rambla.",
}

// Search returns a free-text result for the query, matching known city names
// in the query text and falling back to a generic travel blurb.
func (s *SearchAPI) Search(ctx context.Context, query string) (string, error) {
	if err := sleep(ctx, s.Latency); err != nil {
		return "", err
	}

	queryLower := strings.ToLower(query)
	for city, snippet := range searchSnippets {
		if strings.Contains(queryLower, city) {
			return snippet, nil
		}
	}

	logx.Debug().Str("query", query).Msg("search api: no entry, returning generic response")
	return fmt.Sprintf("Search results for: %s\n\n"+
		"This is a beautiful and interesting destination with rich history, culture, and attractions. "+
		"The city offers diverse dining, accommodations, and entertainment options for visitors. "+
		"Consider visiting popular landmarks, museums, parks, and local neighborhoods to experience "+
		"the authentic charm of this location.", query), nil
}
