package knowledge

import (
	"context"
	"strings"

	logx "github.com/voyago-poc/server/pkg/logger"
)

// cityFacts are the pre-loaded destination summaries that make up the warm
// cache. Destinations present here take the cached path without any model
// reasoning.
var cityFacts = map[string]string{
	"Paris": `Paris, the capital of France, is one of the most iconic and enchanting cities in the world.
Known worldwide for the majestic Eiffel Tower, world-class museums like the Louvre, charming
cafes, and romantic Seine River cruises. Paris is the 4th most visited city globally with
around 30 million visitors annually. The city is renowned for its exceptional architecture,
rich art heritage, fashion industry leadership, and exquisite gastronomy.

Key attractions include Notre-Dame Cathedral, the Arc de Triomphe, Sacre-Coeur basilica,
and the Palace of Versailles. The city is divided into 20 arrondissements, each with unique
character and attractions. Paris offers world-famous cuisine from Michelin-starred
restaurants to charming bistros.`,

	"Tokyo": `Tokyo, Japan's capital and largest city, is a vibrant metropolis that seamlessly blends
ancient traditions with cutting-edge technology. With over 37 million residents, Tokyo is
the world's most populous metropolitan area. The city is famous for sushi, anime culture,
efficient transportation systems, the iconic Shibuya Crossing, and ultra-modern architecture.

Tokyo offers everything from traditional tea ceremonies in historic temples to neon-lit gaming
districts in Akihabara. Key areas include Shibuya, Shinjuku, Asakusa, and Akihabara. The city
is known for its cleanliness, punctuality, politeness, and exceptional public transportation.`,

	"New York": `New York City, often called "The City That Never Sleeps," is a global center of finance,
art, entertainment, and culture. Home to over 8 million residents, NYC is the most populous
city in the United States. The city attracts over 60 million visitors annually. NYC is famous
for its iconic skyline, Broadway theaters, Central Park, Statue of Liberty, and world-renowned
museums.

The city's five boroughs offer diverse neighborhoods with unique characters and attractions.
Manhattan's iconic landmarks include the Empire State Building, Times Square, One World Trade
Center, and Wall Street.`,
}

// Seed populates the store with the pre-loaded city facts. Idempotent: a
// store that already has documents is left untouched.
func Seed(ctx context.Context, store *Store) error {
	if store.Count() > 0 {
		logx.Debug().Int("count", store.Count()).Msg("knowledge store already seeded")
		return nil
	}

	for city, fact := range cityFacts {
		meta := map[string]string{"city": city, "type": "city_facts", "cached": "true"}
		if err := store.Add(ctx, strings.ToLower(city), strings.TrimSpace(fact), meta); err != nil {
			return err
		}
		logx.Debug().Str("city", city).Msg("seeded knowledge store")
	}
	return nil
}
