package model

// ================ Config ================

type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"15m"`
}

type ExtractorModelConfig struct {
	Model       string  `envconfig:"EXTRACTOR_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"EXTRACTOR_MAX_TOKENS" default:"200"`
	Temperature float32 `envconfig:"EXTRACTOR_TEMPERATURE" default:"0"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"500"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0"`
}

type CacheConfig struct {
	// Threshold is the distance cutoff for a knowledge-store hit. 0.55 accepts
	// near-duplicate names and rejects semantically distant ones; tune against
	// the embedding model in use.
	Threshold  float64 `envconfig:"CACHE_DISTANCE_THRESHOLD" default:"0.55"`
	EmbedModel string  `envconfig:"CACHE_EMBED_MODEL" default:"gemini-embedding-001"`
}

type MockAPIConfig struct {
	WeatherLatencyMS int `envconfig:"MOCK_WEATHER_LATENCY_MS" default:"300"`
	ImageLatencyMS   int `envconfig:"MOCK_IMAGE_LATENCY_MS" default:"300"`
	SearchLatencyMS  int `envconfig:"MOCK_SEARCH_LATENCY_MS" default:"400"`
}
