package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/voyago-poc/server/internal/agent/graph"
	"github.com/voyago-poc/server/internal/agent/graph/tools"
	"github.com/voyago-poc/server/internal/agent/knowledge"
	"github.com/voyago-poc/server/internal/agent/model"
	"github.com/voyago-poc/server/internal/agent/repo"
	"github.com/voyago-poc/server/internal/core"
	"github.com/voyago-poc/server/internal/mockapi"
	logx "github.com/voyago-poc/server/pkg/logger"
	pkgredis "github.com/voyago-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the travel assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey string `envconfig:"GEMINI_API_KEY" required:"true"`

	// Agent configs
	Extractor    model.ExtractorModelConfig
	Response     model.ResponseModelConfig
	Cache        model.CacheConfig
	Conversation model.ConversationConfig
	MockAPI      model.MockAPIConfig
}

func main() {
	fmt.Println("Travel assistant demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(os.Getenv("ENVIRONMENT"))})

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  envCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	// ====================================================
	// Knowledge store seeded with the demo city facts
	store := knowledge.NewStore(knowledge.NewGeminiEmbedder(client, envCfg.Cache.EmbedModel))
	if err := knowledge.Seed(ctx, store); err != nil {
		log.Fatalf("Failed to seed knowledge store: %v", err)
	}

	// Simulated upstream services
	registry := tools.NewRegistry(
		mockapi.NewWeatherAPI(time.Duration(envCfg.MockAPI.WeatherLatencyMS)*time.Millisecond),
		mockapi.NewImageAPI(time.Duration(envCfg.MockAPI.ImageLatencyMS)*time.Millisecond),
		mockapi.NewSearchAPI(time.Duration(envCfg.MockAPI.SearchLatencyMS)*time.Millisecond),
	)

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	workflow, err := graph.BuildTravelWorkflow(ctx, graph.Config{
		Client:          client,
		ExtractorModel:  envCfg.Extractor,
		ResponseModel:   envCfg.Response,
		Cache:           envCfg.Cache,
		KnowledgeStore:  store,
		CheckpointStore: repo.NewRedisCheckpointRepository(rdb, ttl),
		Registry:        registry,
	})
	if err != nil {
		log.Fatalf("Failed to build workflow: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Known destination, should hit the knowledge cache",
			query:       "Tell me about Paris",
		},
		{
			description: "Unknown destination, should take the tool-calling path",
			query:       "What do you know about Atlantis?",
		},
		{
			description: "New destination mid-conversation",
			query:       "What about Tokyo?",
		},
		{
			description: "Follow-up without naming a destination",
			query:       "And what is the weather like there?",
		},
	}

	conversationID := uuid.NewString()

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)
		fmt.Println("Processing...")

		st, err := workflow.Run(ctx, model.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to run workflow for test %d: %v", i+1, err)
		}

		printResult(st.FinalResult)

		// slight delay between tests for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("\nAll demo turns completed successfully!")
}

func printResult(res *model.TravelResult) {
	if res == nil {
		fmt.Println("(no result produced)")
		return
	}

	source := "live tools"
	if res.SourceIsCache {
		source = "knowledge cache"
	}
	fmt.Printf("Source: %s\n", source)
	fmt.Printf("Summary: %s\n", res.Summary)

	if len(res.Forecast) > 0 {
		fmt.Println("Forecast:")
		for _, p := range res.Forecast {
			fmt.Printf("  %s  %.0f°C  %-7s humidity %.0f%%\n", p.Date, p.Temperature, p.Condition, p.Humidity)
		}
	}
	if len(res.Gallery) > 0 {
		fmt.Println("Gallery:")
		for _, u := range res.Gallery {
			fmt.Printf("  %s\n", u)
		}
	}
	if res.Error != "" {
		fmt.Printf("Note: partial degradation during this turn: %s\n", res.Error)
	}
	fmt.Println("─────────────────────────────────────────────")
}
