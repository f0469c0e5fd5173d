package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/voyago-poc/server/internal/agent/model"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	Client          *genai.Client
	ExtractorConfig *model.ExtractorModelConfig
	RespConfig      *model.ResponseModelConfig
}

// ChatModels holds the extraction and response chat models. Both are exposed
// through the Eino model interfaces so tests can substitute scripted fakes.
type ChatModels struct {
	Extractor          einomodel.BaseChatModel
	Response           einomodel.ToolCallingChatModel
	ExtractorModelName string
	ResponseModelName  string
}

// NewChatModels creates the extractor and response chat models on a shared
// Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("genai client is nil")
	}

	extractor, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.ExtractorConfig.Model,
		Temperature: &config.ExtractorConfig.Temperature,
		MaxTokens:   &config.ExtractorConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating extractor model")
		return nil, fmt.Errorf("error creating extractor model: %w", err)
	}

	response, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating response model")
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	return &ChatModels{
		Extractor:          extractor,
		Response:           response,
		ExtractorModelName: config.ExtractorConfig.Model,
		ResponseModelName:  config.RespConfig.Model,
	}, nil
}

// BindTools attaches the tool catalog to the response model so it can emit
// tool-invocation requests.
func (cm *ChatModels) BindTools(toolInfos []*schema.ToolInfo) error {
	bound, err := cm.Response.WithTools(toolInfos)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	cm.Response = bound
	return nil
}
