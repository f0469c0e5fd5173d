package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/voyago-poc/server/internal/agent/model"
)

// Tool names form a closed enumeration; anything else is rejected at the
// registry boundary before dispatch.
const (
	ToolGetWeather = "get_weather"
	ToolGetImages  = "get_images"
	ToolWebSearch  = "web_search"
)

// ErrUnknownTool is returned when a requested tool name is not in the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// Provider contracts for the side-effecting operations behind the tools.
// Constructed once at process start and injected; safe for concurrent use.
type (
	WeatherProvider interface {
		Forecast(ctx context.Context, city string) ([]model.ForecastPoint, error)
	}
	ImageProvider interface {
		CityImages(ctx context.Context, city string) ([]string, error)
	}
	SearchProvider interface {
		Search(ctx context.Context, query string) (string, error)
	}
)

type weatherArgs struct {
	City string `json:"city"`
}

type imageArgs struct {
	City string `json:"city"`
}

type searchArgs struct {
	Query string `json:"query"`
}

// Infos returns the tool catalog bound to the response model so it can emit
// tool-invocation requests.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetWeather,
			Desc: "Fetch current weather and 5-7 day forecast for a city",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city": {
					Type:     schema.String,
					Desc:     "City name (e.g., 'Paris', 'Tokyo', 'New York')",
					Required: true,
				},
			}),
		},
		{
			Name: ToolGetImages,
			Desc: "Retrieve high-quality images of a city for visual context",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city": {
					Type:     schema.String,
					Desc:     "City name to fetch images for",
					Required: true,
				},
			}),
		},
		{
			Name: ToolWebSearch,
			Desc: "Search the web for information about a city",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "Search query about the city",
					Required: true,
				},
			}),
		},
	}
}

// Registry executes tool invocations by name. It is the manual counterpart of
// a prebuilt dispatcher node: the executor node parses raw tool calls, runs
// them through Execute, and assembles the protocol messages itself.
type Registry struct {
	weather WeatherProvider
	images  ImageProvider
	search  SearchProvider
}

func NewRegistry(weather WeatherProvider, images ImageProvider, search SearchProvider) *Registry {
	return &Registry{weather: weather, images: images, search: search}
}

// Execute runs a single tool call. Arguments arrive as the raw JSON string
// carried by the tool-invocation request. The result is the tool's native
// typed value: []model.ForecastPoint, []string, or string.
func (r *Registry) Execute(ctx context.Context, name, arguments string) (any, error) {
	switch name {
	case ToolGetWeather:
		var args weatherArgs
		if err := unmarshalArgs(arguments, &args); err != nil {
			return nil, err
		}
		return r.weather.Forecast(ctx, args.City)

	case ToolGetImages:
		var args imageArgs
		if err := unmarshalArgs(arguments, &args); err != nil {
			return nil, err
		}
		return r.images.CityImages(ctx, args.City)

	case ToolWebSearch:
		var args searchArgs
		if err := unmarshalArgs(arguments, &args); err != nil {
			return nil, err
		}
		return r.search.Search(ctx, args.Query)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func unmarshalArgs(arguments string, out any) error {
	arguments = strings.TrimSpace(arguments)
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), out); err != nil {
		return fmt.Errorf("decode tool arguments: %w", err)
	}
	return nil
}

// MarshalResult serializes a tool result to the canonical text form carried
// in tool-result messages: lists and records as JSON, scalars as JSON strings.
func MarshalResult(result any) (string, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}

// MarshalError encodes a tool failure as the error payload visible to any
// subsequent reasoning step. Never fails.
func MarshalError(name string, err error) string {
	b, _ := json.Marshal(map[string]string{
		"error": err.Error(),
		"tool":  name,
	})
	return string(b)
}

// ParseForecast recovers the structured forecast from a serialized
// tool-result entry.
func ParseForecast(content string) ([]model.ForecastPoint, error) {
	var points []model.ForecastPoint
	if err := json.Unmarshal([]byte(content), &points); err != nil {
		return nil, fmt.Errorf("decode forecast result: %w", err)
	}
	return points, nil
}

// ParseGallery recovers the URL list from a serialized tool-result entry.
func ParseGallery(content string) ([]string, error) {
	var urls []string
	if err := json.Unmarshal([]byte(content), &urls); err != nil {
		return nil, fmt.Errorf("decode gallery result: %w", err)
	}
	return urls, nil
}
