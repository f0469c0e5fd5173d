package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago-poc/server/internal/agent/model"
)

type fakeWeather struct {
	gotCity string
	points  []model.ForecastPoint
	err     error
}

func (f *fakeWeather) Forecast(ctx context.Context, city string) ([]model.ForecastPoint, error) {
	f.gotCity = city
	return f.points, f.err
}

type fakeImages struct {
	gotCity string
	urls    []string
	err     error
}

func (f *fakeImages) CityImages(ctx context.Context, city string) ([]string, error) {
	f.gotCity = city
	return f.urls, f.err
}

type fakeSearch struct {
	gotQuery string
	snippet  string
	err      error
}

func (f *fakeSearch) Search(ctx context.Context, query string) (string, error) {
	f.gotQuery = query
	return f.snippet, f.err
}

func TestRegistryExecuteDispatch(t *testing.T) {
	t.Parallel()

	weather := &fakeWeather{points: []model.ForecastPoint{{Date: "2026-08-25", Temperature: 22, Condition: "Sunny", Humidity: 60}}}
	images := &fakeImages{urls: []string{"https://example.com/a.jpg"}}
	search := &fakeSearch{snippet: "Paris is the capital of France."}
	reg := NewRegistry(weather, images, search)
	ctx := context.Background()

	got, err := reg.Execute(ctx, ToolGetWeather, `{"city":"Paris"}`)
	require.NoError(t, err)
	assert.Equal(t, weather.points, got)
	assert.Equal(t, "Paris", weather.gotCity)

	got, err = reg.Execute(ctx, ToolGetImages, `{"city":"Tokyo"}`)
	require.NoError(t, err)
	assert.Equal(t, images.urls, got)
	assert.Equal(t, "Tokyo", images.gotCity)

	got, err = reg.Execute(ctx, ToolWebSearch, `{"query":"tell me about Paris"}`)
	require.NoError(t, err)
	assert.Equal(t, search.snippet, got)
	assert.Equal(t, "tell me about Paris", search.gotQuery)
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&fakeWeather{}, &fakeImages{}, &fakeSearch{})

	_, err := reg.Execute(context.Background(), "send_email", `{}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.Contains(t, err.Error(), "send_email")
}

func TestRegistryExecuteMalformedArguments(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&fakeWeather{}, &fakeImages{}, &fakeSearch{})

	_, err := reg.Execute(context.Background(), ToolGetWeather, `{"city":`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode tool arguments")
}

func TestRegistryExecuteEmptyArguments(t *testing.T) {
	t.Parallel()

	weather := &fakeWeather{}
	reg := NewRegistry(weather, &fakeImages{}, &fakeSearch{})

	_, err := reg.Execute(context.Background(), ToolGetWeather, "")
	require.NoError(t, err)
	assert.Equal(t, "", weather.gotCity)
}

func TestMarshalErrorPayload(t *testing.T) {
	t.Parallel()

	payload := MarshalError(ToolGetWeather, errors.New("upstream timeout"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "upstream timeout", decoded["error"])
	assert.Equal(t, ToolGetWeather, decoded["tool"])
}

func TestMarshalResultAndParseForecast(t *testing.T) {
	t.Parallel()

	points := []model.ForecastPoint{
		{Date: "2026-08-25", Temperature: 22, Condition: "Sunny", Humidity: 60},
		{Date: "2026-08-26", Temperature: 19, Condition: "Rainy", Humidity: 80},
	}

	content, err := MarshalResult(points)
	require.NoError(t, err)

	got, err := ParseForecast(content)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestParseGallery(t *testing.T) {
	t.Parallel()

	content, err := MarshalResult([]string{"https://example.com/a.jpg", "https://example.com/b.jpg"})
	require.NoError(t, err)

	urls, err := ParseGallery(content)
	require.NoError(t, err)
	assert.Len(t, urls, 2)

	_, err = ParseGallery(`{"error":"boom"}`)
	assert.Error(t, err)
}

func TestInfosCatalog(t *testing.T) {
	t.Parallel()

	infos := Infos()
	require.Len(t, infos, 3)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{ToolGetWeather, ToolGetImages, ToolWebSearch}, names)
}
