package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain city", content: "Paris", want: "Paris"},
		{name: "quoted reply", content: `"Tokyo"`, want: "Tokyo"},
		{name: "single quoted", content: "'New York'", want: "New York"},
		{name: "trailing period", content: "Paris.", want: "Paris"},
		{name: "surrounding whitespace", content: "  London \n", want: "London"},
		{name: "lowercase input", content: "paris", want: "Paris"},
		{name: "all caps", content: "PARIS", want: "Paris"},
		{name: "hyphenated", content: "los-angeles", want: "Los Angeles"},
		{name: "none sentinel", content: "None", want: ""},
		{name: "none lowercase", content: "none", want: ""},
		{name: "unknown sentinel", content: "Unknown", want: ""},
		{name: "not applicable", content: "N/A", want: ""},
		{name: "empty reply", content: "", want: ""},
		{name: "whitespace only", content: "   ", want: ""},
		{name: "model rambling rejected", content: "The user is asking about Paris, which is in France", want: ""},
		{name: "digits rejected", content: "Area 51", want: ""},
		{name: "json blob rejected", content: `{"city":"Paris"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseExtraction(tt.content))
		})
	}
}

func TestParseExtractionRejectsOverlongReply(t *testing.T) {
	t.Parallel()

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcd "
	}
	assert.Equal(t, "", ParseExtraction(long))
}

func TestFormatDestination(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Paris", FormatDestination("PARIS"))
	assert.Equal(t, "New York", FormatDestination("new york"))
	assert.Equal(t, "Los Angeles", FormatDestination("los-angeles"))
	assert.Equal(t, "", FormatDestination(""))
}
