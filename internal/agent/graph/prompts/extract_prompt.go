package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/extract_prompt.txt
var extractPrompt string

// RenderExtract renders the destination-extraction prompt for the current
// user message via the Eino prompt component (emits prompt callbacks). The
// extractor only ever sees the newest message, never the history.
func RenderExtract(ctx context.Context, query string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(extractPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Query": query,
	})
	if err != nil {
		return "", fmt.Errorf("extract prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("extract prompt render: empty result")
	}
	return msgs[0].Content, nil
}
