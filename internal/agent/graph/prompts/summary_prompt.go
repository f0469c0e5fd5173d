package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/summary_prompt.txt
var summaryPrompt string

// RenderSummary renders the closing instruction asking the response model to
// synthesize the tool outputs already present in the conversation.
func RenderSummary(ctx context.Context, entity string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(summaryPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Entity": entity,
	})
	if err != nil {
		return "", fmt.Errorf("summary prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("summary prompt render: empty result")
	}
	return msgs[0].Content, nil
}
