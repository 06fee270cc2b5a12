package summarization

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-lifeline/types"
)

const maxDescriptionLength = 15000 // Rough character limit for prompt

// OpenAISummarizer rewrites the summary narrative with a chat completion
// while keeping the deterministic insights, recommendations and confidence
// from the template. API failures surface to the orchestrator, which treats
// them as a recoverable enrichment failure.
type OpenAISummarizer struct {
	client *openai.Client
}

func NewOpenAISummarizer(client *openai.Client) *OpenAISummarizer {
	return &OpenAISummarizer{client: client}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, d types.Disaster) (types.AISummary, error) {
	result, err := TemplateSummarizer{}.Summarize(ctx, d)
	if err != nil {
		return types.AISummary{}, err
	}

	description := d.Description
	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength]
	}

	prompt := fmt.Sprintf(
		"Summarize the following %s report for an emergency response operator. Severity: %s. Approximately %d people affected near [%.4f, %.4f]. Focus on key impacts and the overall situation. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:",
		d.DisasterType, d.Severity, d.AffectedPopulation, d.Latitude, d.Longitude, description,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes disaster reports for emergency responders concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)
	if err != nil {
		return types.AISummary{}, fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return types.AISummary{}, fmt.Errorf("openai returned empty response or choices")
	}

	result.Summary = strings.TrimSpace(resp.Choices[0].Message.Content)
	result.ModelUsed = openai.GPT4oMini
	return result, nil
}
