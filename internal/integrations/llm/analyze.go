package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"nippo/internal/domain"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

const analysisSystemPrompt = `You analyze Japanese daily work reports. ` +
	`Respond with a single JSON object and nothing else: ` +
	`{"summary": string (one sentence, Japanese), ` +
	`"suggestions": string[] (actionable advice, Japanese), ` +
	`"sentiment": "positive" | "neutral" | "concerned"}`

// Analyzer wraps the Anthropic analysis call. It never returns an error:
// any failure degrades to a fixed fallback payload.
type Analyzer struct {
	apiKey string
	model  string
}

func NewAnalyzer(apiKey, model string) *Analyzer {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &Analyzer{apiKey: apiKey, model: model}
}

func (a *Analyzer) Analyze(ctx context.Context, reportText string) domain.AIAnalysis {
	responseText, err := a.call(ctx, reportText)
	if err != nil {
		log.Printf("llm analyze error: %v", err)
		return FallbackAnalysis()
	}

	analysis, err := parseAnalysis(responseText)
	if err != nil {
		log.Printf("llm analyze parse error: %v", err)
		return FallbackAnalysis()
	}
	return analysis
}

func (a *Analyzer) call(ctx context.Context, reportText string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(a.apiKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analysisSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Analyze this daily report:\n\n" + reportText)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm analyze response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

func parseAnalysis(responseText string) (domain.AIAnalysis, error) {
	cleaned := strings.TrimSpace(responseText)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis domain.AIAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return domain.AIAnalysis{}, fmt.Errorf("parsing analysis JSON: %w", err)
	}
	if analysis.Summary == "" {
		return domain.AIAnalysis{}, fmt.Errorf("analysis response missing summary")
	}
	switch analysis.Sentiment {
	case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentConcerned:
	default:
		analysis.Sentiment = domain.SentimentNeutral
	}
	return analysis, nil
}

// FallbackAnalysis is returned whenever the external call fails for any
// reason; the failure is never surfaced to the caller.
func FallbackAnalysis() domain.AIAnalysis {
	return domain.AIAnalysis{
		Summary:     "分析できませんでした。",
		Suggestions: []string{"継続して業務に取り組んでください。"},
		Sentiment:   domain.SentimentNeutral,
	}
}
