// cmd/veritas/aicheck.go
package main

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// FreeformAnswer is the parsed output of the AI classifier
type FreeformAnswer struct {
	Verdict Verdict
	Reason  string
	Sources []string
}

const classifierSystemPrompt = `You are a fact-checking assistant. Classify the user's statement and respond in exactly this format:

Verdict: <True|False|Misleading|Other>
Reason: <one short paragraph explaining the verdict>
Sources: <list of source names or URLs, one per line; write "none" if you have no sources>

Do not add anything outside this template.`

const missingReasonPlaceholder = "No reasoning provided."

// AIClient classifies statements through a chat-completion service
type AIClient struct {
	client *openai.Client
	model  string
}

// NewAIClient creates an AI classification client
func NewAIClient(apiKey, model string) *AIClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &AIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Classify asks the completion service for a templated verdict on the
// statement. The response is parsed best-effort; only a transport failure
// or a completely empty completion is an error.
func (ai *AIClient) Classify(ctx context.Context, statement string) (*FreeformAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultHTTPTimeout)
	defer cancel()

	resp, err := ai.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       ai.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: statement},
		},
	})
	if err != nil {
		return nil, NewQueryError(ErrCodeOpenAI, "completion request failed", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, NewQueryError(ErrCodeOpenAI, "completion returned no content", nil)
	}

	answer := ParseClassifierOutput(resp.Choices[0].Message.Content)
	return &answer, nil
}

// ParseClassifierOutput extracts the Verdict/Reason/Sources fields from the
// templated completion text. The upstream service does not guarantee the
// template, so each field degrades independently: a missing verdict becomes
// Other, a missing reason becomes a placeholder, missing sources become an
// empty list.
func ParseClassifierOutput(content string) FreeformAnswer {
	answer := FreeformAnswer{
		Verdict: VerdictOther,
		Reason:  missingReasonPlaceholder,
	}

	lines := strings.Split(content, "\n")
	inSources := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "verdict:"):
			inSources = false
			answer.Verdict = ParseVerdict(trimmed[len("verdict:"):])
		case strings.HasPrefix(lower, "reason:"):
			inSources = false
			if reason := strings.TrimSpace(trimmed[len("reason:"):]); reason != "" {
				answer.Reason = reason
			}
		case strings.HasPrefix(lower, "sources:"):
			inSources = true
			if rest := cleanSourceLine(trimmed[len("sources:"):]); rest != "" {
				answer.Sources = append(answer.Sources, rest)
			}
		case inSources:
			if src := cleanSourceLine(trimmed); src != "" {
				answer.Sources = append(answer.Sources, src)
			}
		}
	}

	return answer
}

// cleanSourceLine strips list markers and rejects placeholder entries
func cleanSourceLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*• \t")
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "(none)", "n/a":
		return ""
	}
	return s
}
