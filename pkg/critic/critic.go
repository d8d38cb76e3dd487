// Package critic produces structured quality and terminology critiques of
// text through an OpenAI chat model.
//
// Failures never cross the package boundary as errors: a failed call or an
// unparseable reply degrades to the canonical empty/error report value so
// downstream code has no absent-report case to handle.
package critic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/dtnitsch/linguacheck/models"
)

// ChatCompleter is the slice of the OpenAI client the critic needs.
// *openai.Client satisfies it; tests substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Critic struct {
	client      ChatCompleter
	log         *log.Logger
	model       string
	maxTokens   int
	temperature float32
}

// New builds a Critic over the given chat client.
func New(client ChatCompleter, cfg *models.Config, logger *log.Logger) *Critic {
	return &Critic{
		client:      client,
		log:         logger,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// NewWithKey builds a Critic with a real OpenAI client.
func NewWithKey(cfg *models.Config, logger *log.Logger) *Critic {
	return New(openai.NewClient(cfg.APIKey), cfg, logger)
}

// AssessQuality critiques text in the given language, optionally against a
// baseline text. It always returns a usable report.
func (c *Critic) AssessQuality(ctx context.Context, text, language, baseline string) *models.QualityReport {
	reply, err := c.complete(ctx, qualitySystemPrompt, buildQualityPrompt(text, language, baseline))
	if err != nil {
		c.log.WithError(err).Error("AI analysis failed")
		cerr := &models.CriticError{Op: "quality", Err: err}
		return models.ErrorQualityReport("analysis_error", cerr.Error())
	}

	raw, ok := extractJSON(reply)
	if !ok {
		c.log.Error("could not locate JSON object in AI response")
		return models.ErrorQualityReport("parsing_error", "Could not parse AI response")
	}

	report := &models.QualityReport{}
	if err := json.Unmarshal([]byte(raw), report); err != nil {
		c.log.WithError(err).Error("failed to parse AI response")
		return models.ErrorQualityReport("json_error", err.Error())
	}
	report.OK = true
	return report
}

// AssessConsistency checks terminology consistency across the per-language
// texts, optionally focusing on keyTerms. It always returns a usable report.
func (c *Critic) AssessConsistency(ctx context.Context, texts map[string]string, keyTerms []string) *models.ConsistencyReport {
	reply, err := c.complete(ctx, consistencySystemPrompt, buildConsistencyPrompt(texts, keyTerms))
	if err != nil {
		c.log.WithError(err).Error("terminology analysis failed")
		cerr := &models.CriticError{Op: "consistency", Err: err}
		return models.ErrorConsistencyReport("analysis_error", cerr.Error())
	}

	raw, ok := extractJSON(reply)
	if !ok {
		c.log.Error("could not locate JSON object in terminology response")
		return models.ErrorConsistencyReport("parsing_error", "Could not parse AI response")
	}

	report := &models.ConsistencyReport{}
	if err := json.Unmarshal([]byte(raw), report); err != nil {
		c.log.WithError(err).Error("failed to parse terminology response")
		return models.ErrorConsistencyReport("json_error", err.Error())
	}
	report.OK = true
	return report
}

func (c *Critic) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

var errEmptyResponse = errors.New("completion returned no choices")

// extractJSON slices from the first '{' to the last '}' inclusive. This
// tolerates models that wrap JSON in prose or code fences. There is no
// brace balancing: a stray '}' after the real object will mis-slice, and
// the caller falls back to the error value.
func extractJSON(reply string) (string, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}
