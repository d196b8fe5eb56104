// Package organizer turns raw transcript text into a structured recipe
// using a language-model completion, with layered parsing fallbacks: as long
// as the provider call itself succeeds the organizer always yields a usable
// recipe shape, reserving errors for transport and provider failures.
package organizer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"momento/internal/apperr"
	"momento/internal/model"
)

// Defaults filled into drafts for fields the model omitted and used whole
// for unparseable responses.
const (
	DefaultTitle       = "정리된 레시피"
	DefaultServings    = "2-3인분"
	DefaultCookingTime = "30분"
	DefaultDifficulty  = "보통"
	DefaultCategory    = "기타"
)

// ChatAPI is the slice of the OpenAI client used for completions.
// *openai.Client satisfies it; tests substitute a fake.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RecipeDraft is the organizer's output: a validated recipe payload with
// every required field populated.
type RecipeDraft struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Ingredients model.IngredientList `json:"ingredients"`
	Steps       model.StepList       `json:"steps"`
	Tips        string               `json:"tips"`
	Servings    string               `json:"servings"`
	CookingTime string               `json:"cooking_time"`
	Difficulty  string               `json:"difficulty"`
	Category    string               `json:"category"`
}

// rawDraft distinguishes absent fields from explicitly empty ones, matching
// the defaulting rules.
type rawDraft struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Ingredients model.IngredientList `json:"ingredients"`
	Steps       model.StepList       `json:"steps"`
	Tips        *string              `json:"tips"`
	Servings    *string              `json:"servings"`
	CookingTime *string              `json:"cooking_time"`
	Difficulty  *string              `json:"difficulty"`
	Category    *string              `json:"category"`
}

// Organizer converts transcripts into recipe drafts via chat completions.
type Organizer struct {
	client  ChatAPI
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// New creates an Organizer. A zero timeout disables the call deadline.
func New(client ChatAPI, completionModel string, timeout time.Duration, log zerolog.Logger) *Organizer {
	if completionModel == "" {
		completionModel = openai.GPT3Dot5Turbo
	}
	return &Organizer{client: client, model: completionModel, timeout: timeout, log: log}
}

// Organize asks the model to structure the transcript into a recipe and
// parses the response. Parsing problems are recovered locally into fallback
// drafts; only a failed provider call returns an error.
func (o *Organizer) Organize(ctx context.Context, transcript string) (*RecipeDraft, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: organizeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: organizeUserPrompt(transcript)},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		o.log.Error().Err(err).Msg("recipe organization failed")
		return nil, apperr.Upstream("language model call failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperr.Upstream("language model returned no choices", nil)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	jsonContent, ok := locateJSON(content)
	if !ok {
		// Prose-only answer: keep the model's text as description and tips.
		o.log.Warn().Msg("model response is not JSON, synthesizing fallback draft")
		return proseFallback(content), nil
	}

	var raw rawDraft
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		o.log.Warn().Err(err).Msg("model JSON unparseable, synthesizing fallback draft")
		return parseFallback(transcript), nil
	}

	draft := applyDefaults(raw)
	draft.Difficulty = normalizeDifficulty(draft.Difficulty)
	draft.Category = normalizeCategory(draft.Category)
	return draft, nil
}

// ImproveDescription generates a short, warm narrative description from the
// recipe's title, ingredient names and tips. The caller replaces the
// existing description with the result, never merges.
func (o *Organizer) ImproveDescription(ctx context.Context, recipe *model.Recipe) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: improveDescriptionPrompt(recipe)},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		o.log.Error().Err(err).Msg("description generation failed")
		return "", apperr.Upstream("language model call failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.Upstream("language model returned no choices", nil)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// locateJSON finds the JSON object in a model response: a fenced json code
// block first, then a bare brace-wrapped body. Returns false for prose.
func locateJSON(content string) (string, bool) {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest), true
	}
	if strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}") {
		return content, true
	}
	return "", false
}

func proseFallback(content string) *RecipeDraft {
	return &RecipeDraft{
		Title:       DefaultTitle,
		Description: content,
		Ingredients: model.IngredientList{},
		Steps:       model.StepList{},
		Tips:        content,
		Servings:    DefaultServings,
		CookingTime: DefaultCookingTime,
		Difficulty:  DefaultDifficulty,
		Category:    DefaultCategory,
	}
}

func parseFallback(transcript string) *RecipeDraft {
	return &RecipeDraft{
		Title:       DefaultTitle,
		Description: truncate(transcript, 200),
		Ingredients: model.IngredientList{},
		Steps:       model.StepList{},
		Tips:        transcript,
		Servings:    DefaultServings,
		CookingTime: DefaultCookingTime,
		Difficulty:  DefaultDifficulty,
		Category:    DefaultCategory,
	}
}

func applyDefaults(raw rawDraft) *RecipeDraft {
	draft := &RecipeDraft{
		Title:       DefaultTitle,
		Ingredients: model.IngredientList{},
		Steps:       model.StepList{},
		Servings:    DefaultServings,
		CookingTime: DefaultCookingTime,
		Difficulty:  DefaultDifficulty,
		Category:    DefaultCategory,
	}
	if raw.Title != nil {
		draft.Title = *raw.Title
	}
	if raw.Description != nil {
		draft.Description = *raw.Description
	}
	if raw.Ingredients != nil {
		draft.Ingredients = raw.Ingredients
	}
	if raw.Steps != nil {
		draft.Steps = raw.Steps
	}
	if raw.Tips != nil {
		draft.Tips = *raw.Tips
	}
	if raw.Servings != nil {
		draft.Servings = *raw.Servings
	}
	if raw.CookingTime != nil {
		draft.CookingTime = *raw.CookingTime
	}
	if raw.Difficulty != nil {
		draft.Difficulty = *raw.Difficulty
	}
	if raw.Category != nil {
		draft.Category = *raw.Category
	}
	return draft
}

// truncate shortens s to max runes with an ellipsis marker. Counting runes
// keeps multi-byte Hangul intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
