package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const recipeSystemPrompt = `You are a fitness nutrition expert and chef specializing in high-protein meals for gym-goers.
Generate recipes that prioritise protein (aim for 30-50g per serving) and support muscle growth/recovery.
Return the recipe ONLY as a valid JSON object with this exact structure (no markdown, no text before/after):
{
    "title": "Recipe Name",
    "description": "Brief description highlighting protein content and fitness benefits",
    "instructions": "Step by step instructions",
    "prep_time": 30,
    "cook_time": 45,
    "servings": 4,
    "difficulty": "easy",
    "ingredients": [{"name": "ingredient", "quantity": 1, "unit": "cup"}],
    "tags": ["high-protein", "gym-fuel", "muscle-building"],
    "nutritional_info": {"calories": 500, "protein": 40, "carbs": 30, "fat": 15}
}`

const suggestSystemPrompt = `You are a fitness nutrition expert who suggests HIGH-PROTEIN recipes for gym-goers.
Return suggestions ONLY as a valid JSON object (no markdown) with this structure:
{"suggestions": [{"title": "Recipe Name", "description": "Brief description with estimated protein content", "protein_estimate": "40g"}]}
Provide exactly 3 suggestions. Each must be high in protein (30g+ per serving).`

// Assistant turns free-text requests into recipe drafts and ideas using a
// generative model.
type Assistant struct {
	generator model.Generator
	logger    *logger.Logger
}

// NewAssistant creates an Assistant. A nil generator makes every call fail
// with a "not configured" error.
func NewAssistant(generator model.Generator, logger *logger.Logger) *Assistant {
	return &Assistant{generator: generator, logger: logger}
}

// GenerateRecipe asks the model for a high-protein recipe matching prompt.
func (s *Assistant) GenerateRecipe(ctx context.Context, prompt, dietaryRestrictions string) (model.RecipeDraft, error) {
	if s.generator == nil {
		return model.RecipeDraft{}, apperrors.NewErrGeneratorUnavailable()
	}
	if strings.TrimSpace(prompt) == "" {
		return model.RecipeDraft{}, apperrors.NewErrValidation("prompt is required")
	}

	var restrictions string
	if dietaryRestrictions != "" {
		restrictions = fmt.Sprintf("Dietary restrictions: %s. ", dietaryRestrictions)
	}
	userPrompt := fmt.Sprintf("Generate a HIGH PROTEIN recipe for: %s. %sFocus on lean proteins and whole foods ideal for gym-goers.", prompt, restrictions)

	var draft model.RecipeDraft
	if err := s.ask(ctx, recipeSystemPrompt, userPrompt, &draft); err != nil {
		return model.RecipeDraft{}, apperrors.NewErrGenerationFailed("Failed to generate recipe. Please try again.")
	}
	draft.Tags = nonNilStrings(draft.Tags)
	draft.Ingredients = nonNilIngredients(draft.Ingredients)
	draft.NutritionalInfo = nonNilMap(draft.NutritionalInfo)
	return draft, nil
}

// SuggestRecipes asks the model for three recipe ideas using pantryItems.
func (s *Assistant) SuggestRecipes(ctx context.Context, pantryItems []string, preferences string) ([]model.RecipeSuggestion, error) {
	if s.generator == nil {
		return nil, apperrors.NewErrGeneratorUnavailable()
	}

	pantry := "No specific items"
	if len(pantryItems) > 0 {
		pantry = strings.Join(pantryItems, ", ")
	}
	var prefs string
	if preferences != "" {
		prefs = "Preferences: " + preferences
	}
	userPrompt := fmt.Sprintf("Pantry items: %s. %s Suggest 3 high-protein recipes I can make for muscle building.", pantry, prefs)

	var out struct {
		Suggestions []model.RecipeSuggestion `json:"suggestions"`
	}
	if err := s.ask(ctx, suggestSystemPrompt, userPrompt, &out); err != nil {
		return nil, apperrors.NewErrGenerationFailed("Failed to generate suggestions. Please try again.")
	}
	if out.Suggestions == nil {
		out.Suggestions = []model.RecipeSuggestion{}
	}
	return out.Suggestions, nil
}

func (s *Assistant) ask(ctx context.Context, system, user string, dst any) error {
	text, err := s.generator.Generate(ctx, system+"\n\nUser request: "+user)
	if err != nil {
		s.logger.Error("Assistant: generation failed", "error", err.Error())
		return err
	}

	if err := json.Unmarshal([]byte(StripCodeFence(text)), dst); err != nil {
		s.logger.Error("Assistant: failed to decode model output", "error", err.Error())
		return err
	}
	return nil
}

// StripCodeFence removes a surrounding markdown code fence (optionally tagged
// "json") from model output.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if end := strings.Index(text, "```"); end >= 0 {
		text = text[:end]
	}
	text = strings.TrimPrefix(text, "json")
	return strings.TrimSpace(text)
}
