package handler

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const maxPhotoBytes = 10 << 20

// RecipeService defines recipe book operations.
type RecipeService interface {
	List(ctx context.Context, user model.User, filter model.RecipeFilter) ([]model.Recipe, error)
	Get(ctx context.Context, user model.User, id uuid.UUID) (model.Recipe, error)
	Create(ctx context.Context, user model.User, draft model.RecipeDraft) (model.Recipe, error)
	Update(ctx context.Context, user model.User, id uuid.UUID, patch model.RecipePatch) (model.Recipe, error)
	Delete(ctx context.Context, user model.User, id uuid.UUID) error
	UploadPhoto(ctx context.Context, user model.User, id uuid.UUID, reader io.Reader, size int64, contentType string) (model.Recipe, error)
	Photo(ctx context.Context, user model.User, id uuid.UUID) (io.ReadCloser, error)
}

// AssistantService defines generative recipe operations.
type AssistantService interface {
	GenerateRecipe(ctx context.Context, prompt, dietaryRestrictions string) (model.RecipeDraft, error)
	SuggestRecipes(ctx context.Context, pantryItems []string, preferences string) ([]model.RecipeSuggestion, error)
}

type suggestRequest struct {
	PantryItems []string `json:"pantry_items"`
	Preferences string   `json:"preferences"`
}

type suggestResponse struct {
	Suggestions []model.RecipeSuggestion `json:"suggestions"`
}

// Recipe handles HTTP endpoints for recipes.
type Recipe struct {
	recipeService    RecipeService
	assistantService AssistantService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

// NewRecipe creates a new Recipe handler.
func NewRecipe(
	recipeService RecipeService,
	assistantService AssistantService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Recipe {
	return &Recipe{
		recipeService:    recipeService,
		assistantService: assistantService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

// List returns the caller's recipes filtered by search, tags and difficulty.
func (h *Recipe) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	filter := model.RecipeFilter{
		Search:     r.URL.Query().Get("search"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	if filter.Offset, err = queryInt(r, "skip", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}

	recipes, err := h.recipeService.List(r.Context(), user, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Get returns one recipe.
func (h *Recipe) Get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(r.Context(), user, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Create adds a recipe to the caller's book.
func (h *Recipe) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var draft model.RecipeDraft
	if err := decodeJSON(r, &draft); err != nil {
		handleError(w, h.logger, err)
		return
	}

	recipe, err := h.recipeService.Create(r.Context(), user, draft)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Update applies a partial update to a recipe.
func (h *Recipe) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	var patch model.RecipePatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, h.logger, err)
		return
	}

	recipe, err := h.recipeService.Update(r.Context(), user, id, patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Delete removes a recipe.
func (h *Recipe) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(r.Context(), user, id); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Recipe deleted successfully")
}

// UploadPhoto stores the request body as the recipe photo.
func (h *Recipe) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	recipe, err := h.recipeService.UploadPhoto(r.Context(), user, id, body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Photo streams the stored recipe photo.
func (h *Recipe) Photo(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	rc, err := h.recipeService.Photo(r.Context(), user, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	head, _ := br.Peek(512)
	w.Header().Set("Content-Type", http.DetectContentType(head))
	if _, err := io.Copy(w, br); err != nil {
		h.logger.Warn("Recipe handler: photo stream interrupted",
			"recipe_id", id,
			"error", err.Error())
	}
}

// Generate drafts a recipe from the prompt query parameter.
func (h *Recipe) Generate(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(h.contextManager, r); err != nil {
		handleError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	draft, err := h.assistantService.GenerateRecipe(r.Context(), q.Get("prompt"), q.Get("dietary_restrictions"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Suggest proposes recipe ideas for the given pantry items. The body is optional.
func (h *Recipe) Suggest(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(h.contextManager, r); err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req suggestRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, h.logger, err)
			return
		}
	}

	suggestions, err := h.assistantService.SuggestRecipes(r.Context(), req.PantryItems, req.Preferences)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}
