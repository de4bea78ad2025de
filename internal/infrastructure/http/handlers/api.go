// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/alchemorsel/matchmaker/internal/domain/matching"
	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
	"github.com/alchemorsel/matchmaker/pkg/errors"
)

// OwnerHeader identifies whose saved recipes and profile a request touches
const OwnerHeader = "X-Owner-ID"

const maxBodyBytes = 1 << 20

// APIHandlers handles REST API requests
type APIHandlers struct {
	matchService inbound.MatchService
	savedService inbound.SavedService
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	matchService inbound.MatchService,
	savedService inbound.SavedService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		matchService: matchService,
		savedService: savedService,
		validate:     validator.New(),
		logger:       logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                 `json:"success"`
	Data    interface{}          `json:"data,omitempty"`
	Error   *errors.ErrorDetails `json:"error,omitempty"`
	Message string               `json:"message,omitempty"`
}

// MatchRequest is the body of POST /api/v1/matches
type MatchRequest struct {
	// Profile is validated by the match service so that every caller gets the
	// same INVALID_PROFILE error
	Profile preference.Profile `json:"profile" validate:"-"`
	Limit   int                `json:"limit" validate:"gte=0,lte=100"`
	// Remember stores the answers as the owner's profile after a successful match
	Remember bool `json:"remember"`
}

// MatchDTO is one ranked match with its display badge
type MatchDTO struct {
	matching.MatchResult
	Badge string `json:"badge,omitempty"`
}

// MatchListResponse is the body returned by POST /api/v1/matches
type MatchListResponse struct {
	Matches    []MatchDTO `json:"matches"`
	Candidates int        `json:"candidates"`
	Query      string     `json:"query"`
}

// SavedStatusResponse reports whether a recipe is saved
type SavedStatusResponse struct {
	RecipeID string `json:"recipeId"`
	Saved    bool   `json:"saved"`
}

// Routes mounts every API v1 endpoint on r
func (h *APIHandlers) Routes(r chi.Router) {
	r.Post("/matches", h.FindMatches)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.SearchRecipes)
		r.Get("/{id}", h.GetRecipe)
	})

	r.Route("/saved", func(r chi.Router) {
		r.Get("/", h.ListSaved)
		r.Delete("/", h.ClearSaved)
		r.Get("/{id}", h.GetSavedStatus)
		r.Put("/{id}", h.SaveRecipe)
		r.Delete("/{id}", h.RemoveSaved)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.SaveProfile)
		r.Delete("/", h.ClearProfile)
	})
}

// FindMatches handles POST /api/v1/matches
func (h *APIHandlers) FindMatches(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.matchService.FindMatches(r.Context(), inbound.FindMatchesCommand{
		Profile: req.Profile,
		Limit:   req.Limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if req.Remember {
		if err := h.savedService.SaveProfile(r.Context(), owner(r), req.Profile); err != nil {
			h.logger.Warn("Failed to remember profile", zap.Error(err))
		}
	}

	resp := MatchListResponse{
		Matches:    make([]MatchDTO, 0, len(list.Matches)),
		Candidates: list.Candidates,
		Query:      list.Query,
	}
	for _, m := range list.Matches {
		resp.Matches = append(resp.Matches, MatchDTO{MatchResult: m, Badge: m.Badge()})
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    resp,
		Message: fmt.Sprintf("Found %d matches", len(resp.Matches)),
	})
}

// SearchRecipes handles GET /api/v1/recipes?q=
func (h *APIHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if err := h.validate.Var(term, "max=100"); err != nil {
		h.writeError(w, r, errors.NewValidationError("q must be at most 100 characters"))
		return
	}

	recipes, err := h.matchService.SearchRecipes(r.Context(), term)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *APIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.matchService.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// ListSaved handles GET /api/v1/saved
func (h *APIHandlers) ListSaved(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.savedService.ListSaved(r.Context(), owner(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// ClearSaved handles DELETE /api/v1/saved
func (h *APIHandlers) ClearSaved(w http.ResponseWriter, r *http.Request) {
	if err := h.savedService.ClearSaved(r.Context(), owner(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Saved recipes cleared"})
}

// GetSavedStatus handles GET /api/v1/saved/{id}
func (h *APIHandlers) GetSavedStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	saved, err := h.savedService.IsSaved(r.Context(), owner(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    SavedStatusResponse{RecipeID: id, Saved: saved},
	})
}

// SaveRecipe handles PUT /api/v1/saved/{id}. The body may carry the recipe
// to store; without a body the recipe is resolved from the catalog.
func (h *APIHandlers) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		rec *recipe.Recipe
		err error
	)
	if r.ContentLength != 0 {
		rec, err = h.decodeRecipe(r, id)
	} else {
		rec, err = h.matchService.GetRecipe(r.Context(), id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	added, err := h.savedService.SaveRecipe(r.Context(), owner(r), rec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status, message := http.StatusOK, "Recipe already saved"
	if added {
		status, message = http.StatusCreated, "Recipe saved"
	}
	h.writeJSON(w, status, APIResponse{
		Success: true,
		Data:    SavedStatusResponse{RecipeID: id, Saved: true},
		Message: message,
	})
}

// RemoveSaved handles DELETE /api/v1/saved/{id}
func (h *APIHandlers) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.savedService.RemoveRecipe(r.Context(), owner(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    SavedStatusResponse{RecipeID: id, Saved: false},
		Message: "Recipe removed",
	})
}

// GetProfile handles GET /api/v1/profile
func (h *APIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.savedService.GetProfile(r.Context(), owner(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if profile == nil {
		h.writeError(w, r, errors.NewNotFoundError("profile"))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: profile})
}

// SaveProfile handles PUT /api/v1/profile
func (h *APIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile preference.Profile
	if err := h.decode(r, &profile); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.savedService.SaveProfile(r.Context(), owner(r), profile); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: profile, Message: "Profile saved"})
}

// ClearProfile handles DELETE /api/v1/profile
func (h *APIHandlers) ClearProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.savedService.ClearProfile(r.Context(), owner(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Profile cleared"})
}

// decodeRecipe reads a client-supplied recipe whose id must match the path
func (h *APIHandlers) decodeRecipe(r *http.Request, id string) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := h.decode(r, &rec); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = id
	}
	if rec.ID != id {
		return nil, errors.NewValidationError("recipe id does not match the path")
	}
	if !rec.IsEstimated() {
		rec.Estimate()
	}
	return &rec, nil
}

func owner(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(OwnerHeader))
}

// decode reads a JSON body into dst and runs struct validation. Domain
// types are validated by the services instead.
func (h *APIHandlers) decode(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return errors.NewBadRequestError("failed to read request body")
	}
	if len(body) > maxBodyBytes {
		return errors.NewBadRequestError("request body too large")
	}
	if len(body) == 0 {
		return errors.NewBadRequestError("request body is required")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body").WithCause(err)
	}

	switch dst.(type) {
	case *preference.Profile, *recipe.Recipe:
		return nil
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.NewValidationError(fmt.Sprintf("%s failed %s", verrs[0].Field(), verrs[0].Tag())).WithCause(err)
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// writeError maps err to its HTTP status and writes the error envelope
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Wrap(err, "internal server error")
	}

	status := appErr.StatusCode()
	fields := []zap.Field{
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.String("code", string(appErr.Code)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", fields...)
	} else {
		h.logger.Debug("Request rejected", fields...)
	}

	details := errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())).Error
	h.writeJSON(w, status, APIResponse{Success: false, Error: &details})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
