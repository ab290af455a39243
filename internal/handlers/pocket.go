package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=pocket.go -destination=pocket_mock_test.go -package=handlers

// PocketCreator creates pockets.
type PocketCreator interface {
	CreatePocket(ctx context.Context, userID uuid.UUID, name string, description *string) (*models.Pocket, error)
}

// PocketLister lists pockets of a user.
type PocketLister interface {
	ListPockets(ctx context.Context, userID uuid.UUID) ([]models.Pocket, error)
}

// PocketGetter returns a single pocket.
type PocketGetter interface {
	GetPocket(ctx context.Context, userID, pocketID uuid.UUID) (*models.Pocket, error)
}

// PocketUpdater changes pocket details.
type PocketUpdater interface {
	UpdatePocket(ctx context.Context, userID, pocketID uuid.UUID, name, description *string) (*models.Pocket, error)
}

// PocketDeletionCodeRequester issues pocket deletion codes.
type PocketDeletionCodeRequester interface {
	RequestPocketDeletionCode(ctx context.Context, userID, pocketID uuid.UUID) error
}

// PocketDeleter archives a pocket after its deletion code is confirmed.
type PocketDeleter interface {
	ConfirmPocketDeletion(ctx context.Context, userID, pocketID uuid.UUID, code string) error
}

// PocketRequest represents the JSON body for creating a pocket
// swagger:model PocketRequest
type PocketRequest struct {
	// Pocket name, up to 128 characters
	// required: true
	// default: Savings
	Name string `json:"name"`

	// Optional description, up to 512 characters
	Description *string `json:"description,omitempty"`
}

// PocketUpdateRequest represents the JSON body for updating a pocket.
// Omitted fields are kept, an empty description clears it.
// swagger:model PocketUpdateRequest
type PocketUpdateRequest struct {
	// New pocket name, up to 128 characters
	Name *string `json:"name,omitempty"`

	// New description, up to 512 characters
	Description *string `json:"description,omitempty"`
}

// PocketResponse represents a pocket
// swagger:model PocketResponse
type PocketResponse struct {
	PocketID    uuid.UUID       `json:"pocket_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"string" example:"400.00"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newPocketResponse(p *models.Pocket) PocketResponse {
	return PocketResponse{
		PocketID:    p.PocketID,
		Name:        p.Name,
		Description: p.Description,
		Balance:     p.Balance,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewCreatePocketHandler returns an HTTP handler for creating a pocket.
// @Summary Create pocket
// @Description Creates an empty pocket owned by the caller.
// @Tags pockets
// @Accept json
// @Produce json
// @Param request body handlers.PocketRequest true "Pocket"
// @Success 201 {object} handlers.PocketResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid name or description"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /pockets [post]
// @Security BearerAuth
func NewCreatePocketHandler(svc PocketCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req PocketRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := svc.CreatePocket(r.Context(), userID, req.Name, req.Description)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newPocketResponse(p))
	}
}

// NewListPocketsHandler returns an HTTP handler for listing the caller's pockets.
// @Summary List pockets
// @Tags pockets
// @Produce json
// @Success 200 {array} handlers.PocketResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /pockets [get]
// @Security BearerAuth
func NewListPocketsHandler(svc PocketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		pockets, err := svc.ListPockets(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]PocketResponse, 0, len(pockets))
		for i := range pockets {
			resp = append(resp, newPocketResponse(&pockets[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetPocketHandler returns an HTTP handler for reading a pocket.
// @Summary Get pocket
// @Tags pockets
// @Produce json
// @Param id path string true "Pocket ID"
// @Success 200 {object} handlers.PocketResponse
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Pocket not found"
// @Router /pockets/{id} [get]
// @Security BearerAuth
func NewGetPocketHandler(svc PocketGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		pocketID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		p, err := svc.GetPocket(r.Context(), userID, pocketID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newPocketResponse(p))
	}
}

// NewUpdatePocketHandler returns an HTTP handler for renaming or describing a pocket.
// @Summary Update pocket
// @Tags pockets
// @Accept json
// @Produce json
// @Param id path string true "Pocket ID"
// @Param request body handlers.PocketUpdateRequest true "Changed fields"
// @Success 200 {object} handlers.PocketResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid name or description"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Pocket not found"
// @Failure 409 {object} handlers.ErrorResponse "Pocket is archived"
// @Router /pockets/{id} [patch]
// @Security BearerAuth
func NewUpdatePocketHandler(svc PocketUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		pocketID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		var req PocketUpdateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := svc.UpdatePocket(r.Context(), userID, pocketID, req.Name, req.Description)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newPocketResponse(p))
	}
}

// NewRequestPocketDeletionCodeHandler returns an HTTP handler that emails a
// pocket deletion code to the owner.
// @Summary Request pocket deletion code
// @Tags pockets
// @Produce json
// @Param id path string true "Pocket ID"
// @Success 202 {object} handlers.MessageResponse
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 409 {object} handlers.ErrorResponse "Pocket is archived"
// @Router /pockets/{id}/deletion-code [post]
// @Security BearerAuth
func NewRequestPocketDeletionCodeHandler(svc PocketDeletionCodeRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		pocketID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		if err := svc.RequestPocketDeletionCode(r.Context(), userID, pocketID); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusAccepted, MessageResponse{Message: "Deletion code sent"})
	}
}

// NewDeletePocketHandler returns an HTTP handler that archives a pocket when
// the deletion code matches.
// @Summary Delete pocket
// @Description Archives the pocket. Its transactions are kept but hidden.
// @Tags pockets
// @Accept json
// @Param id path string true "Pocket ID"
// @Param request body handlers.CodeRequest true "Deletion code"
// @Success 204
// @Failure 400 {object} handlers.ErrorResponse "Invalid confirmation code"
// @Failure 409 {object} handlers.ErrorResponse "Pocket is archived"
// @Router /pockets/{id} [delete]
// @Security BearerAuth
func NewDeletePocketHandler(svc PocketDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		pocketID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		var req CodeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := svc.ConfirmPocketDeletion(r.Context(), userID, pocketID, req.Code); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// PocketHandlers groups the pocket endpoints.
type PocketHandlers struct {
	Create          http.HandlerFunc
	List            http.HandlerFunc
	Get             http.HandlerFunc
	Update          http.HandlerFunc
	RequestDeletion http.HandlerFunc
	ConfirmDeletion http.HandlerFunc
}

// RegisterPocketHandlers registers pocket routes
func RegisterPocketHandlers(r chi.Router, h PocketHandlers) {
	r.Post("/pockets", h.Create)
	r.Get("/pockets", h.List)
	r.Get("/pockets/{id}", h.Get)
	r.Patch("/pockets/{id}", h.Update)
	r.Post("/pockets/{id}/deletion-code", h.RequestDeletion)
	r.Delete("/pockets/{id}", h.ConfirmDeletion)
}
