package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/forkcast/v2/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryHandlers handles the household master list endpoints
type InventoryHandlers struct {
	service inbound.InventoryService
	logger  *zap.Logger
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(service inbound.InventoryService, logger *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/v1/inventory
func (h *InventoryHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: items})
}

type createInventoryItemRequest struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	CategoryID uuid.UUID `json:"category_id"`
}

// CreateItem handles POST /api/v1/inventory
func (h *InventoryHandlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.service.CreateItem(r.Context(), inbound.CreateInventoryItemCommand{
		Name:       req.Name,
		Type:       req.Type,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{Success: true, Data: item})
}

// DeleteItem handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid item ID"))
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Item deleted"})
}
