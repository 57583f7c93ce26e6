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

// ShoppingListHandlers handles the weekly shopping list endpoints
type ShoppingListHandlers struct {
	service inbound.ShoppingListService
	logger  *zap.Logger
}

// NewShoppingListHandlers creates a new shopping list handlers instance
func NewShoppingListHandlers(service inbound.ShoppingListService, logger *zap.Logger) *ShoppingListHandlers {
	return &ShoppingListHandlers{
		service: service,
		logger:  logger,
	}
}

// GetWeek handles GET /api/v1/shopping-list?week=YYYY-MM-DD
func (h *ShoppingListHandlers) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.service.GetWeek(r.Context(), week)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: list})
}

// Sync handles POST /api/v1/shopping-list/sync?week=YYYY-MM-DD
func (h *ShoppingListHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.service.SyncMealIngredients(r.Context(), week)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
		Message: "Meal ingredients synced",
	})
}

type addItemRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// AddItem handles POST /api/v1/shopping-list/items?week=YYYY-MM-DD
func (h *ShoppingListHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid request body"))
		return
	}

	list, err := h.service.AddManualItem(r.Context(), inbound.AddManualItemCommand{
		WeekStart: week,
		Name:      req.Name,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{Success: true, Data: list})
}

type setCheckedRequest struct {
	Checked bool `json:"checked"`
}

// SetItemChecked handles PATCH /api/v1/shopping-list/items/{id}
func (h *ShoppingListHandlers) SetItemChecked(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid item ID"))
		return
	}

	var req setCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.service.SetItemChecked(r.Context(), itemID, req.Checked); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Item updated"})
}

type toggleRequest struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Included        bool      `json:"included"`
}

// ToggleInventoryItem handles POST /api/v1/shopping-list/toggle?week=YYYY-MM-DD
func (h *ShoppingListHandlers) ToggleInventoryItem(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.InventoryItemID == uuid.Nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("inventory_item_id is required"))
		return
	}

	list, err := h.service.ToggleInventoryItem(r.Context(), inbound.ToggleInventoryItemCommand{
		WeekStart:       week,
		InventoryItemID: req.InventoryItemID,
		Included:        req.Included,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: list})
}
