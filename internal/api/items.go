package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkolar/najdeno/internal/model"
	"github.com/mkolar/najdeno/internal/store"
)

// ItemsHandler handles posting CRUD endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ContactInfo string `json:"contact_info"`
	ImagePath   string `json:"image_path"`
}

type updateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ContactInfo string `json:"contact_info"`
}

// List handles GET /api/items with optional status, category and q filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ItemFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The image_path is optional; postings
// without one get the default placeholder reference.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.ImagePath == "" {
		req.ImagePath = defaultImagePath
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID,
		req.Title, req.Description, req.Category, req.Status, req.ContactInfo, req.ImagePath)
	if errors.Is(err, store.ErrInvalidStatus) {
		jsonError(w, http.StatusBadRequest, "status must be Lost or Found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Mine handles GET /api/my/items, returning every posting of the caller
// regardless of status.
func (h *ItemsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListUserItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Update handles PUT /api/items/{id}. Status is not editable through this
// endpoint; use Resolve.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	err = store.UpdateItem(r.Context(), h.DB, claims.UserID, id,
		req.Title, req.Description, req.Category, req.ContactInfo)
	if errors.Is(err, store.ErrNotOwner) {
		jsonError(w, http.StatusForbidden, "unauthorized")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	err = store.DeleteItem(r.Context(), h.DB, claims.UserID, id)
	if errors.Is(err, store.ErrNotOwner) {
		jsonError(w, http.StatusForbidden, "unauthorized")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Resolve handles POST /api/items/{id}/resolve.
func (h *ItemsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	newStatus, err := store.ResolveItem(r.Context(), h.DB, claims.UserID, id)
	if errors.Is(err, store.ErrNotOwner) {
		jsonError(w, http.StatusForbidden, "unauthorized")
		return
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		jsonError(w, http.StatusConflict, "item is already resolved")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to resolve item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"status": newStatus})
}
