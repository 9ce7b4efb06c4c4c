package web

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/mkolar/najdeno/internal/model"
	"github.com/mkolar/najdeno/internal/store"
)

// maxUploadBytes limits item photo uploads.
const maxUploadBytes = 5 << 20

// Index handles GET /. Optional query parameters status, category and q
// narrow the listing; without them only open (Lost/Found) postings show.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	filter := store.ItemFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}

	items, err := store.ListItems(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "index.html", &struct {
		PageData
		Items  []model.Item
		Filter store.ItemFilter
	}{
		PageData: PageData{Title: "Lost & Found", User: GetWebClaims(r.Context()), Flash: popFlash(w, r)},
		Items:    items,
		Filter:   filter,
	})
}

// ItemDetailPage handles GET /item/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Title, User: GetWebClaims(r.Context()), Flash: popFlash(w, r)},
		Item:     item,
	})
}

// AddItemPage handles GET /add.
func (s *Server) AddItemPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "add_item.html", &PageData{
		Title: "Post an Item",
		User:  GetWebClaims(r.Context()),
		Flash: popFlash(w, r),
	})
}

// AddItemSubmit handles POST /add. The photo is optional; without one the
// posting keeps the default placeholder image.
func (s *Server) AddItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		setFlash(w, "danger", "Upload too large.")
		http.Redirect(w, r, "/add", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	status := r.FormValue("status")
	if title == "" || !model.OpenStatus(status) {
		s.Templates.Render(w, "add_item.html", &PageData{
			Title: "Post an Item",
			User:  claims,
			Error: "A title and a Lost or Found status are required.",
		})
		return
	}

	var photo multipart.File
	if file, header, err := r.FormFile("image"); err == nil && header.Filename != "" {
		photo = file
		defer file.Close()
	}

	imagePath, err := s.Uploads.Save(photo)
	if err != nil {
		s.Templates.Render(w, "add_item.html", &PageData{
			Title: "Post an Item",
			User:  claims,
			Error: err.Error(),
		})
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, claims.UserID,
		title, r.FormValue("description"), r.FormValue("category"),
		status, r.FormValue("contact_info"), imagePath)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item posted", "user", claims.FullName, "item", item.Title, "status", item.Status)
	setFlash(w, "success", "Item posted successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// MyPostsPage handles GET /my_posts. Unlike the public listing this shows
// every posting of the caller, resolved ones included.
func (s *Server) MyPostsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListUserItems(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list user items", "error", err)
	}

	s.Templates.Render(w, "my_posts.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My Posts", User: claims, Flash: popFlash(w, r)},
		Items:    items,
	})
}

// EditItemPage handles GET /edit/{id}.
func (s *Server) EditItemPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil || item.UserID != claims.UserID {
		setFlash(w, "danger", "Unauthorized action.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "edit_item.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Edit Item", User: claims, Flash: popFlash(w, r)},
		Item:     item,
	})
}

// EditItemSubmit handles POST /edit/{id}. Status is not editable here.
func (s *Server) EditItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = store.UpdateItem(r.Context(), s.DB, claims.UserID, id,
		r.FormValue("title"), r.FormValue("description"),
		r.FormValue("category"), r.FormValue("contact_info"))
	if errors.Is(err, store.ErrNotOwner) {
		setFlash(w, "danger", "Unauthorized action.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "user", claims.FullName, "item", id)
	setFlash(w, "success", "Item updated successfully!")
	http.Redirect(w, r, "/my_posts", http.StatusSeeOther)
}

// DeleteItemSubmit handles POST /delete/{id}.
func (s *Server) DeleteItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Fetched up front so the photo can be cleaned up after the delete.
	item, _ := store.GetItem(r.Context(), s.DB, id)

	err = store.DeleteItem(r.Context(), s.DB, claims.UserID, id)
	if errors.Is(err, store.ErrNotOwner) {
		setFlash(w, "danger", "Unauthorized action.")
		http.Redirect(w, r, "/my_posts", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if item != nil {
		if err := s.Uploads.Remove(item.ImagePath); err != nil {
			slog.Warn("failed to remove photo", "error", err)
		}
	}

	slog.Info("item deleted", "user", claims.FullName, "item", id)
	setFlash(w, "success", "Post deleted successfully.")
	http.Redirect(w, r, "/my_posts", http.StatusSeeOther)
}

// ResolveItemSubmit handles POST /resolve/{id}. Lost postings become
// Recovered, Found postings become Returned; anything else is rejected.
func (s *Server) ResolveItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	newStatus, err := store.ResolveItem(r.Context(), s.DB, claims.UserID, id)
	switch {
	case errors.Is(err, store.ErrNotOwner):
		setFlash(w, "danger", "Unauthorized action.")
	case errors.Is(err, store.ErrInvalidTransition):
		setFlash(w, "warning", "Item is already resolved.")
	case err != nil:
		slog.Error("failed to resolve item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	default:
		slog.Info("item resolved", "user", claims.FullName, "item", id, "status", newStatus)
		setFlash(w, "success", "Item marked as "+newStatus+"!")
	}

	http.Redirect(w, r, "/my_posts", http.StatusSeeOther)
}
