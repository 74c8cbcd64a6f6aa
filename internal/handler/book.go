package handler

import (
	"errors"
	"net/http"

	"github.com/bookhive/bookhive-go/internal/middleware"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
	"github.com/bookhive/bookhive-go/internal/service"
)

// BookHandler serves the book collection and single-book operations.
// The collection routes are public; single-book routes sit behind the
// authentication gate.
type BookHandler struct {
	books *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{books: svc}
}

// HandleCreate handles POST /api/book_mgt/books. The path is outside
// the protected set, so the login requirement is enforced here.
func (h *BookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.FromContext(r.Context()).User

	var req model.BookCreateRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	resp, err := h.books.Create(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, service.ErrLoginRequired) {
			respondFailed(w, http.StatusForbidden, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, resp, "Book created successfully")
}

// HandleList handles GET /api/book_mgt/books. No authentication
// required.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.BookFilter{
		ID:     queryInt64(r, "id"),
		Title:  r.URL.Query().Get("title"),
		Author: r.URL.Query().Get("author"),
		Tag:    r.URL.Query().Get("tag"),
	}

	resp, err := h.books.List(r.Context(), filter, queryInt(r, "page", 1), queryInt(r, "size", 10))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, "Books retrieved successfully")
}

// HandleGet handles GET /api/book_mgt/books/{id}.
func (h *BookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrBookNotFound.Error())
		return
	}

	resp, err := h.books.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondFailed(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, "Book retrieved successfully")
}

// HandlePatch handles PATCH /api/book_mgt/books/{id}.
func (h *BookHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "You do not have the permission to update this book.")
}

// HandlePut handles PUT /api/book_mgt/books/{id}. Replacement keeps
// stored values for absent fields, same as PATCH.
func (h *BookHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "You do not have the permission to replace this book.")
}

func (h *BookHandler) update(w http.ResponseWriter, r *http.Request, permissionMsg string) {
	actor := middleware.FromContext(r.Context()).User
	if actor == nil {
		respondFailed(w, http.StatusUnauthorized, middleware.ErrMissingCredentials.Error())
		return
	}

	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrBookNotFound.Error())
		return
	}

	var req model.BookUpdateRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	resp, err := h.books.Update(r.Context(), actor, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondFailed(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPermissionDenied):
			respondFailed(w, http.StatusForbidden, permissionMsg)
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, resp, "Book updated successfully")
}

// HandleDelete handles DELETE /api/book_mgt/books/{id}.
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.FromContext(r.Context()).User
	if actor == nil {
		respondFailed(w, http.StatusUnauthorized, middleware.ErrMissingCredentials.Error())
		return
	}

	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrBookNotFound.Error())
		return
	}

	if err := h.books.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondFailed(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPermissionDenied):
			respondFailed(w, http.StatusForbidden, "You do not have the permission to delete this book.")
		default:
			respondInternal(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
