package handler

import (
	"errors"
	"net/http"

	"github.com/bookhive/bookhive-go/internal/authz"
	"github.com/bookhive/bookhive-go/internal/middleware"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
	"github.com/bookhive/bookhive-go/internal/service"
	"github.com/bookhive/bookhive-go/internal/validation"
)

// UserHandler serves the user collection and single-user operations.
// All of its routes are behind the path-based authentication gate, so
// the request context always carries an authenticated actor.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// HandleList handles GET /api/user_mgt/users. A user-role actor only
// ever receives their own record; admins get the filterable,
// paginated collection.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.FromContext(r.Context()).User
	if actor == nil {
		respondFailed(w, http.StatusUnauthorized, middleware.ErrMissingCredentials.Error())
		return
	}

	if !authz.CanListAllUsers(actor.Role) {
		respondSuccess(w, http.StatusOK, model.NewUserResponse(actor), "User retrieved successfully")
		return
	}

	filter := repository.UserFilter{
		ID:        queryInt64(r, "id"),
		Email:     r.URL.Query().Get("email"),
		FirstName: r.URL.Query().Get("first_name"),
		LastName:  r.URL.Query().Get("last_name"),
	}

	resp, err := h.users.List(r.Context(), filter, queryInt(r, "page", 1), queryInt(r, "size", 10))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, "User(s) retrieved successfully")
}

// HandleCreate handles POST /api/user_mgt/users, the admin-only
// creation path (signup is the public one).
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.FromContext(r.Context()).User
	if actor == nil {
		respondFailed(w, http.StatusUnauthorized, middleware.ErrMissingCredentials.Error())
		return
	}
	if !authz.CanCreateUser(actor.Role) {
		respondFailed(w, http.StatusForbidden, "You do not have the permission to create a user.")
		return
	}

	var req model.SignupRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	resp, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordAllNumeric):
			respondFailed(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondSuccess(w, http.StatusCreated, resp, "User created successfully")
}

// HandleGet handles GET /api/user_mgt/users/{id}.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	resp, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFailed(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, "User record retrieved successfully")
}

// HandlePatch handles PATCH /api/user_mgt/users/{id}, applying only
// the supplied fields.
func (h *UserHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePut handles PUT /api/user_mgt/users/{id}, replacing the
// record; every replaceable field must be present.
func (h *UserHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, replace bool) {
	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	var req model.UserUpdateRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	if replace {
		if missing := missingPutFields(req); len(missing) > 0 {
			writeEnvelope(w, http.StatusBadRequest, envelope{
				Status:  "failed",
				Data:    map[string]any{"fields": missing},
				Message: "Validation failed",
			})
			return
		}
	}

	var resp model.UserResponse
	if replace {
		resp, err = h.users.Put(r.Context(), id, req)
	} else {
		resp, err = h.users.Patch(r.Context(), id, req)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordAllNumeric):
			respondFailed(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, resp, "User record updated successfully")
}

// HandleDelete handles DELETE /api/user_mgt/users/{id}.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondFailed(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFailed(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// missingPutFields lists the replaceable fields absent from a PUT
// payload.
func missingPutFields(req model.UserUpdateRequest) []validation.FieldError {
	var missing []validation.FieldError
	if req.Email == nil {
		missing = append(missing, validation.FieldError{Field: "email", Message: "is required"})
	}
	if req.FirstName == nil {
		missing = append(missing, validation.FieldError{Field: "first_name", Message: "is required"})
	}
	if req.LastName == nil {
		missing = append(missing, validation.FieldError{Field: "last_name", Message: "is required"})
	}
	if req.UserType == nil {
		missing = append(missing, validation.FieldError{Field: "user_type", Message: "is required"})
	}
	return missing
}
