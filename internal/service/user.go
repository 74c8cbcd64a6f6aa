package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var ErrUserNotFound = errors.New("User not found")

// UserService handles CRUD on user records. Single-record operations
// intentionally perform no ownership check: any authenticated caller
// may read or modify any user by id, matching the system this API
// replaces. See DESIGN.md before tightening this.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// List returns the filtered, paginated user collection. Role scoping
// (non-admins only see themselves) happens at the handler, which never
// calls this for user-role actors.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter, page, size int) (model.UserListResponse, error) {
	page, size = clampPage(page, size)

	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return model.UserListResponse{}, err
	}

	totalPages := pageCount(total, size)
	if page > totalPages {
		page = totalPages
	}

	users, err := s.users.List(ctx, filter, size, (page-1)*size)
	if err != nil {
		return model.UserListResponse{}, err
	}

	resp := model.UserListResponse{
		Users:      make([]model.UserResponse, 0, len(users)),
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
		TotalUsers: total,
	}
	for i := range users {
		resp.Users = append(resp.Users, model.NewUserResponse(&users[i]))
	}

	return resp, nil
}

// Patch applies the supplied fields to a user record.
func (s *UserService) Patch(ctx context.Context, id int64, req model.UserUpdateRequest) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.UserType != nil {
		user.Role = *req.UserType
	}
	if req.Password != nil {
		if err := checkPasswordStrength(*req.Password); err != nil {
			return model.UserResponse{}, err
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Put replaces a user record with the supplied fields. The handler
// has already checked that every replaceable field is present, so this
// reduces to Patch over a full payload.
func (s *UserService) Put(ctx context.Context, id int64, req model.UserUpdateRequest) (model.UserResponse, error) {
	return s.Patch(ctx, id, req)
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}

// clampPage normalizes out-of-range pagination parameters.
func clampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size
}

// pageCount returns the number of pages needed for total items at the
// given page size, never less than one.
func pageCount(total int64, size int) int {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}
