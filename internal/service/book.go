package service

import (
	"context"
	"errors"
	"time"

	"github.com/bookhive/bookhive-go/internal/authz"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrBookNotFound     = errors.New("Book not found")
	ErrLoginRequired    = errors.New("Kindly login to create a book.")
	ErrPermissionDenied = errors.New("permission denied")
)

const dateLayout = "2006-01-02"

// BookService handles CRUD on books, gating mutations through the
// ownership policy.
type BookService struct {
	books *repository.BookRepository
}

func NewBookService(books *repository.BookRepository) *BookService {
	return &BookService{books: books}
}

// Create stores a new book. The tag defaults to "admin"; only a
// custom-tagged book records the creating user as owner, so the
// tag/owner invariant holds at creation.
func (s *BookService) Create(ctx context.Context, actor *model.User, req model.BookCreateRequest) (model.BookResponse, error) {
	if actor == nil {
		return model.BookResponse{}, ErrLoginRequired
	}

	pubDate, err := time.Parse(dateLayout, req.PublicationDate)
	if err != nil {
		return model.BookResponse{}, err
	}

	tag := req.Tag
	if tag == "" {
		tag = model.TagAdmin
	}

	book := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		PublicationDate: pubDate,
		ISBN:            req.ISBN,
		Tag:             tag,
	}
	if tag != model.TagAdmin {
		ownerID := actor.ID
		book.OwnerID = &ownerID
	}

	if err := s.books.Create(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return model.NewBookResponse(book), nil
}

// Get returns a single book by id.
func (s *BookService) Get(ctx context.Context, id int64) (model.BookResponse, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}
	return model.NewBookResponse(book), nil
}

// List returns the filtered, paginated book collection, most recent
// first. The collection is public; no actor is involved.
func (s *BookService) List(ctx context.Context, filter repository.BookFilter, page, size int) (model.BookListResponse, error) {
	page, size = clampPage(page, size)

	total, err := s.books.Count(ctx, filter)
	if err != nil {
		return model.BookListResponse{}, err
	}

	totalPages := pageCount(total, size)
	if page > totalPages {
		page = totalPages
	}

	books, err := s.books.List(ctx, filter, size, (page-1)*size)
	if err != nil {
		return model.BookListResponse{}, err
	}

	resp := model.BookListResponse{
		Books:      make([]model.BookResponse, 0, len(books)),
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
		TotalBooks: total,
	}
	for i := range books {
		resp.Books = append(resp.Books, model.NewBookResponse(&books[i]))
	}

	return resp, nil
}

// Update applies the supplied fields to a book after the ownership
// policy allows it. PATCH and PUT share these semantics: absent fields
// keep their stored values. Changing the tag does not touch the owner.
func (s *BookService) Update(ctx context.Context, actor *model.User, id int64, req model.BookUpdateRequest) (model.BookResponse, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}

	if !authz.CanModifyBook(actor.Role, actor.ID, book.OwnerID, book.Tag) {
		return model.BookResponse{}, ErrPermissionDenied
	}

	if req.Title != nil && *req.Title != "" {
		book.Title = *req.Title
	}
	if req.Author != nil && *req.Author != "" {
		book.Author = *req.Author
	}
	if req.PublicationDate != nil && *req.PublicationDate != "" {
		pubDate, err := time.Parse(dateLayout, *req.PublicationDate)
		if err != nil {
			return model.BookResponse{}, err
		}
		book.PublicationDate = pubDate
	}
	if req.ISBN != nil && *req.ISBN != "" {
		book.ISBN = *req.ISBN
	}
	if req.Tag != nil && *req.Tag != "" {
		book.Tag = *req.Tag
	}

	if err := s.books.Update(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return model.NewBookResponse(book), nil
}

// Delete removes a book after the ownership policy allows it.
func (s *BookService) Delete(ctx context.Context, actor *model.User, id int64) error {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if !authz.CanModifyBook(actor.Role, actor.ID, book.OwnerID, book.Tag) {
		return ErrPermissionDenied
	}

	return s.books.Delete(ctx, id)
}
