package model

import "time"

// Book tags. An admin-tagged book has no owner; a custom-tagged book
// belongs to the user who created it.
const (
	TagAdmin  = "admin"
	TagCustom = "custom"
)

// Book represents a book record in the database. OwnerID is nil for
// admin-tagged books.
type Book struct {
	ID              int64
	Title           string
	Author          string
	PublicationDate time.Time
	ISBN            string
	Tag             string
	OwnerID         *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookCreateRequest is the payload for POST /books. Tag defaults to
// "admin" when omitted.
type BookCreateRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Author          string `json:"author" validate:"required,max=255"`
	PublicationDate string `json:"publication_date" validate:"required,datetime=2006-01-02"`
	ISBN            string `json:"isbn" validate:"required,max=25"`
	Tag             string `json:"tag" validate:"omitempty,oneof=admin custom"`
}

// BookUpdateRequest is the payload for PATCH and PUT on a book. Both
// verbs apply only the fields that are supplied, matching the
// collection's replace-if-present behavior.
type BookUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Author          *string `json:"author" validate:"omitempty,max=255"`
	PublicationDate *string `json:"publication_date" validate:"omitempty,datetime=2006-01-02"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=25"`
	Tag             *string `json:"tag" validate:"omitempty,oneof=admin custom"`
}

// BookResponse is the book shape returned by the API.
type BookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date"`
	ISBN            string `json:"isbn"`
	Tag             string `json:"tag"`
	DateCreated     string `json:"date_created"`
	DateUpdated     string `json:"date_updated"`
}

// BookListResponse is the data payload of a book listing.
type BookListResponse struct {
	Books      []BookResponse `json:"books"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
	TotalBooks int64          `json:"total_books"`
}

// NewBookResponse converts a stored book to its API shape.
func NewBookResponse(b *Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDate.Format("2006-01-02"),
		ISBN:            b.ISBN,
		Tag:             b.Tag,
		DateCreated:     b.CreatedAt.Format(time.RFC3339),
		DateUpdated:     b.UpdatedAt.Format(time.RFC3339),
	}
}
