package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookhive/bookhive-go/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

const bookColumns = `id, title, author, publication_date, isbn, tag, owner_id, created_at, updated_at`

// BookRepository handles book persistence operations.
type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// BookFilter narrows List and Count. Title and Author match
// case-insensitively on substrings, Tag matches exactly; zero values
// are ignored.
type BookFilter struct {
	ID     int64
	Title  string
	Author string
	Tag    string
}

func (f BookFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.ID != 0 {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Title != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Author != "" {
		conds = append(conds, "LOWER(author) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Author)+"%")
	}
	if f.Tag != "" {
		conds = append(conds, "tag = ?")
		args = append(args, f.Tag)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create inserts a new book inside a transaction and fills in the
// generated ID and timestamps.
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO books (title, author, publication_date, isbn, tag, owner_id) VALUES (?, ?, ?, ?, ?, ?)`,
		book.Title, book.Author, book.PublicationDate, book.ISBN, book.Tag, book.OwnerID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id), book); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a book by ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	book := &model.Book{}
	err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id), book)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List returns books matching the filter, most recent first, with
// LIMIT/OFFSET pagination.
func (r *BookRepository) List(ctx context.Context, filter BookFilter, limit, offset int) ([]model.Book, error) {
	where, args := filter.where()
	query := `SELECT ` + bookColumns + ` FROM books` + where + ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

// Count returns the number of books matching the filter.
func (r *BookRepository) Count(ctx context.Context, filter BookFilter) (int64, error) {
	where, args := filter.where()
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&n)
	return n, err
}

// Update writes the full book row inside a transaction and refreshes
// the struct's timestamps.
func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, publication_date = ?, isbn = ?, tag = ?, owner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		book.Title, book.Author, book.PublicationDate, book.ISBN, book.Tag, book.OwnerID, book.ID,
	)
	if err != nil {
		return err
	}

	if err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, book.ID), book); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookNotFound
		}
		return err
	}

	return tx.Commit()
}

// Delete removes a book by ID.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}

	return nil
}

func scanBook(row rowScanner, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.PublicationDate, &b.ISBN,
		&b.Tag, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
}
