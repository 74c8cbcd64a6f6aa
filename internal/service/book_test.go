package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
	"github.com/bookhive/bookhive-go/internal/service"
	"github.com/bookhive/bookhive-go/internal/testutil"
)

func newBookFixture(t *testing.T, name string) (*service.BookService, *repository.UserRepository) {
	db := testutil.OpenInMemoryDB(t, name)
	return service.NewBookService(repository.NewBookRepository(db)), repository.NewUserRepository(db)
}

func seedUser(t *testing.T, users *repository.UserRepository, email, role string) *model.User {
	t.Helper()
	u := &model.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "irrelevant",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func bookReq(tag string) model.BookCreateRequest {
	return model.BookCreateRequest{
		Title:           "Sample Book",
		Author:          "Author Name",
		PublicationDate: "2024-01-01",
		ISBN:            "1234567890123",
		Tag:             tag,
	}
}

func strp(s string) *string { return &s }

func TestBookCreateDefaultsToAdminTag(t *testing.T) {
	svc, users := newBookFixture(t, "book_create_default")
	actor := seedUser(t, users, "creator@x.com", "user")

	resp, err := svc.Create(context.Background(), actor, bookReq(""))
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Tag)

	// Admin-tagged books carry no owner even when a user created them.
	got, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Tag)
}

func TestBookCreateCustomTagRecordsOwner(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "book_create_custom")
	books := repository.NewBookRepository(db)
	users := repository.NewUserRepository(db)
	svc := service.NewBookService(books)
	actor := seedUser(t, users, "owner@x.com", "user")

	resp, err := svc.Create(context.Background(), actor, bookReq("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", resp.Tag)

	stored, err := books.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, actor.ID, *stored.OwnerID)
}

func TestBookCreateRequiresLogin(t *testing.T) {
	svc, _ := newBookFixture(t, "book_create_anon")

	_, err := svc.Create(context.Background(), nil, bookReq(""))
	assert.ErrorIs(t, err, service.ErrLoginRequired)
}

func TestBookUpdatePermissions(t *testing.T) {
	svc, users := newBookFixture(t, "book_update_perm")
	ctx := context.Background()

	admin := seedUser(t, users, "admin@x.com", "admin")
	owner := seedUser(t, users, "owner@x.com", "user")
	other := seedUser(t, users, "other@x.com", "user")

	adminBook, err := svc.Create(ctx, admin, bookReq("admin"))
	require.NoError(t, err)
	ownBook, err := svc.Create(ctx, owner, bookReq("custom"))
	require.NoError(t, err)

	// A user-role actor cannot touch an admin book they do not own.
	_, err = svc.Update(ctx, other, adminBook.ID, model.BookUpdateRequest{Title: strp("Hijacked")})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, other, adminBook.ID), service.ErrPermissionDenied)

	// The owner modifies their own book regardless of tag.
	updated, err := svc.Update(ctx, owner, ownBook.ID, model.BookUpdateRequest{Title: strp("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// Custom books are open to other users as well.
	_, err = svc.Update(ctx, other, ownBook.ID, model.BookUpdateRequest{Author: strp("Someone Else")})
	assert.NoError(t, err)

	// Admins can modify anything.
	_, err = svc.Update(ctx, admin, ownBook.ID, model.BookUpdateRequest{ISBN: strp("9876543210987")})
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, admin, adminBook.ID))
}

func TestBookUpdateKeepsAbsentFields(t *testing.T) {
	svc, users := newBookFixture(t, "book_update_partial")
	ctx := context.Background()
	admin := seedUser(t, users, "admin@x.com", "admin")

	created, err := svc.Create(ctx, admin, bookReq("admin"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, created.ID, model.BookUpdateRequest{Title: strp("New Title")})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.ISBN, updated.ISBN)
	assert.Equal(t, created.PublicationDate, updated.PublicationDate)
}

func TestBookNotFound(t *testing.T) {
	svc, users := newBookFixture(t, "book_missing")
	admin := seedUser(t, users, "admin@x.com", "admin")
	ctx := context.Background()

	_, err := svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, service.ErrBookNotFound)
	_, err = svc.Update(ctx, admin, 9999, model.BookUpdateRequest{})
	assert.ErrorIs(t, err, service.ErrBookNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, admin, 9999), service.ErrBookNotFound)
}

func TestBookListPagination(t *testing.T) {
	svc, users := newBookFixture(t, "book_list_pages")
	ctx := context.Background()
	admin := seedUser(t, users, "admin@x.com", "admin")

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, admin, bookReq("admin"))
		require.NoError(t, err)
	}

	page1, err := svc.List(ctx, repository.BookFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Books, 10)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, int64(12), page1.TotalBooks)

	page2, err := svc.List(ctx, repository.BookFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Books, 2)

	// Out-of-range pages clamp to the last page instead of erroring.
	clamped, err := svc.List(ctx, repository.BookFilter{}, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Page)
	assert.Len(t, clamped.Books, 2)
}
