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

func newUserFixture(t *testing.T, name string) (*service.UserService, *repository.UserRepository) {
	db := testutil.OpenInMemoryDB(t, name)
	users := repository.NewUserRepository(db)
	return service.NewUserService(users), users
}

func TestUserGet(t *testing.T) {
	svc, users := newUserFixture(t, "user_get")
	u := seedUser(t, users, "get@x.com", "user")

	resp, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "get@x.com", resp.Email)
	assert.Equal(t, "user", resp.UserType)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUserPatchPartial(t *testing.T) {
	svc, users := newUserFixture(t, "user_patch")
	u := seedUser(t, users, "patch@x.com", "user")

	resp, err := svc.Patch(context.Background(), u.ID, model.UserUpdateRequest{
		FirstName: strp("Changed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Changed", resp.FirstName)
	assert.Equal(t, "patch@x.com", resp.Email)
	assert.Equal(t, "User", resp.LastName)
}

func TestUserPatchRehashesPassword(t *testing.T) {
	svc, users := newUserFixture(t, "user_patch_pw")
	u := seedUser(t, users, "pw@x.com", "user")

	_, err := svc.Patch(context.Background(), u.ID, model.UserUpdateRequest{
		Password: strp("N3wP@ssword"),
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "irrelevant", stored.PasswordHash)
	assert.NotEqual(t, "N3wP@ssword", stored.PasswordHash)

	_, err = svc.Patch(context.Background(), u.ID, model.UserUpdateRequest{
		Password: strp("short"),
	})
	assert.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestUserPatchLowercasesEmail(t *testing.T) {
	svc, users := newUserFixture(t, "user_patch_email")
	u := seedUser(t, users, "old@x.com", "user")

	resp, err := svc.Patch(context.Background(), u.ID, model.UserUpdateRequest{
		Email: strp("NEW@X.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", resp.Email)

	_, err = users.GetByEmail(context.Background(), "new@x.com")
	assert.NoError(t, err)
}

func TestUserPatchDuplicateEmail(t *testing.T) {
	svc, users := newUserFixture(t, "user_patch_dup")
	seedUser(t, users, "taken@x.com", "user")
	u := seedUser(t, users, "mine@x.com", "user")

	_, err := svc.Patch(context.Background(), u.ID, model.UserUpdateRequest{
		Email: strp("taken@x.com"),
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestUserPutPromotesRole(t *testing.T) {
	svc, users := newUserFixture(t, "user_put")
	u := seedUser(t, users, "promote@x.com", "user")

	resp, err := svc.Put(context.Background(), u.ID, model.UserUpdateRequest{
		Email:     strp("promote@x.com"),
		FirstName: strp("Updated"),
		LastName:  strp("Name"),
		UserType:  strp("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.UserType)
	assert.Equal(t, "Updated", resp.FirstName)
}

func TestUserDelete(t *testing.T) {
	svc, users := newUserFixture(t, "user_delete")
	u := seedUser(t, users, "gone@x.com", "user")

	require.NoError(t, svc.Delete(context.Background(), u.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), u.ID), service.ErrUserNotFound)
}

func TestUserListPagination(t *testing.T) {
	svc, users := newUserFixture(t, "user_list")
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		seedUser(t, users, email, "user")
	}

	resp, err := svc.List(context.Background(), repository.UserFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, int64(3), resp.TotalUsers)
	assert.Equal(t, "a@x.com", resp.Users[0].Email)

	filtered, err := svc.List(context.Background(), repository.UserFilter{Email: "b@"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, filtered.Users, 1)
	assert.Equal(t, "b@x.com", filtered.Users[0].Email)
}
